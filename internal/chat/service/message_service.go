package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/chat/repository"
	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/metrics"
	"gochat/internal/user"
)

type SendInput struct {
	SenderID   primitive.ObjectID
	RoomID     primitive.ObjectID
	ReceiverID primitive.ObjectID
	Body       string
	Kind       common.MessageKind
	Media      []chat.MediaFile
}

// MessageService owns the message lifecycle: send, edit, the two delete modes and read marking.
// Returned messages carry public media URLs.
type MessageService struct {
	rooms           repository.RoomRepository
	messages        repository.MessageRepository
	profiles        user.ProfileRepository
	presence        PresenceReader
	notifier        MessageNotifier
	bucketURL       string
	defaultPageSize int
}

func NewMessageService(
	rooms repository.RoomRepository,
	messages repository.MessageRepository,
	profiles user.ProfileRepository,
	presence PresenceReader,
	notifier MessageNotifier,
	cfg *config.Config,
) *MessageService {
	return &MessageService{
		rooms:           rooms,
		messages:        messages,
		profiles:        profiles,
		presence:        presence,
		notifier:        notifier,
		bucketURL:       cfg.Server.BucketURL,
		defaultPageSize: cfg.Gateway.DefaultPageSize,
	}
}

func validateSend(in *SendInput) error {
	switch in.Kind {
	case common.MessageKindText:
		if err := common.ValidateMessageBody(in.Body); err != nil {
			return common.InvalidArgument(err.Error())
		}
		in.Media = nil
	case common.MessageKindMedia:
		if len(in.Media) == 0 {
			return common.InvalidArgument("Media message requires at least one file")
		}
		if len(in.Media) > common.MaxAttachments {
			return common.InvalidArgument(fmt.Sprintf("At most %d files per message", common.MaxAttachments))
		}
		if len(in.Body) > common.MaxMessageLength {
			return common.InvalidArgument("message is too long")
		}
		media := make([]chat.MediaFile, len(in.Media))
		for i, f := range in.Media {
			if f.FileType == "" && f.FileName != "" {
				f.FileType = common.MediaTypeOf(f.FileName)
			}
			if !f.FileType.IsValid() || strings.TrimSpace(f.FilePath) == "" {
				return common.InvalidArgument("Invalid media file")
			}
			if f.FileType != common.MediaFileTypeVideo {
				f.Thumbnail = nil
			}
			media[i] = f
		}
		in.Media = media
	default:
		return common.InvalidArgument("Invalid message type")
	}
	return nil
}

// Send stores a message in a live room. A receiver with the room open gets it already read and no
// push; anyone else gets a queued push. A room hidden by either side becomes visible to both again.
func (s *MessageService) Send(ctx context.Context, in SendInput) (*chat.Message, error) {
	if err := validateSend(&in); err != nil {
		return nil, err
	}

	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if in.SenderID == in.ReceiverID || !room.HasParticipant(in.SenderID) || !room.HasParticipant(in.ReceiverID) {
		return nil, common.PermissionDenied("You are not a member of this chat room")
	}

	sender, err := s.profiles.FindActive(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}

	viewing, err := s.presence.IsViewing(ctx, in.ReceiverID, room.ID)
	if err != nil {
		return nil, err
	}

	msg := &chat.Message{
		RoomID:     room.ID,
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Body:       in.Body,
		Kind:       in.Kind,
		Media:      in.Media,
		IsRead:     viewing,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesSentTotal.Inc()

	if room.IsHiddenFor(in.SenderID) || room.IsHiddenFor(in.ReceiverID) {
		if err := s.rooms.ClearHidden(ctx, room.ID); err != nil {
			return nil, err
		}
	}

	if !viewing {
		s.notifier.NotifyChatMessage(sender, msg)
	}

	log.Debug().Str("room_id", room.ID.Hex()).Str("message_id", msg.ID.Hex()).Bool("read_on_arrival", viewing).Msg("message sent")
	return msg.WithBucketURL(s.bucketURL), nil
}

// Edit replaces the body of the editor's own message and reports whether it is the room's newest message.
func (s *MessageService) Edit(ctx context.Context, messageID, editor primitive.ObjectID, body string) (*chat.Message, bool, error) {
	if err := common.ValidateMessageBody(body); err != nil {
		return nil, false, common.InvalidArgument(err.Error())
	}

	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, false, err
	}
	if !msg.VisibleTo(editor) {
		return nil, false, common.NotFound("Message not found")
	}
	if msg.SenderID != editor {
		return nil, false, common.PermissionDenied("You do not have permission to edit this message")
	}

	updated, err := s.messages.UpdateBody(ctx, messageID, editor, body)
	if err != nil {
		return nil, false, err
	}
	isLast, err := s.isLastMessage(ctx, updated)
	if err != nil {
		return nil, false, err
	}
	return updated.WithBucketURL(s.bucketURL), isLast, nil
}

// DeleteForSelf hides the message for user only. Repeating it changes nothing.
func (s *MessageService) DeleteForSelf(ctx context.Context, messageID, userID primitive.ObjectID) (*chat.Message, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != userID && msg.ReceiverID != userID {
		return nil, common.PermissionDenied("You do not have permission to delete this message")
	}
	if err := s.messages.Hide(ctx, messageID, userID); err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteForEveryone removes the sender's message from every participant's view. It is terminal.
func (s *MessageService) DeleteForEveryone(ctx context.Context, messageID, userID primitive.ObjectID) (*chat.Message, bool, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, false, err
	}
	if msg.SenderID != userID {
		return nil, false, common.PermissionDenied("You do not have permission to delete this message")
	}

	if !msg.DeletedForEveryone {
		msg, err = s.messages.MarkDeletedForEveryone(ctx, messageID, userID)
		if err != nil {
			return nil, false, err
		}
	}
	isLast, err := s.isLastMessage(ctx, msg)
	if err != nil {
		return nil, false, err
	}
	return msg.WithBucketURL(s.bucketURL), isLast, nil
}

// MarkRead marks every unread message addressed to reader in the room as read.
func (s *MessageService) MarkRead(ctx context.Context, roomID, reader primitive.ObjectID) (int64, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if !room.HasParticipant(reader) {
		return 0, common.PermissionDenied("You are not a member of this chat room")
	}
	return s.messages.MarkRead(ctx, roomID, reader)
}

// List returns a page of the viewer's visible messages, newest first.
func (s *MessageService) List(ctx context.Context, roomID, viewer primitive.ObjectID, page, limit int) ([]*chat.Message, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewer) {
		return nil, common.PermissionDenied("You are not a member of this chat room")
	}

	skip, size := common.Page(page, limit, s.defaultPageSize)
	messages, err := s.messages.ListVisible(ctx, roomID, viewer, skip, size)
	if err != nil {
		return nil, err
	}
	out := make([]*chat.Message, len(messages))
	for i, m := range messages {
		out[i] = m.WithBucketURL(s.bucketURL)
	}
	return out, nil
}

// isLastMessage is read from the store at call time so chat lists are refreshed only when needed.
func (s *MessageService) isLastMessage(ctx context.Context, msg *chat.Message) (bool, error) {
	latest, err := s.messages.LatestID(ctx, msg.RoomID)
	if err != nil {
		return false, err
	}
	return latest == msg.ID, nil
}
