package service

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/chat/repository"
	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/user"
)

// ChatListService projects rooms into per-viewer summaries at read time. Nothing it returns is stored.
type ChatListService struct {
	rooms           repository.RoomRepository
	messages        repository.MessageRepository
	profiles        user.ProfileRepository
	presence        PresenceReader
	bucketURL       string
	defaultPageSize int
}

func NewChatListService(
	rooms repository.RoomRepository,
	messages repository.MessageRepository,
	profiles user.ProfileRepository,
	presence PresenceReader,
	cfg *config.Config,
) *ChatListService {
	return &ChatListService{
		rooms:           rooms,
		messages:        messages,
		profiles:        profiles,
		presence:        presence,
		bucketURL:       cfg.Server.BucketURL,
		defaultPageSize: cfg.Gateway.DefaultPageSize,
	}
}

// Summary computes the viewer's row for a single room.
func (s *ChatListService) Summary(ctx context.Context, viewer, roomID primitive.ObjectID) (*chat.Summary, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(viewer) {
		return nil, common.PermissionDenied("You are not a member of this chat room")
	}
	summaries, err := s.summarize(ctx, viewer, []*chat.Room{room}, "")
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, common.NotFound("User not found")
	}
	return summaries[0], nil
}

// List returns a page of the rooms the viewer has not hidden, newest activity first. Rooms without
// messages come last. search filters by the other participant's full name.
func (s *ChatListService) List(ctx context.Context, viewer primitive.ObjectID, search string, page, limit int) ([]*chat.Summary, error) {
	rooms, err := s.rooms.ListVisible(ctx, viewer)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summarize(ctx, viewer, rooms, common.NormalizeSearch(search))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		switch {
		case a == nil && b == nil:
			return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.SentAt.After(b.SentAt)
	})

	skip, size := common.Page(page, limit, s.defaultPageSize)
	if skip < 0 || skip >= int64(len(summaries)) {
		return []*chat.Summary{}, nil
	}
	end := skip + size
	if end > int64(len(summaries)) {
		end = int64(len(summaries))
	}
	return summaries[skip:end], nil
}

// summarize batches the profile, picture, presence and message lookups for all rooms at once.
// Rooms whose other participant is gone or does not match search are dropped.
func (s *ChatListService) summarize(ctx context.Context, viewer primitive.ObjectID, rooms []*chat.Room, search string) ([]*chat.Summary, error) {
	if len(rooms) == 0 {
		return []*chat.Summary{}, nil
	}

	others := make([]primitive.ObjectID, 0, len(rooms))
	for _, r := range rooms {
		others = append(others, r.OtherParticipant(viewer))
	}

	profiles, err := s.profiles.Profiles(ctx, others, search)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []*chat.Summary{}, nil
	}

	kept := make([]*chat.Room, 0, len(rooms))
	keptIDs := make([]primitive.ObjectID, 0, len(rooms))
	keptUsers := make([]primitive.ObjectID, 0, len(rooms))
	for _, r := range rooms {
		other := r.OtherParticipant(viewer)
		if _, ok := profiles[other]; !ok {
			continue
		}
		kept = append(kept, r)
		keptIDs = append(keptIDs, r.ID)
		keptUsers = append(keptUsers, other)
	}

	stats, err := s.messages.RoomStats(ctx, viewer, keptIDs)
	if err != nil {
		return nil, err
	}
	pictures, err := s.profiles.ProfilePictures(ctx, keptUsers)
	if err != nil {
		return nil, err
	}
	online, err := s.presence.OnlineUsers(ctx, keptUsers)
	if err != nil {
		return nil, err
	}

	out := make([]*chat.Summary, 0, len(kept))
	for _, r := range kept {
		other := r.OtherParticipant(viewer)
		summary := &chat.Summary{
			RoomID:    r.ID,
			UserID:    other,
			FullName:  profiles[other].FullName,
			IsOnline:  online[other],
			CreatedAt: r.CreatedAt,
		}
		if path, ok := pictures[other]; ok && path != "" {
			url := common.WithBucketURL(s.bucketURL, path)
			summary.ProfilePicture = &url
		}
		if st, ok := stats[r.ID]; ok {
			last := st.LastMessage
			summary.LastMessage = &last
			summary.UnreadCount = st.UnreadCount
		}
		out = append(out, summary)
	}
	return out, nil
}
