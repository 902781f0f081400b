package notif

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gochat/internal/chat"
	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/user"
)

const mediaMessagePreview = "sent a media"

type NotificationService struct {
	manager     *NotificationManager
	repo        InboxStore
	defaultPage int
}

func NewNotificationService(
	cfg *config.Config,
	repo InboxStore,
	tokens TokenSource,
	pusher Pusher,
) *NotificationService {
	manager := NewNotificationManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize)

	manager.Subscribe(NewInboxObserver(repo))

	if cfg.Notification.Enabled {
		manager.Subscribe(NewPushObserver(tokens, pusher))
	}

	return &NotificationService{
		manager:     manager,
		repo:        repo,
		defaultPage: cfg.Gateway.DefaultPageSize,
	}
}

// NotifyChatMessage queues the receiver's push and inbox entry for a newly stored message.
func (s *NotificationService) NotifyChatMessage(sender *user.Profile, msg *chat.Message) {
	content := msg.Body
	if msg.Kind == common.MessageKindMedia || content == "" {
		content = mediaMessagePreview
	}

	event := common.NotificationEvent{
		Type:      common.ChatNotificationType,
		UserIDs:   []string{msg.ReceiverID.Hex()},
		SenderID:  sender.ID.Hex(),
		Header:    sender.FullName,
		Content:   content,
		RoomID:    msg.RoomID.Hex(),
		MessageID: msg.ID.Hex(),
		Priority:  4,
		CreatedAt: msg.SentAt,
	}

	if !s.manager.NotifyAsync(event) {
		log.Warn().
			Str("room_id", event.RoomID).
			Str("message_id", event.MessageID).
			Msg("chat notification dropped")
	}
}

// SendNotification delivers an event synchronously to all observers.
func (s *NotificationService) SendNotification(ctx context.Context, event common.NotificationEvent) error {
	if err := s.validateEvent(event); err != nil {
		return common.InvalidArgument(err.Error())
	}
	if event.Type == "" {
		event.Type = common.SystemType
	}
	if event.Priority == 0 {
		event.Priority = 3
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	s.manager.Notify(ctx, event)

	log.Info().Str("type", string(event.Type)).Int("users", len(event.UserIDs)).Msg("notification sent")
	return nil
}

func (s *NotificationService) ListNotifications(
	ctx context.Context,
	userID string,
	page, limit int,
) ([]*common.NotificationResponse, error) {
	if userID == "" {
		return nil, common.InvalidArgument("user_id is required")
	}
	offset, size := common.Page(page, limit, s.defaultPage)

	notifications, err := s.repo.ByUserID(ctx, userID, int(size), int(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	responses := make([]*common.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = n.ToResponse()
	}
	return responses, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *NotificationService) validateEvent(event common.NotificationEvent) error {
	if len(event.UserIDs) == 0 {
		return fmt.Errorf("user_ids is required")
	}
	for _, id := range event.UserIDs {
		if id == "" {
			return fmt.Errorf("user_ids must not contain empty values")
		}
	}
	if event.Header == "" {
		return fmt.Errorf("header is required")
	}
	if event.Content == "" {
		return fmt.Errorf("content is required")
	}
	if event.Priority < 0 || event.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	return nil
}

func (s *NotificationService) Shutdown() {
	s.manager.Shutdown()
	log.Info().Msg("notification service shutdown complete")
}
