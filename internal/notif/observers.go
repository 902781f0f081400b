package notif

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

// InboxStore persists in-app notification records.
type InboxStore interface {
	Create(ctx context.Context, notification *dbmysql.Notification) error
	ByUserID(ctx context.Context, userID string, limit, offset int) ([]*dbmysql.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// TokenSource resolves the push tokens of a set of users.
type TokenSource interface {
	PushTokens(ctx context.Context, userIDs []primitive.ObjectID, skipViewing *primitive.ObjectID) ([]string, error)
}

// Pusher sends a payload to device tokens.
type Pusher interface {
	Notify(ctx context.Context, tokens []string, payload Payload)
}

// InboxObserver writes one inbox record per addressed user.
type InboxObserver struct {
	repo InboxStore
	now  func() time.Time
}

func NewInboxObserver(repo InboxStore) *InboxObserver {
	return &InboxObserver{repo: repo, now: time.Now}
}

func (o *InboxObserver) Name() string {
	return "inbox_observer"
}

func (o *InboxObserver) Update(ctx context.Context, event common.NotificationEvent) error {
	now := o.now()
	for _, userID := range event.UserIDs {
		record := &dbmysql.Notification{
			ID:        uuid.NewString(),
			UserID:    userID,
			SenderID:  optional(event.SenderID),
			Header:    event.Header,
			Content:   event.Content,
			Type:      string(event.Type),
			Status:    string(common.StatusSent),
			RoomID:    optional(event.RoomID),
			MessageID: optional(event.MessageID),
			Metadata:  event.Metadata,
			SentAt:    &now,
		}
		if err := o.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to store notification for %s: %w", userID, err)
		}
	}
	return nil
}

// PushObserver resolves the addressed users' devices and hands them to the fan-out.
type PushObserver struct {
	tokens TokenSource
	pusher Pusher
}

func NewPushObserver(tokens TokenSource, pusher Pusher) *PushObserver {
	return &PushObserver{tokens: tokens, pusher: pusher}
}

func (o *PushObserver) Name() string {
	return "push_observer"
}

func (o *PushObserver) Update(ctx context.Context, event common.NotificationEvent) error {
	userIDs := make([]primitive.ObjectID, 0, len(event.UserIDs))
	for _, id := range event.UserIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			log.Warn().Str("user_id", id).Msg("skipping push for malformed user id")
			continue
		}
		userIDs = append(userIDs, oid)
	}
	if len(userIDs) == 0 {
		return nil
	}

	var skipViewing *primitive.ObjectID
	if event.RoomID != "" {
		if roomID, err := primitive.ObjectIDFromHex(event.RoomID); err == nil {
			skipViewing = &roomID
		}
	}

	tokens, err := o.tokens.PushTokens(ctx, userIDs, skipViewing)
	if err != nil {
		return fmt.Errorf("failed to resolve push tokens: %w", err)
	}
	if len(tokens) == 0 {
		log.Debug().Strs("user_ids", event.UserIDs).Msg("no push targets")
		return nil
	}

	o.pusher.Notify(ctx, tokens, payloadFor(event))
	return nil
}

func payloadFor(event common.NotificationEvent) Payload {
	data := map[string]string{
		"noti_for": string(event.Type),
	}
	if event.MessageID != "" {
		data["id"] = event.MessageID
	}
	if event.RoomID != "" {
		data["chat_room_id"] = event.RoomID
	}
	if event.SenderID != "" {
		data["sender_id"] = event.SenderID
	}
	for k, v := range event.Metadata {
		switch val := v.(type) {
		case string:
			data[k] = val
		case bool:
			data[k] = strconv.FormatBool(val)
		case int:
			data[k] = strconv.Itoa(val)
		case float64:
			data[k] = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return Payload{Title: event.Header, Body: event.Content, Data: data}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
