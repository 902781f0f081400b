package common

import (
	"time"
)

type NotificationType string

const (
	ChatNotificationType NotificationType = "chat_notification"
	NewReviewType        NotificationType = "new_review"
	SystemType           NotificationType = "system"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
	StatusRead    NotificationStatus = "read"
)

type NotificationMetadata map[string]interface{}

// NotificationEvent is one logical notification addressed to one or more users.
type NotificationEvent struct {
	Type      NotificationType
	UserIDs   []string
	SenderID  string
	Header    string
	Content   string
	ImageURL  *string
	RoomID    string // devices currently viewing this room are skipped
	MessageID string
	Priority  int
	Metadata  NotificationMetadata
	CreatedAt time.Time
}

type NotificationResponse struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	SenderID  *string              `json:"sender_id,omitempty"`
	Header    string               `json:"header"`
	Content   string               `json:"content"`
	RoomID    *string              `json:"chat_room_id,omitempty"`
	MessageID *string              `json:"chat_id,omitempty"`
	Status    string               `json:"status"`
	Metadata  NotificationMetadata `json:"metadata"`
	CreatedAt time.Time            `json:"created_at"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
}
