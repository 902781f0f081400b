package rpc

import (
	"gochat/internal/common"
	"gochat/internal/session"
)

type CreateSessionRequest struct {
	UserID      string            `json:"user_id"`
	DeviceToken string            `json:"device_token"`
	DeviceType  common.DeviceType `json:"device_type"`
	Role        common.UserRole   `json:"user_role,omitempty"`
}

type RefreshSessionRequest struct {
	RefreshToken string `json:"refresh_token"`
	DeviceToken  string `json:"device_token"`
}

type SessionResponse struct {
	Tokens *session.TokenPair `json:"tokens"`
}

// LogoutRequest ends the caller's sessions on DeviceToken, or on the device of the bearer token when empty.
type LogoutRequest struct {
	DeviceToken string `json:"device_token,omitempty"`
}

type LogoutAllRequest struct{}

type LogoutResponse struct {
	Revoked int `json:"revoked"`
}

type SendNotificationRequest struct {
	Type     common.NotificationType     `json:"type,omitempty"`
	UserIDs  []string                    `json:"user_ids"`
	SenderID string                      `json:"sender_id,omitempty"`
	Header   string                      `json:"header"`
	Content  string                      `json:"content"`
	ImageURL *string                     `json:"image_url,omitempty"`
	RoomID   string                      `json:"chat_room_id,omitempty"`
	Priority int                         `json:"priority,omitempty"`
	Metadata common.NotificationMetadata `json:"metadata,omitempty"`
}

func (r *SendNotificationRequest) event() common.NotificationEvent {
	return common.NotificationEvent{
		Type:     r.Type,
		UserIDs:  r.UserIDs,
		SenderID: r.SenderID,
		Header:   r.Header,
		Content:  r.Content,
		ImageURL: r.ImageURL,
		RoomID:   r.RoomID,
		Priority: r.Priority,
		Metadata: r.Metadata,
	}
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListNotificationsRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*common.NotificationResponse `json:"notifications"`
	UnreadCount   int64                          `json:"unread_count"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
}
