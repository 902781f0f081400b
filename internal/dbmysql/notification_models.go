package dbmysql

import (
	"time"

	"gochat/internal/common"
)

// Notification is one in-app inbox entry
type Notification struct {
	ID        string                      `gorm:"primaryKey;size:36"`
	UserID    string                      `gorm:"not null;index:idx_user_created;size:24"`
	SenderID  *string                     `gorm:"size:24"`
	Header    string                      `gorm:"not null;size:255"`
	Content   string                      `gorm:"not null;type:text"`
	Type      string                      `gorm:"not null;size:50"`
	Status    string                      `gorm:"default:'pending';size:50"`
	RoomID    *string                     `gorm:"size:24"`
	MessageID *string                     `gorm:"size:24"`
	Metadata  common.NotificationMetadata `gorm:"type:json;serializer:json"`
	SentAt    *time.Time
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_user_created"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) ToResponse() *common.NotificationResponse {
	return &common.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		SenderID:  n.SenderID,
		Header:    n.Header,
		Content:   n.Content,
		RoomID:    n.RoomID,
		MessageID: n.MessageID,
		Status:    n.Status,
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}
