package session

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/common"
)

// Session is one device's credential and connection state
type Session struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID                primitive.ObjectID  `bson:"user_id" json:"user_id"`
	UserRole              common.UserRole     `bson:"user_role" json:"user_role"`
	DeviceToken           string              `bson:"device_token" json:"device_token"`
	DeviceType            common.DeviceType   `bson:"device_type" json:"device_type"`
	AccessToken           string              `bson:"access_token" json:"-"`
	AccessTokenID         string              `bson:"access_token_id" json:"-"`
	AccessTokenExpiresAt  time.Time           `bson:"access_token_expires_at" json:"-"`
	RefreshTokenHash      string              `bson:"refresh_token_hash" json:"-"`
	RefreshTokenExpiresAt time.Time           `bson:"refresh_token_expires_at" json:"refresh_token_expires_at"`
	SocketID              *string             `bson:"socket_id" json:"socket_id"`
	ViewingRoomID         *primitive.ObjectID `bson:"viewing_room_id" json:"chat_room_id"`
	IsLogin               bool                `bson:"is_login" json:"is_login"`
	IsActive              bool                `bson:"is_active" json:"is_active"`
	CreatedAt             time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time           `bson:"updated_at" json:"updated_at"`
}

// Rotation is the credential set written by a successful refresh.
type Rotation struct {
	AccessToken           string
	AccessTokenID         string
	AccessTokenExpiresAt  time.Time
	RefreshTokenHash      string
	RefreshTokenExpiresAt time.Time
}

type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

type CreateInput struct {
	UserID      string            `json:"user_id"`
	DeviceToken string            `json:"device_token"`
	DeviceType  common.DeviceType `json:"device_type"`
	Role        common.UserRole   `json:"user_role"`
}

// Identity is the authenticated principal bound to a connection
type Identity struct {
	SessionID   primitive.ObjectID
	UserID      primitive.ObjectID
	DeviceToken string
	Role        common.UserRole
}
