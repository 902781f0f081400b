package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/user"
)

//go:generate mockgen -source=../repository/chat_repository.go -destination=mocks/mock_chat_repository.go -package=mocks

// PresenceReader is the part of the presence registry the chat services read.
type PresenceReader interface {
	IsViewing(ctx context.Context, userID, roomID primitive.ObjectID) (bool, error)
	OnlineUsers(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
}

// MessageNotifier queues a push for a message the receiver is not looking at. It must not block.
type MessageNotifier interface {
	NotifyChatMessage(sender *user.Profile, msg *chat.Message)
}
