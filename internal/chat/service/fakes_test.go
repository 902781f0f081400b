package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/user"
)

type fakePresence struct {
	viewing map[primitive.ObjectID]primitive.ObjectID
	online  map[primitive.ObjectID]bool
}

func newFakePresence() *fakePresence {
	return &fakePresence{
		viewing: map[primitive.ObjectID]primitive.ObjectID{},
		online:  map[primitive.ObjectID]bool{},
	}
}

func (p *fakePresence) IsViewing(_ context.Context, userID, roomID primitive.ObjectID) (bool, error) {
	room, ok := p.viewing[userID]
	return ok && room == roomID, nil
}

func (p *fakePresence) OnlineUsers(_ context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := map[primitive.ObjectID]bool{}
	for _, id := range userIDs {
		if p.online[id] {
			out[id] = true
		}
	}
	return out, nil
}

type notifyCall struct {
	sender *user.Profile
	msg    *chat.Message
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (n *fakeNotifier) NotifyChatMessage(sender *user.Profile, msg *chat.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{sender: sender, msg: msg})
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
