// Package presence derives who is online from the live sockets recorded on session rows.
package presence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/common"
	"gochat/internal/session"
	"gochat/internal/user"
)

// UnbindResult describes what a disconnect changed.
type UnbindResult struct {
	Found  bool
	UserID primitive.ObjectID
	// LeftRoomID is set when the socket was viewing a room that no other live session of the user still views.
	LeftRoomID *primitive.ObjectID
	// Offline is true when the user has no live session left.
	Offline bool
}

// BindResult describes what binding a socket changed.
type BindResult struct {
	// NewlyOnline is true on the user's first live session.
	NewlyOnline bool
	// ReplacedSocketID is the socket that held the session before, if any.
	ReplacedSocketID string
}

type Registry struct {
	sessions session.Repository
	users    user.ProfileRepository
}

func NewRegistry(sessions session.Repository, users user.ProfileRepository) *Registry {
	return &Registry{sessions: sessions, users: users}
}

// BindSocket attaches socketID to the session the connection authenticated with. A session holds
// one socket; an older socket on it is reported so the caller can close it.
func (r *Registry) BindSocket(ctx context.Context, userID, sessionID primitive.ObjectID, socketID string) (*BindResult, error) {
	if _, err := r.users.FindActive(ctx, userID); err != nil {
		return nil, err
	}
	before, err := r.sessions.BindSocket(ctx, sessionID, userID, socketID)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return nil, common.NotFound("Session not found")
	}

	res := &BindResult{}
	wasLive := before.IsActive && before.SocketID != nil
	if wasLive && *before.SocketID != socketID {
		res.ReplacedSocketID = *before.SocketID
	}
	live, err := r.sessions.CountLive(ctx, userID)
	if err != nil {
		return nil, err
	}
	res.NewlyOnline = live == 1 && !wasLive
	return res, nil
}

func (r *Registry) UnbindSocket(ctx context.Context, socketID string) (*UnbindResult, error) {
	before, err := r.sessions.ClearSocket(ctx, socketID)
	if err != nil {
		return nil, err
	}
	if before == nil {
		return &UnbindResult{}, nil
	}

	res := &UnbindResult{Found: true, UserID: before.UserID}
	if before.ViewingRoomID != nil {
		viewing, err := r.sessions.CountViewing(ctx, before.UserID, *before.ViewingRoomID)
		if err != nil {
			return nil, err
		}
		if viewing == 0 {
			room := *before.ViewingRoomID
			res.LeftRoomID = &room
		}
	}

	live, err := r.sessions.CountLive(ctx, before.UserID)
	if err != nil {
		return nil, err
	}
	res.Offline = live == 0
	return res, nil
}

func (r *Registry) IsOnline(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	live, err := r.sessions.CountLive(ctx, userID)
	if err != nil {
		return false, err
	}
	return live > 0, nil
}

func (r *Registry) OnlineUsers(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	return r.sessions.OnlineUsers(ctx, userIDs)
}

// IsViewing reports whether any live session of the user has roomID open.
func (r *Registry) IsViewing(ctx context.Context, userID, roomID primitive.ObjectID) (bool, error) {
	n, err := r.sessions.CountViewing(ctx, userID, roomID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetViewing records the room open on the socket's device; a nil roomID clears it.
func (r *Registry) SetViewing(ctx context.Context, userID primitive.ObjectID, socketID string, roomID *primitive.ObjectID) error {
	ok, err := r.sessions.SetViewing(ctx, userID, socketID, roomID)
	if err != nil {
		return err
	}
	if !ok {
		return common.NotFound("Session not found")
	}
	return nil
}
