package gateway

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
	"gochat/internal/notif"
	"gochat/internal/session"
	"gochat/internal/user"
)

type fakeAuth struct {
	identities map[string]*session.Identity
}

func (a *fakeAuth) Authenticate(_ context.Context, token string) (*session.Identity, error) {
	if id, ok := a.identities[token]; ok {
		cp := *id
		return &cp, nil
	}
	return nil, common.ErrAuthFailed
}

// memSessions stores session rows in memory. It implements the connection half of
// session.Repository; the credential methods are never reached from the gateway.
type memSessions struct {
	session.Repository

	mu   sync.Mutex
	rows map[primitive.ObjectID]*session.Session
}

func newMemSessions() *memSessions {
	return &memSessions{rows: make(map[primitive.ObjectID]*session.Session)}
}

func (m *memSessions) add(userID primitive.ObjectID, deviceToken string) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &session.Session{ID: primitive.NewObjectID(), UserID: userID, DeviceToken: deviceToken, IsLogin: true}
	m.rows[s.ID] = s
	return s.ID
}

func live(s *session.Session) bool {
	return s.IsActive && s.SocketID != nil
}

func snapshot(s *session.Session) *session.Session {
	cp := *s
	return &cp
}

func (m *memSessions) BindSocket(_ context.Context, sessionID, userID primitive.ObjectID, socketID string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[sessionID]
	if !ok || s.UserID != userID || !s.IsLogin {
		return nil, nil
	}
	before := snapshot(s)
	s.SocketID = &socketID
	s.IsActive = true
	return before, nil
}

func (m *memSessions) ClearSocket(_ context.Context, socketID string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.SocketID != nil && *s.SocketID == socketID {
			before := snapshot(s)
			s.SocketID, s.ViewingRoomID, s.IsActive = nil, nil, false
			return before, nil
		}
	}
	return nil, nil
}

func (m *memSessions) count(match func(s *session.Session) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.rows {
		if live(s) && match(s) {
			n++
		}
	}
	return n
}

func (m *memSessions) CountLive(_ context.Context, userID primitive.ObjectID) (int64, error) {
	return m.count(func(s *session.Session) bool { return s.UserID == userID }), nil
}

func (m *memSessions) CountViewing(_ context.Context, userID, roomID primitive.ObjectID) (int64, error) {
	return m.count(func(s *session.Session) bool {
		return s.UserID == userID && s.ViewingRoomID != nil && *s.ViewingRoomID == roomID
	}), nil
}

func (m *memSessions) SetViewing(_ context.Context, userID primitive.ObjectID, socketID string, roomID *primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if live(s) && s.UserID == userID && *s.SocketID == socketID {
			s.ViewingRoomID = roomID
			return true, nil
		}
	}
	return false, nil
}

func (m *memSessions) OnlineUsers(_ context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[primitive.ObjectID]bool)
	for _, id := range userIDs {
		for _, s := range m.rows {
			if live(s) && s.UserID == id {
				out[id] = true
			}
		}
	}
	return out, nil
}

func (m *memSessions) PushTokens(_ context.Context, userIDs []primitive.ObjectID, skipViewing *primitive.ObjectID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	skip := map[string]bool{}
	if skipViewing != nil {
		for _, s := range m.rows {
			if wanted[s.UserID] && live(s) && s.ViewingRoomID != nil && *s.ViewingRoomID == *skipViewing {
				skip[s.DeviceToken] = true
			}
		}
	}
	seen := map[string]bool{}
	var tokens []string
	for _, s := range m.rows {
		if !wanted[s.UserID] || !s.IsLogin || s.DeviceToken == "" || skip[s.DeviceToken] || seen[s.DeviceToken] {
			continue
		}
		seen[s.DeviceToken] = true
		tokens = append(tokens, s.DeviceToken)
	}
	return tokens, nil
}

type memProfiles struct {
	profiles map[primitive.ObjectID]*user.Profile
}

func (m *memProfiles) FindActive(_ context.Context, id primitive.ObjectID) (*user.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, common.NotFound("User not found")
	}
	return p, nil
}

func (m *memProfiles) Profiles(_ context.Context, ids []primitive.ObjectID, search string) (map[primitive.ObjectID]*user.Profile, error) {
	out := make(map[primitive.ObjectID]*user.Profile)
	for _, id := range ids {
		p, ok := m.profiles[id]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			continue
		}
		out[id] = p
	}
	return out, nil
}

func (m *memProfiles) ProfilePictures(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	return map[primitive.ObjectID]string{}, nil
}

type memRooms struct {
	mu    sync.Mutex
	rooms map[primitive.ObjectID]*chat.Room
}

func newMemRooms() *memRooms {
	return &memRooms{rooms: make(map[primitive.ObjectID]*chat.Room)}
}

func copyRoom(r *chat.Room) *chat.Room {
	cp := *r
	cp.Participants = append([]primitive.ObjectID(nil), r.Participants...)
	cp.HiddenBy = append([]primitive.ObjectID(nil), r.HiddenBy...)
	return &cp
}

func without(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (m *memRooms) GetOrCreate(_ context.Context, pairKey string, participants []primitive.ObjectID, requester primitive.ObjectID) (*chat.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.PairKey == pairKey && !r.IsDeleted {
			r.HiddenBy = without(r.HiddenBy, requester)
			return copyRoom(r), nil
		}
	}
	r := &chat.Room{
		ID:           primitive.NewObjectID(),
		Participants: participants,
		PairKey:      pairKey,
		CreatedBy:    requester,
		CreatedAt:    time.Now(),
	}
	m.rooms[r.ID] = r
	return copyRoom(r), nil
}

func (m *memRooms) FindByID(_ context.Context, id primitive.ObjectID) (*chat.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok || r.IsDeleted {
		return nil, common.NotFound("Chat room not found")
	}
	return copyRoom(r), nil
}

func (m *memRooms) ListVisible(_ context.Context, viewer primitive.ObjectID) ([]*chat.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*chat.Room
	for _, r := range m.rooms {
		if r.HasParticipant(viewer) && !r.IsDeleted && !r.IsHiddenFor(viewer) {
			out = append(out, copyRoom(r))
		}
	}
	return out, nil
}

func (m *memRooms) AddHidden(_ context.Context, roomID, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[roomID]; ok && !r.IsHiddenFor(userID) {
		r.HiddenBy = append(r.HiddenBy, userID)
	}
	return nil
}

func (m *memRooms) ClearHidden(_ context.Context, roomID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[roomID]; ok {
		r.HiddenBy = nil
	}
	return nil
}

type memMessages struct {
	mu       sync.Mutex
	messages []*chat.Message
}

func copyMessage(msg *chat.Message) *chat.Message {
	cp := *msg
	cp.HiddenBy = append([]primitive.ObjectID(nil), msg.HiddenBy...)
	return &cp
}

func hide(msg *chat.Message, userID primitive.ObjectID) bool {
	for _, id := range msg.HiddenBy {
		if id == userID {
			return false
		}
	}
	msg.HiddenBy = append(msg.HiddenBy, userID)
	return true
}

// newestFirst orders messages by sent_at, ties broken by id.
func newestFirst(msgs []*chat.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if !msgs[i].SentAt.Equal(msgs[j].SentAt) {
			return msgs[i].SentAt.After(msgs[j].SentAt)
		}
		return msgs[i].ID.Hex() > msgs[j].ID.Hex()
	})
}

func (m *memMessages) Insert(_ context.Context, msg *chat.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = now
	}
	msg.CreatedAt, msg.UpdatedAt = now, now
	m.messages = append(m.messages, copyMessage(msg))
	return nil
}

func (m *memMessages) findLocked(id primitive.ObjectID) *chat.Message {
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

func (m *memMessages) FindByID(_ context.Context, id primitive.ObjectID) (*chat.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.findLocked(id)
	if msg == nil {
		return nil, common.NotFound("Message not found")
	}
	return copyMessage(msg), nil
}

func (m *memMessages) UpdateBody(_ context.Context, id, sender primitive.ObjectID, body string) (*chat.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.findLocked(id)
	if msg == nil || msg.SenderID != sender || msg.DeletedForEveryone {
		return nil, common.NotFound("Message not found")
	}
	msg.Body, msg.IsEdited = body, true
	return copyMessage(msg), nil
}

func (m *memMessages) MarkDeletedForEveryone(_ context.Context, id, sender primitive.ObjectID) (*chat.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.findLocked(id)
	if msg == nil || msg.SenderID != sender {
		return nil, common.NotFound("Message not found")
	}
	msg.DeletedForEveryone = true
	return copyMessage(msg), nil
}

func (m *memMessages) Hide(_ context.Context, id, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg := m.findLocked(id); msg != nil {
		hide(msg, userID)
	}
	return nil
}

func (m *memMessages) HideAllInRoom(_ context.Context, roomID, userID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, msg := range m.messages {
		if msg.RoomID == roomID && msg.VisibleTo(userID) && hide(msg, userID) {
			n++
		}
	}
	return n, nil
}

func (m *memMessages) MarkRead(_ context.Context, roomID, reader primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, msg := range m.messages {
		if msg.RoomID == roomID && msg.ReceiverID == reader && !msg.IsRead {
			msg.IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memMessages) roomLocked(roomID primitive.ObjectID, keep func(*chat.Message) bool) []*chat.Message {
	var out []*chat.Message
	for _, msg := range m.messages {
		if msg.RoomID == roomID && keep(msg) {
			out = append(out, msg)
		}
	}
	newestFirst(out)
	return out
}

func (m *memMessages) LatestID(_ context.Context, roomID primitive.ObjectID) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.roomLocked(roomID, func(*chat.Message) bool { return true })
	if len(all) == 0 {
		return primitive.NilObjectID, nil
	}
	return all[0].ID, nil
}

func (m *memMessages) ListVisible(_ context.Context, roomID, viewer primitive.ObjectID, skip, limit int64) ([]*chat.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	visible := m.roomLocked(roomID, func(msg *chat.Message) bool { return msg.VisibleTo(viewer) })
	out := []*chat.Message{}
	for i := skip; i < int64(len(visible)) && int64(len(out)) < limit; i++ {
		out = append(out, copyMessage(visible[i]))
	}
	return out, nil
}

func (m *memMessages) RoomStats(_ context.Context, viewer primitive.ObjectID, roomIDs []primitive.ObjectID) (map[primitive.ObjectID]*chat.RoomStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[primitive.ObjectID]*chat.RoomStats)
	for _, roomID := range roomIDs {
		visible := m.roomLocked(roomID, func(msg *chat.Message) bool { return msg.VisibleTo(viewer) })
		if len(visible) == 0 {
			continue
		}
		last := visible[0]
		st := &chat.RoomStats{RoomID: roomID, LastMessage: chat.LastMessage{
			ID: last.ID, Body: last.Body, Kind: last.Kind, SentAt: last.SentAt,
		}}
		for _, msg := range visible {
			if msg.ReceiverID == viewer && !msg.IsRead {
				st.UnreadCount++
			}
		}
		out[roomID] = st
	}
	return out, nil
}

type memInbox struct {
	mu      sync.Mutex
	records []*dbmysql.Notification
}

func (m *memInbox) Create(_ context.Context, n *dbmysql.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, n)
	return nil
}

func (m *memInbox) ByUserID(_ context.Context, userID string, limit, offset int) ([]*dbmysql.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*dbmysql.Notification
	for _, n := range m.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memInbox) MarkAsRead(context.Context, string, string) error {
	return nil
}

func (m *memInbox) UnreadCount(_ context.Context, userID string) (int64, error) {
	recs, _ := m.ByUserID(context.Background(), userID, 1<<30, 0)
	return int64(len(recs)), nil
}

type pushCall struct {
	tokens  []string
	payload notif.Payload
}

// recordingPusher captures every fan-out the push observer hands over.
type recordingPusher struct {
	mu    sync.Mutex
	calls []pushCall
}

func (p *recordingPusher) Notify(_ context.Context, tokens []string, payload notif.Payload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, pushCall{tokens: append([]string(nil), tokens...), payload: payload})
}

func (p *recordingPusher) snapshot() []pushCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushCall(nil), p.calls...)
}
