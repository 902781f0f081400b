package session

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/user"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s *Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) LoggedInByDevice(ctx context.Context, deviceToken string) ([]*Session, error) {
	args := m.Called(ctx, deviceToken)
	sessions, _ := args.Get(0).([]*Session)
	return sessions, args.Error(1)
}

func (m *MockRepository) ByAccessToken(ctx context.Context, accessToken string) (*Session, error) {
	args := m.Called(ctx, accessToken)
	sess, _ := args.Get(0).(*Session)
	return sess, args.Error(1)
}

func (m *MockRepository) Rotate(ctx context.Context, id primitive.ObjectID, oldHash string, r Rotation) (bool, error) {
	args := m.Called(ctx, id, oldHash, r)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RevokeDevice(ctx context.Context, deviceToken string) ([]*Session, error) {
	args := m.Called(ctx, deviceToken)
	sessions, _ := args.Get(0).([]*Session)
	return sessions, args.Error(1)
}

func (m *MockRepository) Logout(ctx context.Context, userID primitive.ObjectID, deviceToken string) ([]*Session, error) {
	args := m.Called(ctx, userID, deviceToken)
	sessions, _ := args.Get(0).([]*Session)
	return sessions, args.Error(1)
}

func (m *MockRepository) LogoutAll(ctx context.Context, userID primitive.ObjectID) ([]*Session, error) {
	args := m.Called(ctx, userID)
	sessions, _ := args.Get(0).([]*Session)
	return sessions, args.Error(1)
}

func (m *MockRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) BindSocket(ctx context.Context, sessionID, userID primitive.ObjectID, socketID string) (*Session, error) {
	args := m.Called(ctx, sessionID, userID, socketID)
	sess, _ := args.Get(0).(*Session)
	return sess, args.Error(1)
}

func (m *MockRepository) ClearSocket(ctx context.Context, socketID string) (*Session, error) {
	args := m.Called(ctx, socketID)
	sess, _ := args.Get(0).(*Session)
	return sess, args.Error(1)
}

func (m *MockRepository) CountLive(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CountViewing(ctx context.Context, userID, roomID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) SetViewing(ctx context.Context, userID primitive.ObjectID, socketID string, roomID *primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, socketID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) OnlineUsers(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	args := m.Called(ctx, userIDs)
	online, _ := args.Get(0).(map[primitive.ObjectID]bool)
	return online, args.Error(1)
}

func (m *MockRepository) PushTokens(ctx context.Context, userIDs []primitive.ObjectID, skipViewing *primitive.ObjectID) ([]string, error) {
	args := m.Called(ctx, userIDs, skipViewing)
	tokens, _ := args.Get(0).([]string)
	return tokens, args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindActive(ctx context.Context, id primitive.ObjectID) (*user.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*user.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) Profiles(ctx context.Context, ids []primitive.ObjectID, search string) (map[primitive.ObjectID]*user.Profile, error) {
	args := m.Called(ctx, ids, search)
	p, _ := args.Get(0).(map[primitive.ObjectID]*user.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) ProfilePictures(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	args := m.Called(ctx, ids)
	p, _ := args.Get(0).(map[primitive.ObjectID]string)
	return p, args.Error(1)
}

type MockTokenRevoker struct {
	mock.Mock
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
