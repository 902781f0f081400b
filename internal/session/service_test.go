package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/user"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret",
			Issuer:              "pet-api",
			Audience:            "pet-app",
			AccessTokenTTL:      time.Hour,
			RefreshTokenTTLDays: 30,
			BcryptCost:          bcrypt.MinCost,
		},
	}
}

type serviceFixture struct {
	repo    *MockRepository
	users   *MockProfileRepository
	revoker *MockTokenRevoker
	tokens  *common.TokenManager
	svc     *Service
}

func newServiceFixture() *serviceFixture {
	cfg := testConfig()
	f := &serviceFixture{
		repo:    new(MockRepository),
		users:   new(MockProfileRepository),
		revoker: new(MockTokenRevoker),
		tokens:  common.NewTokenManager(cfg),
	}
	f.svc = NewService(f.repo, f.users, f.tokens, f.revoker, cfg)
	return f
}

func storedSession(t *testing.T, secret string, refreshExpiry time.Time) *Session {
	t.Helper()
	hash, err := common.HashSecret(secret, bcrypt.MinCost)
	require.NoError(t, err)
	return &Session{
		ID:                    primitive.NewObjectID(),
		UserID:                primitive.NewObjectID(),
		UserRole:              common.RoleUser,
		DeviceToken:           "device-1",
		DeviceType:            common.DeviceTypeAndroid,
		AccessTokenID:         "jti-" + secret,
		AccessTokenExpiresAt:  time.Now().Add(time.Hour),
		RefreshTokenHash:      hash,
		RefreshTokenExpiresAt: refreshExpiry,
		IsLogin:               true,
	}
}

func TestService_CreateSession(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name      string
		input     CreateInput
		mockSetup func(f *serviceFixture)
		wantCode  common.ErrorCode
	}{
		{
			name:  "creates session",
			input: CreateInput{UserID: userID.Hex(), DeviceToken: "device-1", DeviceType: common.DeviceTypeIOS},
			mockSetup: func(f *serviceFixture) {
				f.users.On("FindActive", mock.Anything, userID).Return(&user.Profile{ID: userID}, nil)
				f.repo.On("Create", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)
			},
		},
		{
			name:      "invalid user id",
			input:     CreateInput{UserID: "nope", DeviceToken: "device-1", DeviceType: common.DeviceTypeIOS},
			mockSetup: func(f *serviceFixture) {},
			wantCode:  common.CodeInvalidArgument,
		},
		{
			name:      "missing device token",
			input:     CreateInput{UserID: userID.Hex(), DeviceType: common.DeviceTypeIOS},
			mockSetup: func(f *serviceFixture) {},
			wantCode:  common.CodeInvalidArgument,
		},
		{
			name:      "bad device type",
			input:     CreateInput{UserID: userID.Hex(), DeviceToken: "device-1", DeviceType: "desktop"},
			mockSetup: func(f *serviceFixture) {},
			wantCode:  common.CodeInvalidArgument,
		},
		{
			name:  "unknown user",
			input: CreateInput{UserID: userID.Hex(), DeviceToken: "device-1", DeviceType: common.DeviceTypeWeb},
			mockSetup: func(f *serviceFixture) {
				f.users.On("FindActive", mock.Anything, userID).Return(nil, common.NotFound("User not found"))
			},
			wantCode: common.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			tt.mockSetup(f)

			pair, err := f.svc.CreateSession(context.Background(), tt.input)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, common.CodeOf(err))
				assert.Nil(t, pair)
				f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, pair.AccessToken)
			assert.NotEmpty(t, pair.RefreshToken)

			created := f.repo.Calls[0].Arguments.Get(1).(*Session)
			assert.Equal(t, userID, created.UserID)
			assert.Equal(t, common.RoleUser, created.UserRole)
			assert.True(t, created.IsLogin)
			assert.Nil(t, created.SocketID)
			assert.Equal(t, pair.AccessToken, created.AccessToken)
			assert.NotEqual(t, pair.RefreshToken, created.RefreshTokenHash)
			assert.True(t, common.CheckSecret(pair.RefreshToken, created.RefreshTokenHash))
			assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), created.RefreshTokenExpiresAt, time.Minute)

			claims, err := f.tokens.ValidToken(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, userID.Hex(), claims.UserID)
			assert.Equal(t, claims.ID, created.AccessTokenID)
		})
	}
}

func TestService_Rotate_SucceedsOnceThenDetectsReuse(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	old := storedSession(t, "old-secret", time.Now().Add(24*time.Hour))

	var written Rotation
	f.repo.On("LoggedInByDevice", mock.Anything, "device-1").Return([]*Session{old}, nil).Once()
	f.repo.On("Rotate", mock.Anything, old.ID, old.RefreshTokenHash, mock.AnythingOfType("session.Rotation")).
		Run(func(args mock.Arguments) { written = args.Get(3).(Rotation) }).
		Return(true, nil).Once()
	f.revoker.On("Revoke", mock.Anything, old.AccessTokenID, old.AccessTokenExpiresAt).Return(nil).Once()

	pair, err := f.svc.Rotate(ctx, "old-secret", "device-1")
	require.NoError(t, err)
	assert.NotEqual(t, "old-secret", pair.RefreshToken)
	assert.True(t, common.CheckSecret(pair.RefreshToken, written.RefreshTokenHash))
	assert.False(t, common.CheckSecret("old-secret", written.RefreshTokenHash))
	assert.Equal(t, pair.AccessToken, written.AccessToken)

	// the store now holds the rotated hash, so the old secret no longer matches anything
	rotated := *old
	rotated.RefreshTokenHash = written.RefreshTokenHash
	rotated.AccessTokenID = written.AccessTokenID
	rotated.AccessTokenExpiresAt = written.AccessTokenExpiresAt
	f.repo.On("LoggedInByDevice", mock.Anything, "device-1").Return([]*Session{&rotated}, nil).Once()
	f.repo.On("RevokeDevice", mock.Anything, "device-1").Return([]*Session{&rotated}, nil).Once()
	f.revoker.On("Revoke", mock.Anything, rotated.AccessTokenID, rotated.AccessTokenExpiresAt).Return(nil).Once()

	pair, err = f.svc.Rotate(ctx, "old-secret", "device-1")
	assert.Nil(t, pair)
	assert.True(t, errors.Is(err, common.ErrTokenReused))
	assert.Equal(t, common.CodeTokenReused, common.CodeOf(err))

	f.repo.AssertExpectations(t)
	f.revoker.AssertExpectations(t)
}

func TestService_Rotate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		sessions func(t *testing.T) []*Session
		rotateOK bool
	}{
		{
			name:     "unknown token",
			sessions: func(t *testing.T) []*Session { return []*Session{storedSession(t, "other", time.Now().Add(time.Hour))} },
		},
		{
			name: "expired match",
			sessions: func(t *testing.T) []*Session {
				return []*Session{storedSession(t, "presented", time.Now().Add(-time.Minute))}
			},
		},
		{
			name:     "no sessions for device",
			sessions: func(t *testing.T) []*Session { return nil },
		},
		{
			name: "lost rotation race",
			sessions: func(t *testing.T) []*Session {
				return []*Session{storedSession(t, "presented", time.Now().Add(time.Hour))}
			},
			rotateOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			sessions := tt.sessions(t)

			f.repo.On("LoggedInByDevice", mock.Anything, "device-1").Return(sessions, nil)
			if tt.rotateOK {
				f.repo.On("Rotate", mock.Anything, sessions[0].ID, sessions[0].RefreshTokenHash, mock.Anything).Return(false, nil)
			}
			f.repo.On("RevokeDevice", mock.Anything, "device-1").Return(sessions, nil).Once()
			f.revoker.On("Revoke", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			pair, err := f.svc.Rotate(context.Background(), "presented", "device-1")

			assert.Nil(t, pair)
			assert.ErrorIs(t, err, common.ErrTokenReused)
			f.repo.AssertCalled(t, "RevokeDevice", mock.Anything, "device-1")
			f.revoker.AssertNumberOfCalls(t, "Revoke", len(sessions))
		})
	}
}

func TestService_Rotate_MissingInputDoesNotRevoke(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.Rotate(context.Background(), "", "device-1")
	assert.Equal(t, common.CodeInvalidArgument, common.CodeOf(err))

	_, err = f.svc.Rotate(context.Background(), "secret", "")
	assert.Equal(t, common.CodeInvalidArgument, common.CodeOf(err))

	f.repo.AssertNotCalled(t, "RevokeDevice", mock.Anything, mock.Anything)
}

func TestService_Logout(t *testing.T) {
	userID := primitive.NewObjectID()
	s1 := &Session{ID: primitive.NewObjectID(), AccessTokenID: "a", AccessTokenExpiresAt: time.Now().Add(time.Hour)}
	s2 := &Session{ID: primitive.NewObjectID(), AccessTokenID: "b", AccessTokenExpiresAt: time.Now().Add(time.Hour)}

	t.Run("one device", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("Logout", mock.Anything, userID, "device-1").Return([]*Session{s1}, nil)
		f.revoker.On("Revoke", mock.Anything, "a", s1.AccessTokenExpiresAt).Return(nil)

		n, err := f.svc.LogoutOne(context.Background(), userID.Hex(), "device-1")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		f.revoker.AssertExpectations(t)
	})

	t.Run("all devices, blacklist failure is not fatal", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.On("LogoutAll", mock.Anything, userID).Return([]*Session{s1, s2}, nil)
		f.revoker.On("Revoke", mock.Anything, "a", mock.Anything).Return(errors.New("redis down"))
		f.revoker.On("Revoke", mock.Anything, "b", mock.Anything).Return(nil)

		n, err := f.svc.LogoutAll(context.Background(), userID.Hex())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		f.revoker.AssertExpectations(t)
	})

	t.Run("invalid user id", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.LogoutAll(context.Background(), "bad")
		assert.Equal(t, common.CodeInvalidArgument, common.CodeOf(err))
	})
}
