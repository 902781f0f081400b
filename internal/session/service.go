package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/metrics"
	"gochat/internal/user"
)

type TokenIssuer interface {
	GenerateToken(userID string, role common.UserRole, deviceToken string) (string, *common.Claims, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// Service creates sessions and rotates their refresh tokens.
type Service struct {
	repo       Repository
	users      user.ProfileRepository
	tokens     TokenIssuer
	revoker    TokenRevoker
	bcryptCost int
	refreshTTL time.Duration
	now        func() time.Time
}

func NewService(repo Repository, users user.ProfileRepository, tokens TokenIssuer, revoker TokenRevoker, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		tokens:     tokens,
		revoker:    revoker,
		bcryptCost: cfg.Auth.BcryptCost,
		refreshTTL: cfg.RefreshTokenTTL(),
		now:        time.Now,
	}
}

// CreateSession signs a device in. Other sessions of the user stay valid.
func (s *Service) CreateSession(ctx context.Context, in CreateInput) (*TokenPair, error) {
	userID, err := primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		return nil, common.InvalidArgument("Invalid user id")
	}
	if in.DeviceToken == "" {
		return nil, common.InvalidArgument("Device token is required")
	}
	if !in.DeviceType.IsValid() {
		return nil, common.InvalidArgument("Invalid device type")
	}
	if in.Role == "" {
		in.Role = common.RoleUser
	}
	if _, err := s.users.FindActive(ctx, userID); err != nil {
		return nil, err
	}

	access, claims, err := s.tokens.GenerateToken(in.UserID, in.Role, in.DeviceToken)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, hash, err := common.NewRefreshSecret(s.bcryptCost)
	if err != nil {
		return nil, err
	}

	refreshExpiry := s.now().Add(s.refreshTTL)
	sess := &Session{
		UserID:                userID,
		UserRole:              in.Role,
		DeviceToken:           in.DeviceToken,
		DeviceType:            in.DeviceType,
		AccessToken:           access,
		AccessTokenID:         claims.ID,
		AccessTokenExpiresAt:  claims.ExpiresAt.Time,
		RefreshTokenHash:      hash,
		RefreshTokenExpiresAt: refreshExpiry,
		IsLogin:               true,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", in.UserID).Str("device_type", string(in.DeviceType)).Msg("session created")
	return &TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  claims.ExpiresAt.Time,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

// Rotate exchanges a refresh token for a new token pair. Any failure to match a live, unexpired
// session of the device revokes every session of that device and returns common.ErrTokenReused.
func (s *Service) Rotate(ctx context.Context, refreshToken, deviceToken string) (*TokenPair, error) {
	if refreshToken == "" || deviceToken == "" {
		return nil, common.InvalidArgument("Refresh token and device token are required")
	}

	sessions, err := s.repo.LoggedInByDevice(ctx, deviceToken)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var matched *Session
	for _, sess := range sessions {
		if !common.CheckSecret(refreshToken, sess.RefreshTokenHash) {
			continue
		}
		if !sess.RefreshTokenExpiresAt.After(now) {
			break
		}
		matched = sess
		break
	}
	if matched == nil {
		return nil, s.revokeReused(ctx, deviceToken)
	}

	access, claims, err := s.tokens.GenerateToken(matched.UserID.Hex(), matched.UserRole, deviceToken)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, hash, err := common.NewRefreshSecret(s.bcryptCost)
	if err != nil {
		return nil, err
	}
	refreshExpiry := now.Add(s.refreshTTL)

	swapped, err := s.repo.Rotate(ctx, matched.ID, matched.RefreshTokenHash, Rotation{
		AccessToken:           access,
		AccessTokenID:         claims.ID,
		AccessTokenExpiresAt:  claims.ExpiresAt.Time,
		RefreshTokenHash:      hash,
		RefreshTokenExpiresAt: refreshExpiry,
	})
	if err != nil {
		return nil, err
	}
	if !swapped {
		// another request rotated the same token first
		return nil, s.revokeReused(ctx, deviceToken)
	}

	s.revokeAccessTokens(ctx, []*Session{matched})
	metrics.RefreshTotal.WithLabelValues("success").Inc()
	return &TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  claims.ExpiresAt.Time,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

func (s *Service) revokeReused(ctx context.Context, deviceToken string) error {
	revoked, err := s.repo.RevokeDevice(ctx, deviceToken)
	if err != nil {
		return fmt.Errorf("failed to revoke device sessions: %w", err)
	}
	s.revokeAccessTokens(ctx, revoked)

	log.Warn().
		Str("device_token", deviceToken).
		Int("revoked_sessions", len(revoked)).
		Msg("refresh token reuse detected, device sessions revoked")
	metrics.RefreshTotal.WithLabelValues("reused").Inc()
	return common.ErrTokenReused
}

// LogoutOne ends the sessions of one device of the user.
func (s *Service) LogoutOne(ctx context.Context, userID, deviceToken string) (int, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, common.InvalidArgument("Invalid user id")
	}
	sessions, err := s.repo.Logout(ctx, uid, deviceToken)
	if err != nil {
		return 0, err
	}
	s.revokeAccessTokens(ctx, sessions)
	return len(sessions), nil
}

func (s *Service) LogoutAll(ctx context.Context, userID string) (int, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, common.InvalidArgument("Invalid user id")
	}
	sessions, err := s.repo.LogoutAll(ctx, uid)
	if err != nil {
		return 0, err
	}
	s.revokeAccessTokens(ctx, sessions)
	return len(sessions), nil
}

// revokeAccessTokens blacklists the current access tokens of the sessions. Failures are logged only;
// the sessions are already logged out in the store.
func (s *Service) revokeAccessTokens(ctx context.Context, sessions []*Session) {
	for _, sess := range sessions {
		if err := s.revoker.Revoke(ctx, sess.AccessTokenID, sess.AccessTokenExpiresAt); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID.Hex()).Msg("failed to blacklist access token")
		}
	}
}
