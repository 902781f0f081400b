package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"gochat/internal/common"
	"gochat/internal/user"
)

var errBlockedByAdmin = common.AuthFailed("Your account has been blocked by the admin.")

// Authenticator resolves a bearer token to the identity of a logged-in device.
type Authenticator struct {
	tokens      common.TokenVerifier
	revocations common.RevocationChecker
	repo        Repository
	users       user.ProfileRepository
}

func NewAuthenticator(tokens common.TokenVerifier, revocations common.RevocationChecker, repo Repository, users user.ProfileRepository) *Authenticator {
	return &Authenticator{tokens: tokens, revocations: revocations, repo: repo, users: users}
}

func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, common.ErrAuthFailed
	}
	claims, err := a.tokens.ValidToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("access token rejected")
		return nil, common.ErrAuthFailed
	}

	if a.revocations != nil {
		revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, common.ErrAuthFailed
		}
	}

	sess, err := a.repo.ByAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrAuthFailed
	}

	profile, err := a.users.FindActive(ctx, sess.UserID)
	if err != nil {
		if common.IsCode(err, common.CodeNotFound) {
			return nil, common.ErrAuthFailed
		}
		return nil, err
	}
	if profile.IsBlockedByAdmin {
		return nil, errBlockedByAdmin
	}

	return &Identity{
		SessionID:   sess.ID,
		UserID:      sess.UserID,
		DeviceToken: sess.DeviceToken,
		Role:        sess.UserRole,
	}, nil
}
