package common

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type MethodAuth int

const (
	AuthBearer MethodAuth = iota
	AuthPublic
	AuthInternal
)

type TokenVerifier interface {
	ValidToken(token string) (*Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
// A bare token without the scheme is accepted as well.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.Fields(header)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
		return parts[1]
	case len(parts) == 1 && !strings.EqualFold(parts[0], "bearer"):
		return parts[0]
	default:
		return ""
	}
}

// AuthInterceptor enforces per-method authentication. Methods missing from policies require a bearer token.
// Internal methods require the shared key in the x-api-key metadata.
func AuthInterceptor(tokens TokenVerifier, revocations RevocationChecker, internalKey string, policies map[string]MethodAuth) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		policy := policies[info.FullMethod]
		if policy == AuthPublic {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		if policy == AuthInternal {
			keys := md.Get("x-api-key")
			if internalKey == "" || len(keys) == 0 ||
				subtle.ConstantTimeCompare([]byte(keys[0]), []byte(internalKey)) != 1 {
				return nil, status.Error(codes.PermissionDenied, "internal api key required")
			}
			return handler(ctx, req)
		}

		vals := md.Get("authorization")
		if len(vals) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization required")
		}
		tokenString := BearerToken(vals[0])
		if tokenString == "" {
			return nil, status.Error(codes.Unauthenticated, "invalid auth header")
		}

		claims, err := tokens.ValidToken(tokenString)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		if revocations != nil {
			revoked, err := revocations.IsRevoked(ctx, claims.ID)
			if err != nil {
				return nil, status.Error(codes.Unavailable, "token check unavailable")
			}
			if revoked {
				return nil, status.Error(codes.Unauthenticated, "token revoked")
			}
		}

		return handler(WithClaims(ctx, claims), req)
	}
}
