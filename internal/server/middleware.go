package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gochat/internal/common"
)

// cors allows any origin outside production; in production only same-host origins are echoed back.
func cors(environment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if environment != "production" || strings.Contains(origin, r.Host) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// requireBearer verifies the access token and stores its claims in the request context.
func requireBearer(tokens common.TokenVerifier, revocations common.RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := common.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				respondErr(w, common.ErrAuthFailed)
				return
			}
			claims, err := tokens.ValidToken(token)
			if err != nil {
				respondErr(w, common.ErrAuthFailed)
				return
			}
			if revocations != nil {
				revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					respondErr(w, common.WrapError(common.CodeProviderFailure, "Token check unavailable", err))
					return
				}
				if revoked {
					respondErr(w, common.ErrAuthFailed)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(common.WithClaims(r.Context(), claims)))
		})
	}
}
