package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/metrics"
	"gochat/internal/session"
)

const healthTimeout = 3 * time.Second

type Sessions interface {
	Rotate(ctx context.Context, refreshToken, deviceToken string) (*session.TokenPair, error)
	LogoutOne(ctx context.Context, userID, deviceToken string) (int, error)
	LogoutAll(ctx context.Context, userID string) (int, error)
}

// Pinger is a dependency the health endpoint checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	sessions    Sessions
	tokens      common.TokenVerifier
	revocations common.RevocationChecker
	ws          http.Handler
	deps        map[string]Pinger
	environment string
}

func NewRouter(
	cfg *config.Config,
	sessions Sessions,
	tokens common.TokenVerifier,
	revocations common.RevocationChecker,
	ws http.Handler,
	deps map[string]Pinger,
) *Router {
	return &Router{
		sessions:    sessions,
		tokens:      tokens,
		revocations: revocations,
		ws:          ws,
		deps:        deps,
		environment: cfg.Server.Environment,
	}
}

func (rt *Router) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware, requestLogger)

	r.Handle("/ws", rt.ws).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", rt.health).Methods(http.MethodGet)
	api.HandleFunc("/auth/refresh", rt.refresh).Methods(http.MethodPost)

	secured := api.PathPrefix("/auth").Subrouter()
	secured.Use(requireBearer(rt.tokens, rt.revocations))
	secured.HandleFunc("/logout", rt.logout).Methods(http.MethodPost)
	secured.HandleFunc("/logout-all", rt.logoutAll).Methods(http.MethodPost)

	// outside the router so preflight requests never hit method matching
	return cors(rt.environment)(r)
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	checks := make(map[string]string, len(rt.deps))
	healthy := true
	for name, dep := range rt.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	if !healthy {
		respondJSON(w, http.StatusServiceUnavailable, apiResponse{Message: "Service unhealthy", Data: checks})
		return
	}
	respondOK(w, "Service healthy", checks)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	DeviceToken  string `json:"device_token"`
}

func (rt *Router) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, common.InvalidArgument("Invalid request body"))
		return
	}
	tokens, err := rt.sessions.Rotate(r.Context(), req.RefreshToken, req.DeviceToken)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "Token refreshed successfully", tokens)
}

type logoutRequest struct {
	DeviceToken string `json:"device_token"`
}

func (rt *Router) logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := common.ClaimsFromContext(r.Context())

	var req logoutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondErr(w, common.InvalidArgument("Invalid request body"))
			return
		}
	}
	deviceToken := req.DeviceToken
	if deviceToken == "" {
		deviceToken = claims.DeviceToken
	}
	if deviceToken == "" {
		respondErr(w, common.InvalidArgument("device_token is required"))
		return
	}

	n, err := rt.sessions.LogoutOne(r.Context(), claims.UserID, deviceToken)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "Logged out successfully", map[string]int{"revoked": n})
}

func (rt *Router) logoutAll(w http.ResponseWriter, r *http.Request) {
	claims, _ := common.ClaimsFromContext(r.Context())
	n, err := rt.sessions.LogoutAll(r.Context(), claims.UserID)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "Logged out from all devices", map[string]int{"revoked": n})
}
