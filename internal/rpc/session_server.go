package rpc

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"gochat/internal/common"
	"gochat/internal/session"
)

type Sessions interface {
	CreateSession(ctx context.Context, in session.CreateInput) (*session.TokenPair, error)
	Rotate(ctx context.Context, refreshToken, deviceToken string) (*session.TokenPair, error)
	LogoutOne(ctx context.Context, userID, deviceToken string) (int, error)
	LogoutAll(ctx context.Context, userID string) (int, error)
}

type Notifications interface {
	SendNotification(ctx context.Context, event common.NotificationEvent) error
	ListNotifications(ctx context.Context, userID string, page, limit int) ([]*common.NotificationResponse, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

// Policies lists how each method authenticates. Everything but the logout calls is service-to-service.
func Policies() map[string]common.MethodAuth {
	return map[string]common.MethodAuth{
		healthpb.Health_Check_FullMethodName: common.AuthPublic,
		MethodCreateSession:                  common.AuthInternal,
		MethodRefreshSession:                 common.AuthInternal,
		MethodLogout:                         common.AuthBearer,
		MethodLogoutAll:                      common.AuthBearer,
		MethodSendNotification:               common.AuthInternal,
		MethodListNotifications:              common.AuthInternal,
		MethodMarkNotificationRead:           common.AuthInternal,
	}
}

type SessionServer struct {
	sessions      Sessions
	notifications Notifications
}

var _ SessionServiceServer = (*SessionServer)(nil)

func NewSessionServer(sessions Sessions, notifications Notifications) *SessionServer {
	return &SessionServer{sessions: sessions, notifications: notifications}
}

func (s *SessionServer) CreateSession(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error) {
	tokens, err := s.sessions.CreateSession(ctx, session.CreateInput{
		UserID:      req.UserID,
		DeviceToken: req.DeviceToken,
		DeviceType:  req.DeviceType,
		Role:        req.Role,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &SessionResponse{Tokens: tokens}, nil
}

func (s *SessionServer) RefreshSession(ctx context.Context, req *RefreshSessionRequest) (*SessionResponse, error) {
	tokens, err := s.sessions.Rotate(ctx, req.RefreshToken, req.DeviceToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &SessionResponse{Tokens: tokens}, nil
}

func (s *SessionServer) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	claims, ok := common.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}
	deviceToken := req.DeviceToken
	if deviceToken == "" {
		deviceToken = claims.DeviceToken
	}
	if deviceToken == "" {
		return nil, status.Error(codes.InvalidArgument, "device_token is required")
	}

	n, err := s.sessions.LogoutOne(ctx, claims.UserID, deviceToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &LogoutResponse{Revoked: n}, nil
}

func (s *SessionServer) LogoutAll(ctx context.Context, _ *LogoutAllRequest) (*LogoutResponse, error) {
	claims, ok := common.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user not authenticated")
	}
	n, err := s.sessions.LogoutAll(ctx, claims.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &LogoutResponse{Revoked: n}, nil
}

func (s *SessionServer) SendNotification(ctx context.Context, req *SendNotificationRequest) (*StatusResponse, error) {
	if err := s.notifications.SendNotification(ctx, req.event()); err != nil {
		return nil, toStatus(err)
	}
	return &StatusResponse{Success: true, Message: "Notification sent successfully"}, nil
}

func (s *SessionServer) ListNotifications(ctx context.Context, req *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	list, err := s.notifications.ListNotifications(ctx, req.UserID, req.Page, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}
	unread, err := s.notifications.UnreadCount(ctx, req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListNotificationsResponse{Notifications: list, UnreadCount: unread}, nil
}

func (s *SessionServer) MarkNotificationRead(ctx context.Context, req *MarkNotificationReadRequest) (*StatusResponse, error) {
	if req.NotificationID == "" || req.UserID == "" {
		return nil, status.Error(codes.InvalidArgument, "notification_id and user_id are required")
	}
	if err := s.notifications.MarkAsRead(ctx, req.NotificationID, req.UserID); err != nil {
		return nil, toStatus(err)
	}
	return &StatusResponse{Success: true, Message: "Notification marked as read"}, nil
}

// toStatus converts an application error into a gRPC status. Internal errors are logged and masked.
func toStatus(err error) error {
	msg := common.PublicMessage(err)
	switch common.CodeOf(err) {
	case common.CodeNotFound:
		return status.Error(codes.NotFound, msg)
	case common.CodePermissionDenied:
		return status.Error(codes.PermissionDenied, msg)
	case common.CodeAuthFailed, common.CodeTokenReused:
		return status.Error(codes.Unauthenticated, msg)
	case common.CodeInvalidArgument:
		return status.Error(codes.InvalidArgument, msg)
	case common.CodeRateLimited:
		return status.Error(codes.ResourceExhausted, msg)
	case common.CodeAlreadySatisfied:
		return status.Error(codes.AlreadyExists, msg)
	case common.CodeProviderFailure:
		return status.Error(codes.Unavailable, msg)
	default:
		log.Error().Err(err).Msg("rpc call failed")
		return status.Error(codes.Internal, msg)
	}
}
