package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gochat.v1.SessionService"

const (
	MethodCreateSession        = "/" + ServiceName + "/CreateSession"
	MethodRefreshSession       = "/" + ServiceName + "/RefreshSession"
	MethodLogout               = "/" + ServiceName + "/Logout"
	MethodLogoutAll            = "/" + ServiceName + "/LogoutAll"
	MethodSendNotification     = "/" + ServiceName + "/SendNotification"
	MethodListNotifications    = "/" + ServiceName + "/ListNotifications"
	MethodMarkNotificationRead = "/" + ServiceName + "/MarkNotificationRead"
)

// SessionServiceServer is the server API for the session service.
type SessionServiceServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*SessionResponse, error)
	RefreshSession(context.Context, *RefreshSessionRequest) (*SessionResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	LogoutAll(context.Context, *LogoutAllRequest) (*LogoutResponse, error)
	SendNotification(context.Context, *SendNotificationRequest) (*StatusResponse, error)
	ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*StatusResponse, error)
}

func unary[Req, Resp any](
	fullMethod string,
	call func(SessionServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SessionServiceServer), ctx, req.(*Req))
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, handler)
	}
}

var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateSession", Handler: unary(MethodCreateSession, SessionServiceServer.CreateSession)},
		{MethodName: "RefreshSession", Handler: unary(MethodRefreshSession, SessionServiceServer.RefreshSession)},
		{MethodName: "Logout", Handler: unary(MethodLogout, SessionServiceServer.Logout)},
		{MethodName: "LogoutAll", Handler: unary(MethodLogoutAll, SessionServiceServer.LogoutAll)},
		{MethodName: "SendNotification", Handler: unary(MethodSendNotification, SessionServiceServer.SendNotification)},
		{MethodName: "ListNotifications", Handler: unary(MethodListNotifications, SessionServiceServer.ListNotifications)},
		{MethodName: "MarkNotificationRead", Handler: unary(MethodMarkNotificationRead, SessionServiceServer.MarkNotificationRead)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gochat/v1/session.json",
}

func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

// SessionClient calls the session service over the JSON codec.
type SessionClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionClient(cc grpc.ClientConnInterface) *SessionClient {
	return &SessionClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SessionClient) CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, MethodCreateSession, in, opts)
}

func (c *SessionClient) RefreshSession(ctx context.Context, in *RefreshSessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, MethodRefreshSession, in, opts)
}

func (c *SessionClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogout, in, opts)
}

func (c *SessionClient) LogoutAll(ctx context.Context, in *LogoutAllRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MethodLogoutAll, in, opts)
}

func (c *SessionClient) SendNotification(ctx context.Context, in *SendNotificationRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, MethodSendNotification, in, opts)
}

func (c *SessionClient) ListNotifications(ctx context.Context, in *ListNotificationsRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c.cc, MethodListNotifications, in, opts)
}

func (c *SessionClient) MarkNotificationRead(ctx context.Context, in *MarkNotificationReadRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, MethodMarkNotificationRead, in, opts)
}
