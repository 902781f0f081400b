package notif

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

type MockObserver struct {
	mock.Mock
	name string
}

func (m *MockObserver) Name() string {
	return m.name
}

func (m *MockObserver) Update(ctx context.Context, event common.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPushClient struct {
	mock.Mock
}

func (m *MockPushClient) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	args := m.Called(ctx, tokens, topic)
	resp, _ := args.Get(0).(*messaging.TopicManagementResponse)
	return resp, args.Error(1)
}

func (m *MockPushClient) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	args := m.Called(ctx, tokens, topic)
	resp, _ := args.Get(0).(*messaging.TopicManagementResponse)
	return resp, args.Error(1)
}

func (m *MockPushClient) Send(ctx context.Context, message *messaging.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

type MockInboxStore struct {
	mock.Mock
}

func (m *MockInboxStore) Create(ctx context.Context, notification *dbmysql.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockInboxStore) ByUserID(ctx context.Context, userID string, limit, offset int) ([]*dbmysql.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	out, _ := args.Get(0).([]*dbmysql.Notification)
	return out, args.Error(1)
}

func (m *MockInboxStore) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockInboxStore) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) PushTokens(ctx context.Context, userIDs []primitive.ObjectID, skipViewing *primitive.ObjectID) ([]string, error) {
	args := m.Called(ctx, userIDs, skipViewing)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Notify(ctx context.Context, tokens []string, payload Payload) {
	m.Called(ctx, tokens, payload)
}
