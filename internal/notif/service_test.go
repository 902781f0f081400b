package notif

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/dbmysql"
	"gochat/internal/user"
)

type serviceFixture struct {
	repo    *MockInboxStore
	tokens  *MockTokenSource
	pusher  *MockPusher
	service *NotificationService
}

func newServiceFixture(t *testing.T, pushEnabled bool) *serviceFixture {
	t.Helper()
	cfg := &config.Config{
		Notification: config.NotificationConfig{Workers: 2, ChannelBufferSize: 10, Enabled: pushEnabled},
		Gateway:      config.GatewayConfig{DefaultPageSize: 10},
	}
	f := &serviceFixture{
		repo:   &MockInboxStore{},
		tokens: &MockTokenSource{},
		pusher: &MockPusher{},
	}
	f.service = NewNotificationService(cfg, f.repo, f.tokens, f.pusher)
	t.Cleanup(f.service.Shutdown)
	return f
}

func TestNotificationService_NotifyChatMessage(t *testing.T) {
	tests := []struct {
		name        string
		kind        common.MessageKind
		body        string
		wantContent string
	}{
		{name: "text", kind: common.MessageKindText, body: "see you", wantContent: "see you"},
		{name: "media", kind: common.MessageKindMedia, wantContent: "sent a media"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t, true)

			sender := &user.Profile{ID: primitive.NewObjectID(), FullName: "Alice"}
			msg := &chat.Message{
				ID:         primitive.NewObjectID(),
				RoomID:     primitive.NewObjectID(),
				SenderID:   sender.ID,
				ReceiverID: primitive.NewObjectID(),
				Body:       tt.body,
				Kind:       tt.kind,
				SentAt:     time.Now(),
			}

			stored := make(chan *dbmysql.Notification, 1)
			pushed := make(chan Payload, 1)
			f.repo.On("Create", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { stored <- args.Get(1).(*dbmysql.Notification) }).
				Return(nil)
			f.tokens.On("PushTokens", mock.Anything, []primitive.ObjectID{msg.ReceiverID}, &msg.RoomID).
				Return([]string{"device"}, nil)
			f.pusher.On("Notify", mock.Anything, []string{"device"}, mock.Anything).
				Run(func(args mock.Arguments) { pushed <- args.Get(2).(Payload) })

			f.service.NotifyChatMessage(sender, msg)

			select {
			case n := <-stored:
				assert.Equal(t, msg.ReceiverID.Hex(), n.UserID)
				assert.Equal(t, "Alice", n.Header)
				assert.Equal(t, tt.wantContent, n.Content)
				require.NotNil(t, n.SenderID)
				assert.Equal(t, sender.ID.Hex(), *n.SenderID)
			case <-time.After(2 * time.Second):
				t.Fatal("inbox record was not written")
			}

			select {
			case p := <-pushed:
				assert.Equal(t, "Alice", p.Title)
				assert.Equal(t, tt.wantContent, p.Body)
				assert.Equal(t, msg.ID.Hex(), p.Data["id"])
			case <-time.After(2 * time.Second):
				t.Fatal("push was not sent")
			}
		})
	}
}

func TestNotificationService_SendNotification(t *testing.T) {
	t.Run("inbox only when push disabled", func(t *testing.T) {
		f := newServiceFixture(t, false)
		f.repo.On("Create", mock.Anything, mock.MatchedBy(func(n *dbmysql.Notification) bool {
			return n.UserID == "u1" && n.Type == "system"
		})).Return(nil).Once()

		err := f.service.SendNotification(t.Context(), common.NotificationEvent{
			UserIDs: []string{"u1"},
			Header:  "Maintenance",
			Content: "Tonight at 2am",
		})

		require.NoError(t, err)
		f.repo.AssertExpectations(t)
		f.tokens.AssertNotCalled(t, "PushTokens", mock.Anything, mock.Anything, mock.Anything)
	})

	invalid := []struct {
		name  string
		event common.NotificationEvent
		want  string
	}{
		{name: "no users", event: common.NotificationEvent{Header: "h", Content: "c"}, want: "user_ids"},
		{name: "empty user", event: common.NotificationEvent{UserIDs: []string{""}, Header: "h", Content: "c"}, want: "user_ids"},
		{name: "no header", event: common.NotificationEvent{UserIDs: []string{"u"}, Content: "c"}, want: "header"},
		{name: "no content", event: common.NotificationEvent{UserIDs: []string{"u"}, Header: "h"}, want: "content"},
		{name: "bad priority", event: common.NotificationEvent{UserIDs: []string{"u"}, Header: "h", Content: "c", Priority: 9}, want: "priority"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t, true)
			err := f.service.SendNotification(t.Context(), tt.event)
			assert.True(t, common.IsCode(err, common.CodeInvalidArgument))
			assert.ErrorContains(t, err, tt.want)
			f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestNotificationService_ListNotifications(t *testing.T) {
	f := newServiceFixture(t, false)
	roomID := "r1"
	rows := []*dbmysql.Notification{
		{ID: "n2", UserID: "u1", Header: "Bob", Content: "yo", Type: "chat_notification", RoomID: &roomID},
		{ID: "n1", UserID: "u1", Header: "Bob", Content: "hey", Type: "chat_notification"},
	}
	f.repo.On("ByUserID", mock.Anything, "u1", 10, 10).Return(rows, nil).Once()

	out, err := f.service.ListNotifications(t.Context(), "u1", 2, 0)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "n2", out[0].ID)
	assert.Equal(t, &roomID, out[0].RoomID)

	f.repo.On("ByUserID", mock.Anything, "u2", 10, 0).Return(nil, errors.New("db")).Once()
	_, err = f.service.ListNotifications(t.Context(), "u2", 1, 0)
	assert.ErrorContains(t, err, "failed to get notifications")

	_, err = f.service.ListNotifications(t.Context(), "", 1, 0)
	assert.True(t, common.IsCode(err, common.CodeInvalidArgument))
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	f := newServiceFixture(t, false)
	f.repo.On("MarkAsRead", mock.Anything, "n1", "u1").Return(nil).Once()
	f.repo.On("MarkAsRead", mock.Anything, "n2", "u1").Return(common.NotFound("Notification not found")).Once()

	assert.NoError(t, f.service.MarkAsRead(t.Context(), "n1", "u1"))
	assert.True(t, common.IsCode(f.service.MarkAsRead(t.Context(), "n2", "u1"), common.CodeNotFound))
}
