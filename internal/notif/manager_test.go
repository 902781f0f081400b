package notif

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gochat/internal/common"
)

func TestNotificationManager_NotifyReachesAllObservers(t *testing.T) {
	nm := NewNotificationManager(1, 10)
	defer nm.Shutdown()

	first := &MockObserver{name: "first"}
	second := &MockObserver{name: "second"}
	event := common.NotificationEvent{Type: common.SystemType, UserIDs: []string{"u1"}, Header: "h", Content: "c"}

	first.On("Update", mock.Anything, event).Return(errors.New("boom")).Once()
	second.On("Update", mock.Anything, event).Return(nil).Once()

	nm.Subscribe(first)
	nm.Subscribe(second)
	nm.Notify(t.Context(), event)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestNotificationManager_Unsubscribe(t *testing.T) {
	nm := NewNotificationManager(1, 10)
	defer nm.Shutdown()

	obs := &MockObserver{name: "gone"}
	nm.Subscribe(obs)
	nm.Unsubscribe(obs)

	nm.Notify(t.Context(), common.NotificationEvent{Type: common.SystemType})

	obs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNotificationManager_NotifyAsyncProcessedByWorkers(t *testing.T) {
	nm := NewNotificationManager(3, 10)
	defer nm.Shutdown()

	var delivered atomic.Int32
	obs := &MockObserver{name: "counter"}
	obs.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { delivered.Add(1) }).
		Return(nil)
	nm.Subscribe(obs)

	for i := 0; i < 5; i++ {
		assert.True(t, nm.NotifyAsync(common.NotificationEvent{Type: common.ChatNotificationType}))
	}

	assert.Eventually(t, func() bool { return delivered.Load() == 5 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotificationManager_NotifyAsyncDropsWhenFull(t *testing.T) {
	nm := NewNotificationManager(1, 1)
	defer nm.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	obs := &MockObserver{name: "slow"}
	obs.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
		}).
		Return(nil)
	nm.Subscribe(obs)

	// The worker takes the first event and blocks, the second fills the buffer.
	assert.True(t, nm.NotifyAsync(common.NotificationEvent{}))
	<-started
	assert.True(t, nm.NotifyAsync(common.NotificationEvent{}))
	assert.False(t, nm.NotifyAsync(common.NotificationEvent{}))

	close(release)
}

func TestNotificationManager_NotifyAsyncAfterShutdown(t *testing.T) {
	nm := NewNotificationManager(2, 10)
	nm.Shutdown()
	nm.Shutdown()

	assert.False(t, nm.NotifyAsync(common.NotificationEvent{}))
}
