package notif

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"gochat/internal/common"
	"gochat/internal/metrics"
)

// deliveryTimeout bounds one event's trip through all observers when it is processed by a worker.
const deliveryTimeout = 30 * time.Second

type NotificationManager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	workerPool   int
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

var _ common.Subject = (*NotificationManager)(nil)

func NewNotificationManager(workerPoolSize, bufferSize int) *NotificationManager {
	if workerPoolSize < 1 {
		workerPoolSize = 1
	}
	if bufferSize < 1 {
		bufferSize = 1000
	}
	ctx, cancel := context.WithCancel(context.Background())

	nm := &NotificationManager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		workerPool:   workerPoolSize,
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workerPoolSize; i++ {
		nm.wg.Add(1)
		go nm.processEvents()
	}

	return nm
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	log.Debug().Str("observer", observer.Name()).Msg("observer subscribed")
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	delete(nm.observers, observer.Name())
	log.Debug().Str("observer", observer.Name()).Msg("observer unsubscribed")
}

// Notify delivers the event to every observer in the calling goroutine. Observer errors are logged only.
func (nm *NotificationManager) Notify(ctx context.Context, event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(ctx, event); err != nil {
			log.Error().Err(err).
				Str("observer", observer.Name()).
				Str("type", string(event.Type)).
				Msg("observer update failed")
		}
	}
}

// NotifyAsync queues the event for the worker pool and never blocks. It reports false when the
// event was dropped because the queue is full or the manager is shutting down.
func (nm *NotificationManager) NotifyAsync(event common.NotificationEvent) bool {
	if nm.ctx.Err() != nil {
		return false
	}
	select {
	case nm.eventChannel <- event:
		return true
	default:
		metrics.PushTotal.WithLabelValues("dropped").Inc()
		log.Warn().Str("type", string(event.Type)).Msg("notification queue full, dropping event")
		return false
	}
}

func (nm *NotificationManager) processEvents() {
	defer nm.wg.Done()

	for {
		select {
		case event := <-nm.eventChannel:
			ctx, cancel := context.WithTimeout(nm.ctx, deliveryTimeout)
			nm.Notify(ctx, event)
			cancel()
		case <-nm.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Events still queued are discarded.
func (nm *NotificationManager) Shutdown() {
	nm.closeOnce.Do(func() {
		nm.cancel()
		nm.wg.Wait()
		log.Info().Msg("notification manager shutdown complete")
	})
}
