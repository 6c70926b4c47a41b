package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
)

// DefaultQueueSize - емкость очереди одного наблюдателя
const DefaultQueueSize = 64

// ErrClosed возвращается при подключении к остановленному хабу
var ErrClosed = errors.New("hub: closed")

// SnapshotProvider собирает начальное состояние для нового наблюдателя
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// Hub рассылает события всем подключенным наблюдателям.
// Рассылка не блокируется: наблюдатель с переполненной очередью отключается.
type Hub struct {
	mu        sync.RWMutex
	observers map[uuid.UUID]*Observer
	closed    bool

	snapshots SnapshotProvider
	queueSize int
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

func New(snapshots SnapshotProvider, queueSize int, metrics *observability.Metrics, logger *logrus.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		observers: make(map[uuid.UUID]*Observer),
		snapshots: snapshots,
		queueSize: queueSize,
		metrics:   metrics,
		logger:    logger,
	}
}

var _ service.EventPublisher = (*Hub)(nil)

// Connect регистрирует наблюдателя и ставит снимок состояния первым сообщением.
// События, опубликованные между регистрацией и снимком, могут прийти дважды, но не теряются.
func (h *Hub) Connect(ctx context.Context) (*Observer, error) {
	observer := newObserver(h.queueSize)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrClosed
	}
	h.observers[observer.id] = observer
	h.metrics.HubObservers.Set(float64(len(h.observers)))
	h.mu.Unlock()

	snapshot, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		h.Disconnect(observer)
		return nil, fmt.Errorf("hub: could not build snapshot: %w", err)
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		h.Disconnect(observer)
		return nil, fmt.Errorf("hub: could not marshal snapshot: %w", err)
	}
	if !observer.start(payload) {
		h.Disconnect(observer)
		return nil, fmt.Errorf("hub: observer %s overflowed before start", observer.id)
	}

	h.logger.WithFields(logrus.Fields{
		"service":     "hub",
		"observer_id": observer.id,
	}).Info("Observer connected")
	return observer, nil
}

// Disconnect удаляет наблюдателя и закрывает его очередь. Повторный вызов ничего не делает.
func (h *Hub) Disconnect(observer *Observer) {
	h.mu.Lock()
	_, ok := h.observers[observer.id]
	if ok {
		delete(h.observers, observer.id)
		h.metrics.HubObservers.Set(float64(len(h.observers)))
	}
	h.mu.Unlock()

	observer.close()
	if ok {
		h.logger.WithFields(logrus.Fields{
			"service":     "hub",
			"observer_id": observer.id,
		}).Info("Observer disconnected")
	}
}

// Broadcast отправляет событие всем текущим наблюдателям
func (h *Hub) Broadcast(event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("hub: could not marshal event %s: %w", event.Type, err)
	}

	h.mu.RLock()
	observers := make([]*Observer, 0, len(h.observers))
	for _, o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	for _, o := range observers {
		switch o.deliver(payload) {
		case delivered:
			continue
		case observerClosed:
			// наблюдатель уже отключается параллельно
			h.Disconnect(o)
			continue
		}
		h.metrics.HubDropped.Inc()
		h.logger.WithFields(logrus.Fields{
			"service":     "hub",
			"observer_id": o.id,
			"event_type":  event.Type,
		}).Warn("Observer queue is full, dropping observer")
		h.Disconnect(o)
	}
	return nil
}

// Publish реализует service.EventPublisher
func (h *Hub) Publish(_ context.Context, event models.Event) error {
	return h.Broadcast(event)
}

// Count возвращает число подключенных наблюдателей
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Close отключает всех наблюдателей. Новые подключения после этого отклоняются.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	observers := h.observers
	h.observers = make(map[uuid.UUID]*Observer)
	h.metrics.HubObservers.Set(0)
	h.mu.Unlock()

	for _, o := range observers {
		o.close()
	}
}
