package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/service"
)

const (
	webhookQueueKey = "crisisflow:webhook_alerts"
)

// ErrQueueEmpty - за время ожидания в очереди не появилось событий
var ErrQueueEmpty = errors.New("webhook: queue is empty")

// Alert - тело вебхука о новом инциденте или росте его опасности
type Alert struct {
	Event     models.EventType `json:"event"`
	Escalated bool             `json:"escalated"`
	Incident  *models.Incident `json:"incident"`
	Timestamp time.Time        `json:"timestamp"`
}

// Queue - очередь сериализованных оповещений
type Queue interface {
	Push(ctx context.Context, payload []byte) error
	Pop(ctx context.Context, timeout time.Duration) ([]byte, error)
}

// RedisQueue - реализация Queue на списке Redis
type RedisQueue struct {
	redisClient *redis.Client
	key         string
}

// NewRedisQueue создает новую очередь в Redis
func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{redisClient: client, key: webhookQueueKey}
}

// Push добавляет событие в левую часть списка
func (q *RedisQueue) Push(ctx context.Context, payload []byte) error {
	if err := q.redisClient.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// Pop блокирующе извлекает событие из правой части списка
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.redisClient.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, err
	}
	// result[0] - ключ, result[1] - значение
	return []byte(result[1]), nil
}

// Publisher ставит в очередь оповещения о новых инцидентах и о росте опасности
type Publisher struct {
	queue Queue
	clock clockwork.Clock
}

var _ service.EventPublisher = (*Publisher)(nil)

// NewPublisher создает новый Publisher
func NewPublisher(queue Queue, clock clockwork.Clock) *Publisher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Publisher{queue: queue, clock: clock}
}

// Publish пропускает все события, кроме new_incident и incident_updated с ростом опасности
func (p *Publisher) Publish(ctx context.Context, event models.Event) error {
	switch {
	case event.Type == models.EventNewIncident:
	case event.Type == models.EventIncidentUpdated && event.Escalated:
	default:
		return nil
	}

	incident, ok := event.Data.(*models.Incident)
	if !ok || incident == nil {
		return fmt.Errorf("webhook: unexpected payload %T for %s", event.Data, event.Type)
	}

	payload, err := json.Marshal(Alert{
		Event:     event.Type,
		Escalated: event.Escalated,
		Incident:  incident,
		Timestamp: p.clock.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}
	return p.queue.Push(ctx, payload)
}
