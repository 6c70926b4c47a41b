package hub

import (
	"sync"

	"github.com/google/uuid"
)

// Observer - подключенный получатель событий с ограниченной очередью.
// До получения снимка состояния события копятся в отдельном буфере,
// чтобы первым сообщением всегда был initial_data.
type Observer struct {
	id uuid.UUID

	mu     sync.Mutex
	queue  chan []byte
	held   [][]byte
	ready  bool
	closed bool
}

func newObserver(queueSize int) *Observer {
	return &Observer{
		id:    uuid.New(),
		queue: make(chan []byte, queueSize),
	}
}

// ID - идентификатор наблюдателя
func (o *Observer) ID() uuid.UUID {
	return o.id
}

// Messages возвращает очередь сообщений. Канал закрывается, когда наблюдатель отключен.
func (o *Observer) Messages() <-chan []byte {
	return o.queue
}

// deliveryResult - итог постановки сообщения в очередь наблюдателя
type deliveryResult int

const (
	delivered deliveryResult = iota
	queueFull
	observerClosed
)

// deliver ставит сообщение в очередь без блокировки
func (o *Observer) deliver(msg []byte) deliveryResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return observerClosed
	}
	if !o.ready {
		if len(o.held) >= cap(o.queue) {
			return queueFull
		}
		o.held = append(o.held, msg)
		return delivered
	}
	select {
	case o.queue <- msg:
		return delivered
	default:
		return queueFull
	}
}

// start ставит снимок первым и переносит накопленные события в очередь
func (o *Observer) start(snapshot []byte) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return false
	}
	pending := append([][]byte{snapshot}, o.held...)
	o.held = nil
	for _, msg := range pending {
		select {
		case o.queue <- msg:
		default:
			return false
		}
	}
	o.ready = true
	return true
}

func (o *Observer) close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true
	o.held = nil
	close(o.queue)
}
