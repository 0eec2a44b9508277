package events

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type message struct {
	ctx   context.Context
	key   string
	value any
}

// Dispatcher ставит события в ограниченную очередь и отправляет их из одной горутины.
// PublishJSON не ждёт брокер: при переполненной очереди событие отбрасывается с ErrQueueFull.
type Dispatcher struct {
	next    JSONPublisher
	timeout time.Duration
	logger  Logger

	mu     sync.RWMutex
	closed bool
	queue  chan message
	done   chan struct{}
}

// NewDispatcher запускает отправку через next. queueSize <= 0 - очередь на одно событие
func NewDispatcher(next JSONPublisher, queueSize int, timeout time.Duration, logger Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &Dispatcher{
		next:    next,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan message, queueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// PublishJSON ставит событие в очередь и сразу возвращается
func (d *Dispatcher) PublishJSON(ctx context.Context, key string, v any) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return fmt.Errorf("%w: dispatcher is closed", ErrPublisherUnavailable)
	}

	// запрос может завершиться раньше отправки, отмена его контекста не должна терять событие
	msg := message{ctx: context.WithoutCancel(ctx), key: key, value: v}
	select {
	case d.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w: key=%s", ErrQueueFull, key)
	}
}

// Close перестаёт принимать события и ждёт отправки уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for msg := range d.queue {
		d.send(msg)
	}
}

func (d *Dispatcher) send(msg message) {
	ctx := msg.ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.next.PublishJSON(ctx, msg.key, msg.value); err != nil {
		d.logger.Warn("Failed to publish event: key=%s, error=%v", msg.key, err)
	}
}
