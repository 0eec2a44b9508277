package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

// recordingPublisher запоминает ключи и может задерживать отправку до release
type recordingPublisher struct {
	started chan struct{}
	release chan struct{}

	mu       sync.Mutex
	keys     []string
	ctxErrs  []error
	deadline []bool
}

func newRecordingPublisher(blocking bool) *recordingPublisher {
	p := &recordingPublisher{started: make(chan struct{}, 16)}
	if blocking {
		p.release = make(chan struct{})
	}
	return p
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, key string, _ any) error {
	p.started <- struct{}{}
	if p.release != nil {
		<-p.release
	}

	_, hasDeadline := ctx.Deadline()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	p.deadline = append(p.deadline, hasDeadline)
	return nil
}

func (p *recordingPublisher) sent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

func TestDispatcher_SlowBrokerDoesNotBlockNotifier(t *testing.T) {
	pub := newRecordingPublisher(true)
	d := NewDispatcher(pub, 1, time.Second, logger.Discard())
	n := NewNotifier(d)
	ctx := context.Background()

	results := make(chan error, 3)
	go func() {
		results <- n.BookingCreated(ctx, testBooking())
		// первое событие уже у брокера, второе ждёт в очереди
		<-pub.started
		results <- n.BookingCancelled(ctx, testBooking(), 7)
		results <- n.BookingCreated(ctx, testBooking())
	}()

	var errs []error
	for i := 0; i < 3; i++ {
		select {
		case err := <-results:
			errs = append(errs, err)
		case <-time.After(2 * time.Second):
			t.Fatal("notifier blocked on a stalled broker")
		}
	}

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.ErrorIs(t, errs[2], ErrQueueFull)

	close(pub.release)
	d.Close()

	assert.Equal(t, []string{RoutingKeyBookingCreated, RoutingKeyBookingCancelled}, pub.sent())
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	pub := newRecordingPublisher(false)
	d := NewDispatcher(pub, 8, time.Second, logger.Discard())

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, d.PublishJSON(context.Background(), key, nil))
	}
	d.Close()

	assert.Equal(t, []string{"a", "b", "c"}, pub.sent())

	err := d.PublishJSON(context.Background(), "d", nil)
	assert.ErrorIs(t, err, ErrPublisherUnavailable)

	// повторный Close не паникует
	d.Close()
}

func TestDispatcher_OutlivesRequestContext(t *testing.T) {
	pub := newRecordingPublisher(false)
	d := NewDispatcher(pub, 1, time.Second, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.PublishJSON(ctx, RoutingKeyBookingCreated, nil))
	cancel()
	d.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.ctxErrs, 1)
	assert.NoError(t, pub.ctxErrs[0])
	assert.True(t, pub.deadline[0])
}
