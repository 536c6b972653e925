package rabbitmq

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

// overlapChannel records whether two Publish calls ever ran at the same time.
type overlapChannel struct {
	inFlight int32
	overlaps int32
	calls    int32
	lastKey  atomic.Value
}

func (c *overlapChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	c.lastKey.Store(key)
	atomic.AddInt32(&c.calls, 1)
	atomic.AddInt32(&c.inFlight, -1)
	return nil
}

func (c *overlapChannel) Close() error { return nil }

func TestPublisher_SerializesConcurrentPublishes(t *testing.T) {
	ch := &overlapChannel{}
	p := &Publisher{channel: ch, exchange: "checkout.exchange"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := p.Publish(context.Background(), "order.settled", map[string]any{"orderId": 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), atomic.LoadInt32(&ch.calls))
	assert.Zero(t, atomic.LoadInt32(&ch.overlaps), "publishes must not run concurrently on one channel")
	assert.Equal(t, "order.settled", ch.lastKey.Load())
}

func TestPublisher_RejectsUnmarshalableData(t *testing.T) {
	ch := &overlapChannel{}
	p := &Publisher{channel: ch, exchange: "checkout.exchange"}

	err := p.Publish(context.Background(), "order.settled", make(chan int))

	assert.Error(t, err)
	assert.Zero(t, atomic.LoadInt32(&ch.calls))
}
