package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/padoca/internal/config"
	"github.com/Additional-Code/padoca/internal/messaging"
)

// replayClient hands a fixed batch of messages to the handler once, then
// blocks until the context is cancelled.
type replayClient struct {
	messages []messaging.Message
	once     sync.Once
}

func (c *replayClient) Publish(context.Context, messaging.Message) error { return nil }
func (c *replayClient) Topic() string                                   { return "bakery.events" }

func (c *replayClient) Consume(ctx context.Context, handler messaging.Handler) error {
	c.once.Do(func() {
		for _, msg := range c.messages {
			_ = handler(ctx, msg)
		}
	})
	<-ctx.Done()
	return ctx.Err()
}

func TestEngineDispatchesByEventType(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	record := func(_ context.Context, msg messaging.Message) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, string(msg.Value))
		return nil
	}

	client := &replayClient{messages: []messaging.Message{
		{Value: []byte("first"), Headers: map[string]string{messaging.HeaderEventType: "order.placed"}},
		{Value: []byte("ignored"), Headers: map[string]string{messaging.HeaderEventType: "order.unknown"}},
		{Value: []byte("untyped")},
		{Value: []byte("second"), Headers: map[string]string{messaging.HeaderEventType: "order.placed"}},
	}}

	cfg := config.Config{Messaging: config.Messaging{
		Enabled: true,
		Workers: config.Worker{Enabled: true, Concurrency: 1},
	}}
	engine := NewEngine(Params{
		Client: client,
		Logger: zap.NewNop(),
		Config: cfg,
		Registrations: []HandlerRegistration{
			{EventType: "order.placed", Handler: record},
			{EventType: "", Handler: record},
		},
	})

	require.NoError(t, engine.start(context.Background()))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, engine.stop(stopCtx))

	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestEngineDisabledDoesNotConsume(t *testing.T) {
	engine := NewEngine(Params{
		Client: &replayClient{},
		Logger: zap.NewNop(),
		Config: config.Config{},
		Registrations: []HandlerRegistration{{EventType: "order.placed", Handler: func(context.Context, messaging.Message) error {
			return errors.New("must not run")
		}}},
	})

	require.NoError(t, engine.start(context.Background()))
	assert.Nil(t, engine.cancel)
	require.NoError(t, engine.stop(context.Background()))
}
