package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/service"
)

func TestStopDrainsQueue(t *testing.T) {
	pool := NewPool(2, 16, nil)
	pool.Start(context.Background())

	var done atomic.Int32
	handler := func(context.Context, events.Event) error {
		time.Sleep(time.Millisecond)
		done.Add(1)
		return nil
	}
	for i := 0; i < 10; i++ {
		require.True(t, pool.Submit(context.Background(), events.Event{ID: "e"}, handler))
	}

	pool.Stop()
	assert.Equal(t, int32(10), done.Load())
	assert.False(t, pool.Submit(context.Background(), events.Event{}, handler))
	pool.Stop()
}

func TestSubmitRejectsWhenFull(t *testing.T) {
	pool := NewPool(1, 1, nil)

	handler := func(context.Context, events.Event) error { return nil }
	assert.True(t, pool.Submit(context.Background(), events.Event{}, handler))
	assert.False(t, pool.Submit(context.Background(), events.Event{}, handler))

	err := pool.Async(handler)(context.Background(), events.Event{Type: events.EventSubscriptionCreated})
	assert.ErrorIs(t, err, ErrQueueFull)
	pool.Stop()
}

func TestHandlerPanicIsContained(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pool := NewPool(1, 4, zap.New(core))
	pool.Start(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	pool.Submit(context.Background(), events.Event{}, func(context.Context, events.Event) error {
		panic("boom")
	})
	pool.Submit(context.Background(), events.Event{}, func(context.Context, events.Event) error {
		wg.Done()
		return nil
	})
	wg.Wait()
	pool.Stop()

	assert.Equal(t, 1, logs.FilterMessage("event handler panicked").Len())
}

func TestAsyncDetachesCancellation(t *testing.T) {
	pool := NewPool(1, 4, nil)
	pool.Start(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	seen := make(chan error, 1)
	require.NoError(t, pool.Async(func(ctx context.Context, _ events.Event) error {
		seen <- ctx.Err()
		return nil
	})(ctx, events.Event{}))
	cancel()

	pool.Stop()
	assert.NoError(t, <-seen)
}

func TestStartNotificationWorker(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, config.NotificationConfig{})

	pool := StartNotificationWorker(context.Background(), notifications, config.NotificationConfig{Workers: 1, QueueSize: 4}, logger)

	sub := eventSubscription()
	require.NoError(t, dispatcher.Publish(context.Background(), events.NewSubscriptionCreated(sub, "Web", time.Now())))
	require.NoError(t, dispatcher.Publish(context.Background(), events.NewSubscriptionCancelled(sub, time.Now())))
	pool.Stop()

	assert.Equal(t, 1, logs.FilterMessage("SubscriptionCreated").Len())
	assert.Equal(t, 1, logs.FilterMessage("SubscriptionCancelled").Len())
}

func eventSubscription() *domain.Subscription {
	return &domain.Subscription{ID: 1, UserID: 2, ServiceID: 3, Price: 50, Period: domain.PeriodMonth}
}
