package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/events"
)

// ErrQueueFull is returned when an event cannot be queued.
var ErrQueueFull = errors.New("worker queue full")

type job struct {
	ctx     context.Context
	event   events.Event
	handler events.EventHandler
}

// Pool runs event handlers on a fixed number of goroutines fed by a bounded
// queue.
type Pool struct {
	jobs    chan job
	workers int
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool builds a pool; call Start to launch the workers.
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{
		jobs:    make(chan job, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the workers. They exit when ctx is cancelled or after Stop
// has drained the queue.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.loop(ctx)
	}
}

func (p *Pool) loop(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-p.jobs:
			if !ok {
				return
			}
			p.run(j)
		}
	}
}

func (p *Pool) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("event handler panicked",
				zap.String("event_type", string(j.event.Type)),
				zap.String("event_id", j.event.ID),
				zap.Any("panic", r))
		}
	}()
	if err := j.handler(j.ctx, j.event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(j.event.Type)),
			zap.String("event_id", j.event.ID),
			zap.Error(err))
	}
}

// Submit queues handler for event without blocking. It reports false when the
// pool is stopped or the queue is full.
func (p *Pool) Submit(ctx context.Context, event events.Event, handler events.EventHandler) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- job{ctx: ctx, event: event, handler: handler}:
		return true
	default:
		p.logger.Warn("dropping event, worker queue full",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
		return false
	}
}

// Async wraps handler so the dispatcher only enqueues it. The request context
// is detached from its cancellation since the handler outlives the request.
func (p *Pool) Async(handler events.EventHandler) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		if !p.Submit(context.WithoutCancel(ctx), event, handler) {
			return fmt.Errorf("%w: %s", ErrQueueFull, event.Type)
		}
		return nil
	}
}

// Stop refuses new jobs, waits for queued jobs to finish and for the workers
// to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
