// Package worker drains roster events from the queue into the journal and the optional publisher.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/signup/internal/adapters/mq/queue"
	"github.com/okian/signup/internal/domain/dedupe"
	"github.com/okian/signup/pkg/logger"
	"github.com/okian/signup/pkg/metrics"
)

const (
	defaultWorkerCount  = 2
	poolShutdownTimeout = 30 * time.Second
)

// Event is what workers read off the queue.
type Event = queue.Event

// Recorder keeps processed events.
type Recorder interface {
	Append(ctx context.Context, e Event) error
	Len() int
}

// Publisher ships processed events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes roster events.
type Worker interface {
	// Run consumes events until ctx is canceled, Shutdown is called or the queue closes.
	Run(ctx context.Context)

	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	deduper   dedupe.Deduper
	recorder  Recorder
	publisher Publisher
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker that journals each distinct event once.
func NewInMemoryWorker(q Queue, d dedupe.Deduper, r Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		deduper:  d,
		recorder: r,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing roster event", logger.Error(err))
			}
		}
	}
}

// Shutdown signals the worker to stop and waits for the loop to exit.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) processEvent(ctx context.Context, event Event) error { //nolint:gocritic // hugeParam: events are passed by value over the channel
	start := time.Now()

	if w.deduper != nil && w.deduper.SeenAndRecord(ctx, event.EventID) {
		metrics.RecordEventDuplicate()
		w.logger.Debug(ctx, "duplicate roster event skipped", logger.String("eventID", event.EventID))
		return nil
	}

	if err := w.recorder.Append(ctx, event); err != nil {
		if w.deduper != nil {
			w.deduper.Unrecord(ctx, event.EventID)
		}
		return fmt.Errorf("journal event %s: %w", event.EventID, err)
	}
	metrics.UpdateJournalSize(w.recorder.Len())

	if w.publisher != nil {
		if err := w.publisher.Publish(ctx, event); err != nil {
			metrics.RecordPublishError()
			w.logger.Warn(ctx, "publish roster event failed",
				logger.String("eventID", event.EventID),
				logger.String("activity", event.Activity),
				logger.Error(err),
			)
		} else {
			metrics.RecordEventPublished()
		}
	}

	metrics.RecordEventProcessed(float64(time.Since(start).Microseconds()) / 1000)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	started      atomic.Bool
	shutdownOnce sync.Once

	logger logger.Logger
}

// NewPool creates workerCount workers; opts are applied to each of them.
func NewPool(workerCount int, q Queue, d dedupe.Deduper, r Recorder, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		wopts := append(append([]Option(nil), opts...), WithName("worker-"+strconv.Itoa(i)))
		pool.workers[i] = NewInMemoryWorker(q, d, r, wopts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue and lets the workers drain what is buffered.
// Workers still running when ctx expires are signalled to stop.
func (p *Pool) Shutdown(ctx context.Context) error {
	var err error
	p.shutdownOnce.Do(func() {
		if closer, ok := p.queue.(interface{ Close() error }); ok {
			if cerr := closer.Close(); cerr != nil {
				p.logger.Error(ctx, "error closing queue", logger.Error(cerr))
			}
		}

		metrics.UpdateWorkerCount(0)
		if !p.started.Load() {
			return
		}

		shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
		defer cancel()

		for i, w := range p.workers {
			select {
			case <-w.Done():
			case <-shutdownCtx.Done():
				p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
				stopCtx, stop := context.WithTimeout(context.Background(), time.Second)
				err = w.Shutdown(stopCtx)
				stop()
			}
		}
	})
	return err
}
