// Package queue carries roster events from request handlers to the worker pool.
package queue

import (
	"context"
	"sync"

	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Event is the payload flowing through the queue.
type Event = model.RosterEvent

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds an event without blocking.
	// Returns ErrFull when at capacity and ErrClosed after Close.
	Enqueue(ctx context.Context, e Event) error

	// Dequeue returns the channel events are delivered on. It is closed by Close.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the number of waiting events.
	Len(ctx context.Context) int

	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int

	mu     sync.RWMutex
	closed bool
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a queue holding 10k events by default.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)
	metrics.UpdateQueue(0, q.capacity)
	return q
}

func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) error { //nolint:gocritic // hugeParam: events are passed by value over the channel
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}
	select {
	case q.events <- e:
		metrics.UpdateQueue(len(q.events), q.capacity)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrFull
	}
}

func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Event {
	return q.events
}

func (q *InMemoryQueue) Len(_ context.Context) int {
	n := len(q.events)
	metrics.UpdateQueue(n, q.capacity)
	return n
}

// Capacity returns the configured bound.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close stops accepting events. Buffered events remain readable.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
