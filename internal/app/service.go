// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/signup/internal/adapters/mq/queue"
	workerpool "github.com/okian/signup/internal/adapters/mq/worker"
	"github.com/okian/signup/internal/adapters/repository"
	"github.com/okian/signup/internal/domain/catalog"
	"github.com/okian/signup/internal/domain/dedupe"
	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/pkg/logger"
	"github.com/okian/signup/pkg/metrics"
)

const stopTimeout = 30 * time.Second

// Service owns the activity registry and the roster event pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      *repository.MemoryStore
	journal    *repository.Journal
	deduper    dedupe.Deduper
	eventQueue *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool
	publisher  workerpool.Publisher

	// Configuration
	catalog         []model.Activity
	enforceCapacity bool
	workerCount     int
	queueSize       int
	dedupeSize      int
	historySize     int

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service seeded with the built-in catalog.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:         catalog.Default(),
		enforceCapacity: true,
		workerCount:     2,
		queueSize:       10_000,
		dedupeSize:      50_000,
		historySize:     100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the registry and starts the worker pool.
// The pool outlives ctx cancellation so Stop can drain it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting activity signup service...")

	store, err := repository.NewMemoryStore(ctx, s.catalog,
		repository.WithCapacityEnforcement(s.enforceCapacity),
	)
	if err != nil {
		return err
	}
	s.store = store
	s.journal = repository.NewJournal(repository.WithHistorySize(s.historySize))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))

	var wopts []workerpool.Option
	if s.publisher != nil {
		wopts = append(wopts, workerpool.WithPublisher(s.publisher))
	}
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.deduper, s.journal, wopts...)

	poolCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.workerPool.Start(poolCtx)

	s.started = true
	s.logger.Info(ctx, "activity signup service started",
		logger.Int("activities", store.Count(ctx)),
		logger.Bool("enforceCapacity", s.enforceCapacity),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Bool("publishing", s.publisher != nil),
	)
	return nil
}

// Stop drains queued roster events and shuts the pipeline down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping activity signup service...")

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}
	s.cancel()

	if closer, ok := s.publisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn(ctx, "closing publisher failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "activity signup service stopped",
		logger.Int("journaled", s.journal.Len()),
	)
}

// components returns the running store and queue, or ErrNotStarted.
func (s *Service) components() (*repository.MemoryStore, *eventqueue.InMemoryQueue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.eventQueue, nil
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]model.Activity, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return store.List(ctx), nil
}

// Signup adds email to the roster of name and emits a roster event.
func (s *Service) Signup(ctx context.Context, name, email string) (model.Activity, error) {
	store, q, err := s.components()
	if err != nil {
		return model.Activity{}, err
	}

	a, err := store.Signup(ctx, name, email)
	if err != nil {
		s.recordRejection(name, err)
		s.logger.Debug(ctx, "signup rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return model.Activity{}, err
	}

	metrics.RecordSignup(name, len(a.Participants))
	s.emit(ctx, q, model.RosterSignup, &a, email)
	return a, nil
}

// Unregister removes email from the roster of name and emits a roster event.
func (s *Service) Unregister(ctx context.Context, name, email string) (model.Activity, error) {
	store, q, err := s.components()
	if err != nil {
		return model.Activity{}, err
	}

	a, err := store.Unregister(ctx, name, email)
	if err != nil {
		s.recordRejection(name, err)
		s.logger.Debug(ctx, "unregister rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return model.Activity{}, err
	}

	metrics.RecordUnregister(name, len(a.Participants))
	s.emit(ctx, q, model.RosterUnregister, &a, email)
	return a, nil
}

// History returns up to limit recent roster events of name, newest first.
func (s *Service) History(ctx context.Context, name string, limit int) ([]model.RosterEvent, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	if _, err := store.Get(ctx, name); err != nil {
		return nil, err
	}
	return s.journal.Recent(ctx, name, limit), nil
}

// emit enqueues a roster event without blocking. A full or closed queue drops
// the event; the roster change itself has already been applied.
func (s *Service) emit(ctx context.Context, q *eventqueue.InMemoryQueue, kind model.RosterEventKind, a *model.Activity, email string) {
	e := model.RosterEvent{
		EventID:      uuid.NewString(),
		Kind:         kind,
		Activity:     a.Name,
		Email:        email,
		Participants: len(a.Participants),
		At:           time.Now().UTC(),
	}

	err := q.Enqueue(context.WithoutCancel(ctx), e)
	switch {
	case err == nil:
		metrics.RecordEventEnqueued()
	case errors.Is(err, eventqueue.ErrFull):
		metrics.RecordEventDropped(metrics.ReasonQueueFull)
		s.logger.Warn(ctx, "roster queue full, event dropped",
			logger.String("eventID", e.EventID),
			logger.String("activity", e.Activity),
		)
	case errors.Is(err, eventqueue.ErrClosed):
		metrics.RecordEventDropped(metrics.ReasonQueueClosed)
		s.logger.Warn(ctx, "roster queue closed, event dropped", logger.String("eventID", e.EventID))
	default:
		s.logger.Error(ctx, "enqueue roster event failed", logger.Error(err))
	}
}

// recordRejection counts a refused roster change. Unknown activity names
// share one label so client input cannot grow the series set.
func (s *Service) recordRejection(name string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.RecordRejection("unknown", metrics.ReasonNotFound)
	case errors.Is(err, repository.ErrAlreadySignedUp):
		metrics.RecordRejection(name, metrics.ReasonAlreadySignedUp)
	case errors.Is(err, repository.ErrNotRegistered):
		metrics.RecordRejection(name, metrics.ReasonNotRegistered)
	case errors.Is(err, repository.ErrActivityFull):
		metrics.RecordRejection(name, metrics.ReasonActivityFull)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"enforceCapacity": s.enforceCapacity,
	}

	if s.started {
		stats["activities"] = s.store.Count(ctx)
		stats["participants"] = s.store.ParticipantCount(ctx)
		stats["queueLength"] = s.eventQueue.Len(ctx)
		stats["journalSize"] = s.journal.Len()
		stats["dedupeSize"] = s.deduper.Size()
	}
	return stats
}
