package service

import (
	workerpool "github.com/okian/signup/internal/adapters/mq/worker"
	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of roster event workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the roster event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many event IDs the workers remember.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithHistorySize bounds the journal per activity.
func WithHistorySize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.historySize = size
		}
	}
}

// WithCapacityEnforcement toggles the max_participants check on signup.
func WithCapacityEnforcement(enforce bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enforce
	}
}

// WithCatalog replaces the built-in activity table.
func WithCatalog(activities []model.Activity) Option {
	return func(s *Service) {
		if activities != nil {
			s.catalog = activities
		}
	}
}

// WithPublisher forwards journaled roster events to p.
func WithPublisher(p workerpool.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
