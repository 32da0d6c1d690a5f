// Package repository holds the in-memory activity registry and roster journal.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/signup/internal/domain/model"
	"github.com/okian/signup/pkg/metrics"
)

// MemoryStore is a Store guarded by a single RWMutex. Activities are fixed at
// construction; only rosters change afterwards.
type MemoryStore struct {
	mu              sync.RWMutex
	activities      map[string]*model.Activity
	enforceCapacity bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore seeds a store from activities. Seed rosters are copied.
func NewMemoryStore(_ context.Context, activities []model.Activity, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		activities: make(map[string]*model.Activity, len(activities)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, a := range activities {
		if _, dup := s.activities[a.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, a.Name)
		}
		c := a.Clone()
		s.activities[a.Name] = &c
		metrics.UpdateRoster(a.Name, len(c.Participants), c.MaxParticipants)
	}
	metrics.UpdateActivityCount(len(s.activities))
	return s, nil
}

func (s *MemoryStore) List(_ context.Context) map[string]model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out
}

func (s *MemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrNotFound
	}
	return a.Clone(), nil
}

func (s *MemoryStore) Signup(_ context.Context, name, email string) (model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrNotFound
	}
	if a.Has(email) {
		return model.Activity{}, ErrAlreadySignedUp
	}
	if s.enforceCapacity && a.IsFull() {
		return model.Activity{}, ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return a.Clone(), nil
}

func (s *MemoryStore) Unregister(_ context.Context, name, email string) (model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrNotFound
	}
	i := a.IndexOf(email)
	if i < 0 {
		return model.Activity{}, ErrNotRegistered
	}
	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return a.Clone(), nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

func (s *MemoryStore) ParticipantCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.activities {
		n += len(a.Participants)
	}
	return n
}
