package repository

import (
	"context"
	"sync"

	"github.com/okian/signup/internal/domain/model"
)

const defaultHistorySize = 100

// Journal keeps the most recent roster events of each activity.
type Journal struct {
	mu          sync.RWMutex
	events      map[string][]model.RosterEvent // oldest first
	perActivity int
	total       int
}

// NewJournal creates a journal holding 100 events per activity by default.
func NewJournal(opts ...JournalOption) *Journal {
	j := &Journal{
		events:      make(map[string][]model.RosterEvent),
		perActivity: defaultHistorySize,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append records e, dropping the oldest event of its activity when over the bound.
func (j *Journal) Append(_ context.Context, e model.RosterEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	list := append(j.events[e.Activity], e)
	j.total++
	if over := len(list) - j.perActivity; over > 0 {
		list = append([]model.RosterEvent(nil), list[over:]...)
		j.total -= over
	}
	j.events[e.Activity] = list
	return nil
}

// Recent returns up to limit events of activity, newest first.
// A limit <= 0 returns everything retained.
func (j *Journal) Recent(_ context.Context, activity string, limit int) []model.RosterEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	list := j.events[activity]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]model.RosterEvent, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out
}

// Len returns the number of retained events across activities.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.total
}
