// Package repository holds the in-memory activity registry and roster journal.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacityEnforcement makes Signup fail with ErrActivityFull once a roster
// reaches max_participants.
func WithCapacityEnforcement(enforce bool) Option {
	return func(s *MemoryStore) {
		s.enforceCapacity = enforce
	}
}

// JournalOption applies a configuration option to the Journal.
type JournalOption func(*Journal)

// WithHistorySize bounds the events kept per activity.
func WithHistorySize(n int) JournalOption {
	return func(j *Journal) {
		if n > 0 {
			j.perActivity = n
		}
	}
}
