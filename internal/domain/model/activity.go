// Package model contains domain models passed between layers.
package model

import "time"

// Activity is an extracurricular offering and its roster.
type Activity struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"` // signup order, unique
}

// Clone returns a copy that shares no memory with a.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = append([]string(nil), a.Participants...)
	return out
}

// IndexOf returns the roster position of email, or -1.
func (a Activity) IndexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// Has reports whether email is on the roster.
func (a Activity) Has(email string) bool {
	return a.IndexOf(email) >= 0
}

// SpotsLeft returns the remaining capacity. It is negative when the roster
// was seeded above capacity.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull reports whether no spots remain.
func (a Activity) IsFull() bool {
	return a.SpotsLeft() <= 0
}

// RosterEventKind names the roster change carried by a RosterEvent.
type RosterEventKind string

const (
	RosterSignup     RosterEventKind = "signup"
	RosterUnregister RosterEventKind = "unregister"
)

// RosterEvent records one accepted roster change.
type RosterEvent struct {
	EventID      string          `json:"event_id"`
	Kind         RosterEventKind `json:"kind"`
	Activity     string          `json:"activity"`
	Email        string          `json:"email"`
	Participants int             `json:"participants"` // roster size after the change
	At           time.Time       `json:"at"`
}
