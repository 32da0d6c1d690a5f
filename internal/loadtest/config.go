package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Activity   string        // Activity every generated student signs up for
	Students   int           // Number of distinct students to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Unregister bool          // Unregister accepted students afterwards
	Verbose    bool          // Log every request outcome
}

// Activity mirrors one entry of GET /activities.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse is the success body of signup and unregister.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure body of every API route.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// Stats holds run statistics.
type Stats struct {
	Submitted        int
	Accepted         int
	RejectedFull     int
	RejectedOther    int
	Failed           int
	Unregistered     int
	UnregisterFailed int
	RosterSize       int
	Capacity         int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

// Rejected returns the number of signups the service refused.
func (s *Stats) Rejected() int {
	return s.RejectedFull + s.RejectedOther
}
