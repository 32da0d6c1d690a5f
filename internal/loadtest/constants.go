package loadtest

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
	PercentageMultiplier    = 100
)

// Request outcomes.
const (
	outcomeAccepted = "accepted"
	outcomeFull     = "full"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

const emailDomain = "mergington.edu"
