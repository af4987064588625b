package ledger

import (
	"time"

	"commitart/internal/services"
)

// Status represents the lifecycle of a submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusFailed || s == StatusCancelled
}

// InterruptedReason is the message recorded when a pending row is swept at startup.
const InterruptedReason = "interrupted before completion"

// Submission is one generation attempt as seen from this machine.
type Submission struct {
	ID            string
	Owner         string
	RepoName      string
	Text          string
	Entries       int
	Commits       int
	Intensity     int
	Anchor        time.Time
	Status        Status
	Attempts      int
	FailureKind   services.Kind
	Message       string
	CorrelationID string
	RequestID     string
	URL           string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Outcome carries terminal details reported by the executor.
type Outcome struct {
	Attempts      int
	URL           string
	Kind          services.Kind
	Message       string
	CorrelationID string
	RequestID     string
}
