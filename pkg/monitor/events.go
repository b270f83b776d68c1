package monitor

import (
	"time"
)

// EventType represents the type of poll event.
type EventType string

const (
	EventStarted EventType = "started"
	EventAttempt EventType = "attempt"
	EventMatched EventType = "matched"
	EventFailed  EventType = "failed"
)

// PollEvent represents a lifecycle event of a poll.
type PollEvent struct {
	Type        EventType     `json:"type"`
	RunID       string        `json:"run_id"`
	Matcher     string        `json:"matcher"`
	Description string        `json:"description,omitempty"`
	Attempt     int           `json:"attempt,omitempty"`
	Passed      bool          `json:"passed,omitempty"`
	Value       string        `json:"value,omitempty"`
	Error       string        `json:"error,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	Elapsed     time.Duration `json:"elapsed,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}
