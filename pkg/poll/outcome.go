package poll

import "time"

// State is the state of a poll.
type State string

const (
	StatePolling State = "polling"
	StateMatched State = "matched"
	StateFailed  State = "failed"
)

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateMatched || s == StateFailed
}

// Run identifies a single poll.
type Run struct {
	ID          string        `json:"id"`
	Matcher     string        `json:"matcher"`
	Description string        `json:"description"`
	Timeout     time.Duration `json:"timeout"`
	Started     time.Time     `json:"started"`
}

// Attempt describes one probe invocation and its evaluation.
type Attempt struct {
	Number  int           `json:"number"`
	Value   any           `json:"value,omitempty"`
	Err     error         `json:"-"`
	Passed  bool          `json:"passed"`
	Reason  string        `json:"reason,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Outcome is the terminal result of a poll. The last value and
// the last probe error are both kept; LastFailed tells which one
// the most recent attempt produced.
type Outcome struct {
	Run
	State      State         `json:"state"`
	Value      any           `json:"value,omitempty"`
	HasValue   bool          `json:"has_value"`
	Err        error         `json:"-"`
	LastFailed bool          `json:"last_failed"`
	Reason     string        `json:"reason,omitempty"`
	Attempts   int           `json:"attempts"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Observer is notified of poll progress. Calls happen on the
// polling goroutine, in order.
type Observer interface {
	PollStarted(run Run)
	AttemptFinished(run Run, attempt Attempt)
	PollFinished(outcome Outcome)
}
