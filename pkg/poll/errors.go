package poll

import (
	"errors"
	"fmt"
	"strings"

	"digital.vasic.expect/pkg/assertion"
)

// ErrAssertionFailed matches every *FailureError via errors.Is.
var ErrAssertionFailed = errors.New("poll: assertion failed")

// ProbeError is a probe failure on a single attempt. It is
// recorded and retried, never returned on its own.
type ProbeError struct {
	Attempt int
	Err     error
}

func (e *ProbeError) Error() string {
	return e.Err.Error()
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// FailureError is returned when the timeout elapses without a
// match.
type FailureError struct {
	// Description is the rendered matcher expectation.
	Description string
	// Message is the caller's override, if any.
	Message string
	Outcome Outcome
}

func (e *FailureError) Error() string {
	var b strings.Builder
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		fmt.Fprintf(&b, "Expect poll: expected value %s", e.Description)
	}

	o := e.Outcome
	switch {
	case o.LastFailed && o.Err != nil:
		fmt.Fprintf(&b, "\nLast error: %s", o.Err.Error())
	case o.HasValue:
		fmt.Fprintf(&b, "\nLast value: %s", assertion.Repr(o.Value))
	}
	if o.Reason != "" {
		fmt.Fprintf(&b, "\nReason: %s", o.Reason)
	}
	fmt.Fprintf(&b, "\nElapsed: %s (timeout %s), attempts: %d",
		o.Elapsed, o.Timeout, o.Attempts)

	return b.String()
}

// Unwrap returns the last probe error, if any attempt failed.
func (e *FailureError) Unwrap() error {
	return e.Outcome.Err
}

func (e *FailureError) Is(target error) bool {
	return target == ErrAssertionFailed
}
