// Package metrics records polling outcomes.
package metrics

import "time"

// Recorder defines the interface for recording poll metrics.
type Recorder interface {
	// RecordPoll records a finished poll for the given
	// matcher type with its terminal state ("matched" or
	// "failed").
	RecordPoll(matcher, state string, attempts int, elapsed time.Duration)
	// RecordProbeError records a probe invocation that
	// returned an error.
	RecordProbeError(matcher string)
	// AddActivePolls adjusts the gauge of polls in progress.
	AddActivePolls(delta int)
}

// NoopMetrics is a no-op implementation of Recorder useful for
// testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordPoll(_, _ string, _ int, _ time.Duration) {}
func (NoopMetrics) RecordProbeError(_ string)                      {}
func (NoopMetrics) AddActivePolls(_ int)                           {}
