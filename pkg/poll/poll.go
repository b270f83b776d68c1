// Package poll implements retrying assertions: a probe is
// invoked repeatedly until a matcher accepts its value or the
// timeout elapses.
//
//	n := 0
//	err := poll.New(func() (int, error) {
//		n++
//		return n, nil
//	}, poll.WithTimeout(time.Second), poll.WithIntervals(10*time.Millisecond)).
//		ToBeGreaterThanOrEqual(3)
package poll

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/logging"
)

// Probe produces the value checked on each attempt.
type Probe[T any] func() (T, error)

// Func adapts a probe that cannot fail.
func Func[T any](f func() T) Probe[T] {
	return func() (T, error) { return f(), nil }
}

// Handle holds a probe and its settings. Each matcher method
// runs an independent poll; a Handle may be reused.
type Handle[T any] struct {
	probe Probe[T]
	s     settings
	not   bool
}

// New returns a Handle polling probe with the given options.
func New[T any](probe Probe[T], opts ...Option) *Handle[T] {
	return &Handle[T]{probe: probe, s: newSettings(opts)}
}

// Config returns the effective configuration.
func (h *Handle[T]) Config() Config {
	return h.s.cfg
}

// Not returns a Handle whose matchers are negated.
func (h *Handle[T]) Not() *Handle[T] {
	n := *h
	n.not = !h.not
	return &n
}

// Should polls until def is satisfied.
func (h *Handle[T]) Should(def assertion.Definition) error {
	_, err := h.Run(def)
	return err
}

// Run polls until def is satisfied or the timeout elapses and
// returns the outcome. The error is a *FailureError on timeout,
// the context's error when cancelled, or a plain error for a nil
// probe or invalid configuration.
func (h *Handle[T]) Run(def assertion.Definition) (Outcome, error) {
	if h.probe == nil {
		return Outcome{}, errors.New("poll: nil probe")
	}
	if h.not {
		def = def.Negate()
	}
	cfg := h.s.cfg
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}

	message := cfg.Message
	if message == "" {
		message = def.Message
	}

	clock := h.s.clock
	run := Run{
		ID:          uuid.NewString(),
		Matcher:     def.Type,
		Description: assertion.Describe(def),
		Timeout:     cfg.Timeout,
		Started:     clock.Now(),
	}
	log := h.s.logger.WithFields(
		logging.StringField("run_id", run.ID),
		logging.StringField("matcher", run.Description),
	)

	h.s.metrics.AddActivePolls(1)
	defer h.s.metrics.AddActivePolls(-1)
	for _, o := range h.s.observers {
		o.PollStarted(run)
	}

	ctx := h.s.ctx
	out := Outcome{Run: run, State: StatePolling}
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			out.State, out.Elapsed = StateFailed, clock.Since(run.Started)
			h.finish(log, out)
			return out, fmt.Errorf("poll %s: %w", run.ID, err)
		}

		value, err := h.invoke(i + 1)
		out.Attempts++
		attempt := Attempt{Number: out.Attempts}

		if err != nil {
			out.Err, out.LastFailed = err, true
			out.Reason = ""
			attempt.Err = err
			h.s.metrics.RecordProbeError(def.Type)
		} else {
			out.Value, out.HasValue, out.LastFailed = value, true, false
			res := h.s.engine.Evaluate(def, value)
			out.Reason = res.Message
			attempt.Value, attempt.Passed = value, res.Passed
			attempt.Reason = res.Message
		}

		elapsed := clock.Since(run.Started)
		attempt.Elapsed = elapsed
		fields := []logging.Field{
			logging.IntField("attempt", attempt.Number),
			logging.BoolField("passed", attempt.Passed),
			logging.DurationField("elapsed", elapsed),
		}
		if err != nil {
			fields = append(fields, logging.ErrorField(err))
		}
		log.Debug("probe attempt", fields...)
		for _, o := range h.s.observers {
			o.AttemptFinished(run, attempt)
		}

		if attempt.Passed {
			out.State, out.Elapsed = StateMatched, elapsed
			h.finish(log, out)
			return out, nil
		}

		if elapsed >= cfg.Timeout {
			out.State, out.Elapsed = StateFailed, elapsed
			h.finish(log, out)
			return out, &FailureError{
				Description: run.Description,
				Message:     message,
				Outcome:     out,
			}
		}

		wait := cfg.interval(i)
		if remaining := cfg.Timeout - elapsed; wait > remaining {
			wait = remaining
		}
		if wait > 0 {
			select {
			case <-clock.After(wait):
			case <-ctx.Done():
			}
		}
	}
}

// invoke calls the probe, turning errors and panics into a
// *ProbeError.
func (h *Handle[T]) invoke(attempt int) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ProbeError{
				Attempt: attempt,
				Err:     fmt.Errorf("probe panicked: %v", r),
			}
		}
	}()

	value, err = h.probe()
	if err != nil {
		return value, &ProbeError{Attempt: attempt, Err: err}
	}
	return value, nil
}

func (h *Handle[T]) finish(log logging.Logger, out Outcome) {
	h.s.metrics.RecordPoll(
		out.Matcher, string(out.State), out.Attempts, out.Elapsed,
	)
	for _, o := range h.s.observers {
		o.PollFinished(out)
	}

	fields := []logging.Field{
		logging.StringField("state", string(out.State)),
		logging.IntField("attempts", out.Attempts),
		logging.DurationField("elapsed", out.Elapsed),
	}
	if out.State == StateMatched {
		log.Info("poll matched", fields...)
		return
	}
	log.Warn("poll failed", fields...)
}
