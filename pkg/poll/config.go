package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/metrics"
)

// DefaultTimeout is the timeout used when none is configured.
const DefaultTimeout = 5 * time.Second

// DefaultIntervals is the retry schedule used when none is
// configured. The last interval repeats until the timeout.
var DefaultIntervals = []time.Duration{
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
}

// Config holds the timing and reporting settings of a poll.
type Config struct {
	// Timeout bounds the poll, measured from the first
	// attempt. Zero still allows exactly one attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Intervals is the backoff schedule between attempts.
	Intervals []time.Duration `json:"intervals" yaml:"intervals"`

	// Message replaces the matcher description in the
	// failure message.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// DefaultConfig returns a Config with the default timeout and
// intervals.
func DefaultConfig() Config {
	intervals := make([]time.Duration, len(DefaultIntervals))
	copy(intervals, DefaultIntervals)
	return Config{
		Timeout:   DefaultTimeout,
		Intervals: intervals,
	}
}

// Validate reports a negative timeout or interval.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("poll: negative timeout %s", c.Timeout)
	}
	for i, d := range c.Intervals {
		if d < 0 {
			return fmt.Errorf(
				"poll: negative interval %s at index %d", d, i,
			)
		}
	}
	return nil
}

// interval returns the wait after the given zero-based attempt.
func (c Config) interval(attempt int) time.Duration {
	intervals := c.Intervals
	if len(intervals) == 0 {
		intervals = DefaultIntervals
	}
	if attempt >= len(intervals) {
		attempt = len(intervals) - 1
	}
	return intervals[attempt]
}

// Option configures a poll.
type Option func(*settings)

type settings struct {
	ctx       context.Context
	cfg       Config
	clock     clockwork.Clock
	engine    assertion.Engine
	logger    logging.Logger
	metrics   metrics.Recorder
	observers []Observer
}

func newSettings(opts []Option) settings {
	s := settings{
		ctx:     context.Background(),
		cfg:     DefaultConfig(),
		clock:   clockwork.NewRealClock(),
		engine:  assertion.Default(),
		logger:  logging.NullLogger{},
		metrics: metrics.NoopMetrics{},
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// WithConfig replaces timeout, intervals and message at once.
// Empty intervals fall back to DefaultIntervals.
func WithConfig(cfg Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithTimeout sets the poll timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.cfg.Timeout = d }
}

// WithIntervals sets the retry schedule.
func WithIntervals(intervals ...time.Duration) Option {
	return func(s *settings) { s.cfg.Intervals = intervals }
}

// WithMessage overrides the failure description.
func WithMessage(msg string) Option {
	return func(s *settings) { s.cfg.Message = msg }
}

// WithContext stops the poll early when ctx is done. The poll
// then returns ctx's error instead of a *FailureError.
func WithContext(ctx context.Context) Option {
	return func(s *settings) { s.ctx = ctx }
}

// WithClock sets the clock used for elapsed time and sleeps.
func WithClock(c clockwork.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithEngine sets the matcher engine, e.g. one with custom
// evaluators registered.
func WithEngine(e assertion.Engine) Option {
	return func(s *settings) { s.engine = e }
}

// WithLogger sets the logger for attempts and outcomes.
func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.Recorder) Option {
	return func(s *settings) { s.metrics = m }
}

// WithObserver adds an observer notified of every attempt.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observers = append(s.observers, o)
	}
}
