// Package runner executes suite checks concurrently, each as an
// independent poll, and returns results in submission order.
package runner

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"digital.vasic.expect/pkg/httpclient"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/poll"
	"digital.vasic.expect/pkg/suite"
)

// Result is the outcome of one check.
type Result struct {
	Check   string       `json:"check"`
	Outcome poll.Outcome `json:"outcome"`
	// Err is a *poll.FailureError when the check timed out, or
	// the error that kept it from polling.
	Err error `json:"-"`
}

// Passed reports whether the check matched.
func (r Result) Passed() bool {
	return r.Err == nil && r.Outcome.State == poll.StateMatched
}

// Hook is invoked after each check finishes, on the goroutine
// that ran it.
type Hook func(ctx context.Context, result Result)

// Runner polls suite checks with a concurrency limit.
type Runner struct {
	client      *httpclient.Client
	defaults    poll.Config
	concurrency int
	pollOpts    []poll.Option
	logger      logging.Logger
	postHooks   []Hook
}

// New creates a Runner with the supplied options.
func New(opts ...Option) *Runner {
	r := &Runner{
		client:      httpclient.NewClient(),
		defaults:    poll.DefaultConfig(),
		concurrency: 4,
		logger:      logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile runs the checks of a suite file. The file's defaults,
// when present, replace the runner's.
func (r *Runner) RunFile(ctx context.Context, file *suite.File) ([]Result, error) {
	defaults := r.defaults
	if file.Defaults != nil {
		defaults = *file.Defaults
		if len(defaults.Intervals) == 0 {
			defaults.Intervals = r.defaults.Intervals
		}
	}
	return r.run(ctx, file.Checks, defaults)
}

// Run executes checks concurrently. A failed check does not stop
// the others; the returned error is only set when ctx ends the
// run early.
func (r *Runner) Run(ctx context.Context, checks []suite.Check) ([]Result, error) {
	return r.run(ctx, checks, r.defaults)
}

func (r *Runner) run(
	ctx context.Context,
	checks []suite.Check,
	defaults poll.Config,
) ([]Result, error) {
	limit := r.concurrency
	if limit <= 0 {
		limit = 1
	}

	results := make([]Result, len(checks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	start := time.Now()
	for i, c := range checks {
		if gctx.Err() != nil {
			results[i] = Result{Check: c.Name, Err: gctx.Err()}
			continue
		}
		g.Go(func() error {
			results[i] = r.runCheck(gctx, c, defaults)
			return nil
		})
	}
	_ = g.Wait()

	passed := 0
	for _, res := range results {
		if res.Passed() {
			passed++
		}
	}
	r.logger.Info("suite finished",
		logging.IntField("checks", len(results)),
		logging.IntField("passed", passed),
		logging.DurationField("duration", time.Since(start)),
	)

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) runCheck(
	ctx context.Context,
	c suite.Check,
	defaults poll.Config,
) Result {
	log := r.logger.WithFields(logging.StringField("check", c.Name))

	opts := make([]poll.Option, 0, len(r.pollOpts)+3)
	opts = append(opts, r.pollOpts...)
	opts = append(opts,
		poll.WithConfig(c.PollConfig(defaults)),
		poll.WithContext(ctx),
		poll.WithLogger(log),
	)

	probe := r.client.Probe(ctx, c.HTTP, c.Field)
	out, err := poll.New(probe, opts...).Run(c.Definition())
	res := Result{Check: c.Name, Outcome: out, Err: err}

	var failure *poll.FailureError
	switch {
	case err == nil:
		log.Info("check passed",
			logging.IntField("attempts", out.Attempts))
	case errors.As(err, &failure):
		log.Warn("check failed",
			logging.IntField("attempts", out.Attempts),
			logging.StringField("reason", out.Reason))
	default:
		log.Error("check aborted", logging.ErrorField(err))
	}

	for _, h := range r.postHooks {
		h(ctx, res)
	}
	return res
}
