package runner

import (
	"digital.vasic.expect/pkg/httpclient"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/poll"
)

// Option configures a Runner.
type Option func(*Runner)

// WithClient sets the HTTP client used by check probes.
func WithClient(c *httpclient.Client) Option {
	return func(r *Runner) {
		r.client = c
	}
}

// WithDefaults sets the poll settings checks fall back to.
func WithDefaults(cfg poll.Config) Option {
	return func(r *Runner) {
		r.defaults = cfg
	}
}

// WithConcurrency bounds the checks polled at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithPollOptions adds options applied to every check's poll,
// such as observers or a metrics recorder.
func WithPollOptions(opts ...poll.Option) Option {
	return func(r *Runner) {
		r.pollOpts = append(r.pollOpts, opts...)
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithPostHook adds a hook run after every check.
func WithPostHook(h Hook) Option {
	return func(r *Runner) {
		r.postHooks = append(r.postHooks, h)
	}
}
