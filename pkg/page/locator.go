package page

import (
	"context"
	"time"

	"digital.vasic.expect/pkg/poll"
)

// Locator addresses the first element matching a CSS selector.
type Locator struct {
	page     Page
	selector string
}

// Locate returns a Locator for selector on p.
func Locate(p Page, selector string) Locator {
	return Locator{page: p, selector: selector}
}

func (l Locator) Selector() string {
	return l.selector
}

func (l Locator) ViewportRatio(ctx context.Context) (float64, error) {
	return l.page.ViewportRatio(ctx, l.selector)
}

func (l Locator) ScrollIntoViewIfNeeded(ctx context.Context) error {
	return l.page.ScrollIntoViewIfNeeded(ctx, l.selector)
}

// LocatorAssertions polls a locator until an expectation holds.
type LocatorAssertions struct {
	ctx     context.Context
	locator Locator
	opts    []poll.Option
}

// Expect returns assertions on l. The options configure the
// underlying poll; ctx bounds every probe.
func Expect(
	ctx context.Context,
	l Locator,
	opts ...poll.Option,
) *LocatorAssertions {
	return &LocatorAssertions{ctx: ctx, locator: l, opts: opts}
}

// ViewportOption configures a viewport expectation.
type ViewportOption func(*viewportOptions)

type viewportOptions struct {
	ratio   float64
	timeout *time.Duration
}

// WithRatio sets the minimal intersection ratio. Zero, the
// default, accepts any intersection.
func WithRatio(ratio float64) ViewportOption {
	return func(o *viewportOptions) { o.ratio = ratio }
}

// WithTimeout overrides the poll timeout for one expectation.
func WithTimeout(d time.Duration) ViewportOption {
	return func(o *viewportOptions) { o.timeout = &d }
}

// ToBeInViewport waits until the element intersects the
// viewport, by at least the ratio if one is given.
func (a *LocatorAssertions) ToBeInViewport(opts ...ViewportOption) error {
	return a.viewport(false, opts)
}

// NotToBeInViewport waits until the element no longer meets the
// viewport expectation.
func (a *LocatorAssertions) NotToBeInViewport(opts ...ViewportOption) error {
	return a.viewport(true, opts)
}

func (a *LocatorAssertions) viewport(not bool, opts []ViewportOption) error {
	var o viewportOptions
	for _, opt := range opts {
		opt(&o)
	}

	pollOpts := a.opts
	if o.timeout != nil {
		pollOpts = append(pollOpts[:len(pollOpts):len(pollOpts)],
			poll.WithTimeout(*o.timeout))
	}

	def := viewportDefinition(o.ratio)
	def.Not = not
	return poll.New(func() (float64, error) {
		return a.locator.ViewportRatio(a.ctx)
	}, pollOpts...).Should(def)
}
