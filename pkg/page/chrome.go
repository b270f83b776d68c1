package page

import (
	"context"
	"fmt"

	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// ChromePage drives a Chrome tab over the DevTools protocol.
type ChromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// DefaultAllocatorOptions are the exec allocator options used by
// NewChromePage when none are given.
func DefaultAllocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.WindowSize(1280, 720),
	)
}

// NewChromePage starts a browser and opens a blank tab. Close
// releases both.
func NewChromePage(
	parent context.Context,
	opts ...chromedp.ExecAllocatorOption,
) (*ChromePage, error) {
	if len(opts) == 0 {
		opts = DefaultAllocatorOptions()
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelTab := chromedp.NewContext(allocCtx)

	p := &ChromePage{
		ctx: ctx,
		cancel: func() {
			cancelTab()
			cancelAlloc()
		},
	}
	if err := chromedp.Run(ctx, chromedp.Navigate("about:blank")); err != nil {
		p.cancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	return p, nil
}

// Close shuts the tab and the browser down.
func (p *ChromePage) Close() error {
	p.cancel()
	return nil
}

// Navigate loads url in the tab and waits for the load event.
func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *ChromePage) SetContent(ctx context.Context, html string) error {
	return p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := cdppage.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return cdppage.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	}))
}

func (p *ChromePage) ViewportRatio(
	ctx context.Context,
	selector string,
) (float64, error) {
	expr, err := viewportRatioExpr(selector)
	if err != nil {
		return 0, err
	}

	var ratio float64
	err = p.run(ctx, chromedp.Evaluate(expr, &ratio,
		func(params *runtime.EvaluateParams) *runtime.EvaluateParams {
			return params.WithAwaitPromise(true)
		},
	))
	if err != nil {
		return 0, fmt.Errorf("viewport ratio of %s: %w", selector, err)
	}
	return ratio, nil
}

func (p *ChromePage) ScrollIntoViewIfNeeded(
	ctx context.Context,
	selector string,
) error {
	return p.run(ctx,
		chromedp.ScrollIntoView(selector, chromedp.ByQuery),
	)
}

// run executes actions on the tab, bounded by ctx.
func (p *ChromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}
