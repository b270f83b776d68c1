// Package page provides browser page access for viewport
// expectations and the polling assertions built on it.
package page

import (
	"context"

	"digital.vasic.expect/pkg/assertion"
)

// Page is the browser surface the viewport expectations need.
type Page interface {
	// SetContent replaces the document of the main frame.
	SetContent(ctx context.Context, html string) error

	// ViewportRatio returns the fraction of the first element
	// matching selector that intersects the viewport.
	ViewportRatio(ctx context.Context, selector string) (float64, error)

	// ScrollIntoViewIfNeeded scrolls the first element matching
	// selector into view.
	ScrollIntoViewIfNeeded(ctx context.Context, selector string) error
}

// IsElementInViewport reports whether the element matching
// selector intersects the viewport. A zero ratio accepts any
// intersection; otherwise the element's ratio must reach it.
func IsElementInViewport(
	ctx context.Context,
	p Page,
	selector string,
	ratio float64,
) (bool, error) {
	actual, err := p.ViewportRatio(ctx, selector)
	if err != nil {
		return false, err
	}
	res := assertion.Default().Evaluate(viewportDefinition(ratio), actual)
	return res.Passed, nil
}

func viewportDefinition(ratio float64) assertion.Definition {
	def := assertion.Definition{Type: assertion.TypeToBeInViewport}
	if ratio > 0 {
		def.Value = ratio
	}
	return def
}
