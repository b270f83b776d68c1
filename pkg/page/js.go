package page

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

var (
	// viewportRatioJS defines viewportRatio(selector), which
	// resolves to the IntersectionObserver ratio of the first
	// element matching selector.
	//go:embed js/viewport_ratio.js
	viewportRatioJS string
)

// viewportRatioExpr returns an expression evaluating to the
// viewport ratio promise for selector.
func viewportRatioExpr(selector string) (string, error) {
	arg, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("encode selector: %w", err)
	}
	return fmt.Sprintf("(%s)(%s)", viewportRatioJS, arg), nil
}
