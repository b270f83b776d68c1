package assertion

import (
	"fmt"
	"strings"
)

var phrases = map[string]string{
	TypeToBeGreaterThanOrEqual: "to be greater than or equal to",
	TypeToBeLessThanOrEqual:    "to be less than or equal to",
	TypeToBeNaN:                "to be NaN",
}

// Describe renders the expectation of a definition, e.g.
// "to be greater than or equal to 3" or `not to be "pending"`.
func Describe(d Definition) string {
	phrase, ok := phrases[d.Type]
	if !ok {
		phrase = strings.ReplaceAll(d.Type, "_", " ")
	}

	var b strings.Builder
	if d.Not {
		b.WriteString("not ")
	}
	b.WriteString(phrase)

	switch d.Type {
	case TypeToBeInViewport:
		if d.Value != nil {
			fmt.Fprintf(&b, " (ratio %v)", d.Value)
		}
	case TypeToSatisfyAll, TypeToSatisfyAny:
		if subs, ok := subDefinitions(d); ok {
			parts := make([]string, len(subs))
			for i, sub := range subs {
				parts[i] = Describe(sub)
			}
			fmt.Fprintf(&b, " [%s]", strings.Join(parts, ", "))
		}
	case TypeToBeCloseTo:
		precision := defaultCloseToPrecision
		if d.Precision != nil {
			precision = *d.Precision
		}
		fmt.Fprintf(&b, " %s (precision %d)", repr(d.Value), precision)
	case TypeToBeNone, TypeToBeNull, TypeToBeDefined,
		TypeToBeNaN, TypeToBeTruthy, TypeToBeFalsy:
	default:
		if d.Value != nil {
			b.WriteString(" ")
			b.WriteString(repr(d.Value))
		}
	}

	return b.String()
}
