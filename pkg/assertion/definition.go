// Package assertion provides the matcher engine behind polling
// expectations. Each matcher is a named Evaluator; the engine
// applies negation and renders human-readable descriptions.
package assertion

// Definition describes a single matcher to evaluate against a
// probed value.
type Definition struct {
	// Type is the matcher type (e.g., "to_be", "to_match",
	// "to_have_length").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value to check when several
	// values are evaluated at once.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Value is the expected value for single-value matchers.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds expected values for multi-value matchers.
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Precision is the number of decimal digits checked by
	// "to_be_close_to". Nil means two digits.
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Not inverts the outcome of the evaluator.
	Not bool `json:"not,omitempty" yaml:"not,omitempty"`

	// Message overrides the default description on failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Negate returns a copy of the definition with Not flipped.
func (d Definition) Negate() Definition {
	d.Not = !d.Not
	return d
}

// Result captures the outcome of evaluating a single matcher.
type Result struct {
	// Type is the matcher type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the value checked.
	Target string `json:"target"`

	// Not reports whether the matcher was negated.
	Not bool `json:"not,omitempty"`

	// Expected is the value the matcher expected.
	Expected any `json:"expected"`

	// Actual is the value that was observed.
	Actual any `json:"actual"`

	// Passed indicates whether the matcher succeeded after
	// negation was applied.
	Passed bool `json:"passed"`

	// Message is a human-readable explanation of the outcome.
	Message string `json:"message"`
}
