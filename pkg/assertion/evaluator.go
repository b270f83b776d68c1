package assertion

// Evaluator is a function that evaluates a single matcher type
// against a concrete value. It returns whether the un-negated
// condition holds and a human-readable explanation.
type Evaluator func(assertion Definition, value any) (bool, string)
