package assertion

import "fmt"

// AllPassComposite evaluates every definition and reports the
// first failure, if any.
func AllPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if !r.Passed {
			return Result{
				Type:   "all_pass",
				Passed: false,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' failed: %s",
					r.Type, r.Target, r.Message,
				),
			}
		}
	}

	return Result{
		Type:   "all_pass",
		Passed: true,
		Message: fmt.Sprintf(
			"all %d assertions passed", len(results),
		),
	}
}

// AnyPassComposite evaluates every definition and passes if at
// least one passed.
func AnyPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if r.Passed {
			return Result{
				Type:   "any_pass",
				Passed: true,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' passed",
					r.Type, r.Target,
				),
			}
		}
	}

	return Result{
		Type:   "any_pass",
		Passed: false,
		Message: fmt.Sprintf(
			"none of %d assertions passed",
			len(results),
		),
	}
}

// CompositeAllPass returns an Evaluator that applies a fixed set
// of sub-matchers to the same value and requires all to pass.
// Register it under a new type to poll for several conditions
// at once.
func CompositeAllPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return func(_ Definition, value any) (bool, string) {
		values, defs := sameTarget(subAssertions, value)
		r := AllPassComposite(engine, defs, values)
		return r.Passed, r.Message
	}
}

// CompositeAnyPass returns an Evaluator that applies a fixed set
// of sub-matchers to the same value and requires at least one to
// pass.
func CompositeAnyPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return func(_ Definition, value any) (bool, string) {
		values, defs := sameTarget(subAssertions, value)
		r := AnyPassComposite(engine, defs, values)
		return r.Passed, r.Message
	}
}

// AllOf returns a definition that passes when every sub-matcher
// passes for the probed value.
func AllOf(defs ...Definition) Definition {
	return Definition{Type: TypeToSatisfyAll, Values: subValues(defs)}
}

// AnyOf returns a definition that passes when at least one
// sub-matcher passes for the probed value.
func AnyOf(defs ...Definition) Definition {
	return Definition{Type: TypeToSatisfyAny, Values: subValues(defs)}
}

func subValues(defs []Definition) []any {
	values := make([]any, len(defs))
	for i, d := range defs {
		values[i] = d
	}
	return values
}

// subDefinitions extracts the sub-matchers of a composite
// definition.
func subDefinitions(d Definition) ([]Definition, bool) {
	if len(d.Values) == 0 {
		return nil, false
	}
	defs := make([]Definition, 0, len(d.Values))
	for _, v := range d.Values {
		sub, ok := v.(Definition)
		if !ok {
			return nil, false
		}
		defs = append(defs, sub)
	}
	return defs, true
}

func (e *DefaultEngine) evaluateSatisfyAll(
	assertion Definition,
	value any,
) (bool, string) {
	subs, ok := subDefinitions(assertion)
	if !ok {
		return false, "no sub-matchers"
	}
	return CompositeAllPass(e, subs)(assertion, value)
}

func (e *DefaultEngine) evaluateSatisfyAny(
	assertion Definition,
	value any,
) (bool, string) {
	subs, ok := subDefinitions(assertion)
	if !ok {
		return false, "no sub-matchers"
	}
	return CompositeAnyPass(e, subs)(assertion, value)
}

func sameTarget(
	subAssertions []Definition,
	value any,
) (map[string]any, []Definition) {
	defs := make([]Definition, len(subAssertions))
	values := make(map[string]any, len(subAssertions))
	for i, a := range subAssertions {
		if a.Target == "" {
			a.Target = fmt.Sprintf("#%d", i)
		}
		defs[i] = a
		values[a.Target] = value
	}
	return values, defs
}
