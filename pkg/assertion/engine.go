package assertion

import (
	"fmt"
	"sync"
)

// Engine defines the interface for matcher evaluation engines.
type Engine interface {
	// Evaluate checks a single matcher against the given
	// value.
	Evaluate(assertion Definition, value any) Result

	// EvaluateAll checks multiple matchers against a map of
	// named values. Each matcher's Target field is used as
	// the key into the values map.
	EvaluateAll(
		assertions []Definition,
		values map[string]any,
	) []Result

	// Register adds a custom evaluator for the given matcher
	// type. Returns an error if the type is already registered.
	Register(assertionType string, evaluator Evaluator) error
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
}

// NewEngine creates a DefaultEngine with all built-in matchers
// pre-registered.
func NewEngine() *DefaultEngine {
	e := &DefaultEngine{
		evaluators: make(map[string]Evaluator),
	}
	e.registerDefaults()
	return e
}

var defaultEngine = NewEngine()

// Default returns the process-wide engine used by polling
// expectations that are not given an engine explicitly.
func Default() *DefaultEngine {
	return defaultEngine
}

func (e *DefaultEngine) registerDefaults() {
	e.evaluators[TypeToBe] = evaluateToBe
	e.evaluators[TypeToEqual] = evaluateToEqual
	e.evaluators[TypeToMatch] = evaluateToMatch
	e.evaluators[TypeToStartWith] = evaluateToStartWith
	e.evaluators[TypeToEndWith] = evaluateToEndWith
	e.evaluators[TypeToContain] = evaluateToContain
	e.evaluators[TypeToHaveLength] = evaluateToHaveLength
	e.evaluators[TypeToBeNone] = evaluateToBeNone
	e.evaluators[TypeToBeNull] = evaluateToBeNone
	e.evaluators[TypeToBeDefined] = evaluateToBeDefined
	e.evaluators[TypeToBeCloseTo] = evaluateToBeCloseTo
	e.evaluators[TypeToBeNaN] = evaluateToBeNaN
	e.evaluators[TypeToBeInstanceOf] = evaluateToBeInstanceOf
	e.evaluators[TypeToBeTruthy] = evaluateToBeTruthy
	e.evaluators[TypeToBeFalsy] = evaluateToBeFalsy
	e.evaluators[TypeToBeGreaterThan] = evaluateToBeGreaterThan
	e.evaluators[TypeToBeGreaterThanOrEqual] = evaluateToBeGreaterThanOrEqual
	e.evaluators[TypeToBeLessThan] = evaluateToBeLessThan
	e.evaluators[TypeToBeLessThanOrEqual] = evaluateToBeLessThanOrEqual
	e.evaluators[TypeToBeInViewport] = evaluateToBeInViewport
	e.evaluators[TypeToSatisfyAll] = e.evaluateSatisfyAll
	e.evaluators[TypeToSatisfyAny] = e.evaluateSatisfyAny
}

// Register adds a custom evaluator for the given matcher type.
// Returns an error if the type is already registered.
func (e *DefaultEngine) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}

	e.evaluators[assertionType] = evaluator
	return nil
}

// Evaluate runs a single matcher against the provided value.
// Negation is applied after the evaluator runs, so a negated
// matcher passes exactly when its evaluator reports false.
func (e *DefaultEngine) Evaluate(
	assertion Definition,
	value any,
) Result {
	e.mu.RLock()
	evaluator, exists := e.evaluators[assertion.Type]
	e.mu.RUnlock()

	if !exists {
		return Result{
			Type:   assertion.Type,
			Target: assertion.Target,
			Not:    assertion.Not,
			Passed: false,
			Message: fmt.Sprintf(
				"unknown assertion type: %s",
				assertion.Type,
			),
		}
	}

	passed, message := evaluator(assertion, value)
	if assertion.Not {
		passed = !passed
	}

	return Result{
		Type:     assertion.Type,
		Target:   assertion.Target,
		Not:      assertion.Not,
		Expected: assertion.Value,
		Actual:   value,
		Passed:   passed,
		Message:  message,
	}
}

// EvaluateAll runs multiple matchers against a map of named
// values. Each matcher's Target field is used as the key into
// the values map. If a target is missing, the matcher fails.
func (e *DefaultEngine) EvaluateAll(
	assertions []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(assertions))

	for _, a := range assertions {
		value, exists := values[a.Target]
		if !exists {
			results = append(results, Result{
				Type:   a.Type,
				Target: a.Target,
				Not:    a.Not,
				Passed: false,
				Message: fmt.Sprintf(
					"target not found: %s", a.Target,
				),
			})
			continue
		}

		results = append(results, e.Evaluate(a, value))
	}

	return results
}

// HasEvaluator returns true if the given matcher type has a
// registered evaluator.
func (e *DefaultEngine) HasEvaluator(
	assertionType string,
) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[assertionType]
	return exists
}
