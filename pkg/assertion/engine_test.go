package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	builtins := []string{
		TypeToBe, TypeToEqual, TypeToMatch, TypeToStartWith,
		TypeToEndWith, TypeToContain, TypeToHaveLength,
		TypeToBeNone, TypeToBeNull, TypeToBeDefined,
		TypeToBeCloseTo, TypeToBeNaN, TypeToBeInstanceOf,
		TypeToBeTruthy, TypeToBeFalsy, TypeToBeGreaterThan,
		TypeToBeGreaterThanOrEqual, TypeToBeLessThan,
		TypeToBeLessThanOrEqual, TypeToBeInViewport,
	}

	for _, name := range builtins {
		assert.True(t, e.HasEvaluator(name),
			"missing built-in evaluator: %s", name)
	}
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("to_be_even", func(
		_ Definition, v any,
	) (bool, string) {
		n, ok := toInt(v)
		return ok && n%2 == 0, "parity"
	})

	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("to_be_even"))
	assert.True(t, e.Evaluate(Definition{Type: "to_be_even"}, 4).Passed)
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register(TypeToBe, func(
		_ Definition, _ any,
	) (bool, string) {
		return true, "dup"
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Evaluate_UnknownType(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "nonexistent",
		Target: "x",
	}, "hello")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown assertion type")
}

func TestDefaultEngine_Evaluate_UnknownTypeNegatedStillFails(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{Type: "nonexistent", Not: true}, 1)

	assert.False(t, r.Passed)
}

func TestDefaultEngine_Evaluate_SetsFields(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   TypeToStartWith,
		Target: "response",
		Value:  "hello",
	}, "hello world")

	assert.True(t, r.Passed)
	assert.Equal(t, TypeToStartWith, r.Type)
	assert.Equal(t, "response", r.Target)
	assert.Equal(t, "hello", r.Expected)
	assert.Equal(t, "hello world", r.Actual)
}

func TestDefaultEngine_Evaluate_Negation(t *testing.T) {
	e := NewEngine()

	pos := e.Evaluate(Definition{Type: TypeToBe, Value: "pending"}, "done")
	neg := e.Evaluate(Definition{Type: TypeToBe, Value: "pending", Not: true}, "done")

	assert.False(t, pos.Passed)
	assert.True(t, neg.Passed)
	assert.True(t, neg.Not)
}

func TestDefaultEngine_EvaluateAll_MissingTarget(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: TypeToBeTruthy, Target: "missing"},
		},
		map[string]any{"other": "value"},
	)

	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Message, "target not found")
}

func TestDefaultEngine_EvaluateAll_MultipleAssertions(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: TypeToBeTruthy, Target: "a"},
			{Type: TypeToContain, Target: "a", Value: "hello"},
			{Type: TypeToHaveLength, Target: "a", Value: 11},
		},
		map[string]any{"a": "hello world"},
	)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Passed, "assertion %s failed", r.Type)
	}
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.True(t, Default().HasEvaluator(TypeToBe))
}
