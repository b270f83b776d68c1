package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllPassComposite_AllPass(t *testing.T) {
	e := NewEngine()

	assertions := []Definition{
		{Type: TypeToBeTruthy, Target: "response"},
		{Type: TypeToContain, Target: "response", Value: "hello"},
	}
	values := map[string]any{
		"response": "hello world",
	}

	r := AllPassComposite(e, assertions, values)
	assert.True(t, r.Passed)
	assert.Equal(t, "all_pass", r.Type)
	assert.Contains(t, r.Message, "2 assertions passed")
}

func TestAllPassComposite_OneFails(t *testing.T) {
	e := NewEngine()

	assertions := []Definition{
		{Type: TypeToBeTruthy, Target: "response"},
		{Type: TypeToContain, Target: "response", Value: "xyz"},
	}
	values := map[string]any{
		"response": "hello world",
	}

	r := AllPassComposite(e, assertions, values)
	assert.False(t, r.Passed)
	assert.Equal(t, "all_pass", r.Type)
	assert.Contains(t, r.Message, "failed")
}

func TestAnyPassComposite(t *testing.T) {
	e := NewEngine()

	assertions := []Definition{
		{Type: TypeToContain, Target: "response", Value: "xyz"},
		{Type: TypeToContain, Target: "response", Value: "hello"},
	}

	r := AnyPassComposite(e, assertions, map[string]any{"response": "hello"})
	assert.True(t, r.Passed)

	r = AnyPassComposite(e, assertions, map[string]any{"response": "nope"})
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "none of 2")
}

func TestCompositeAllPass_RegisteredEvaluator(t *testing.T) {
	e := NewEngine()

	require.NoError(t, e.Register("to_be_small_positive", CompositeAllPass(e, []Definition{
		{Type: TypeToBeGreaterThan, Value: 0},
		{Type: TypeToBeLessThan, Value: 10},
	})))

	assert.True(t, e.Evaluate(Definition{Type: "to_be_small_positive"}, 5).Passed)
	assert.False(t, e.Evaluate(Definition{Type: "to_be_small_positive"}, 11).Passed)
	assert.True(t, e.Evaluate(Definition{Type: "to_be_small_positive", Not: true}, 11).Passed)
}

func TestCompositeAnyPass(t *testing.T) {
	e := NewEngine()

	eval := CompositeAnyPass(e, []Definition{
		{Type: TypeToBe, Value: "ready"},
		{Type: TypeToBe, Value: "done"},
	})

	ok, _ := eval(Definition{}, "done")
	assert.True(t, ok)
	ok, _ = eval(Definition{}, "pending")
	assert.False(t, ok)
}

func TestAllOf_ThroughEngine(t *testing.T) {
	e := NewEngine()
	def := AllOf(
		Definition{Type: TypeToStartWith, Value: "hel"},
		Definition{Type: TypeToEndWith, Value: "rld"},
	)

	assert.True(t, e.Evaluate(def, "hello world").Passed)

	r := e.Evaluate(def, "hello there")
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "to_end_with")

	assert.True(t, e.Evaluate(def.Negate(), "hello there").Passed)
}

func TestAnyOf_ThroughEngine(t *testing.T) {
	e := NewEngine()
	def := AnyOf(
		Definition{Type: TypeToBe, Value: "ready"},
		Definition{Type: TypeToBe, Value: "done"},
	)

	assert.True(t, e.Evaluate(def, "done").Passed)
	assert.False(t, e.Evaluate(def, "pending").Passed)
}

func TestComposite_Empty(t *testing.T) {
	r := NewEngine().Evaluate(AllOf(), "x")
	assert.False(t, r.Passed)
	assert.Equal(t, "no sub-matchers", r.Message)
}

func TestDescribe_Composite(t *testing.T) {
	def := AnyOf(
		Definition{Type: TypeToBe, Value: "ready"},
		Definition{Type: TypeToBeGreaterThan, Value: 3},
	)
	assert.Equal(t,
		`to satisfy any [to be "ready", to be greater than 3]`,
		Describe(def))
}
