package assertion

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	x, y int
}

func intPtr(i int) *int { return &i }

func TestEvaluateToBe(t *testing.T) {
	var nilPtr *point

	tests := []struct {
		name     string
		value    any
		expected any
		passed   bool
	}{
		{"same int", 1, 1, true},
		{"different int", 1, 2, false},
		{"int and int64", int64(3), 3, true},
		{"int and float", 3.0, 3, true},
		{"same string", "done", "done", true},
		{"different string", "done", "pending", false},
		{"NaN is NaN", math.NaN(), math.NaN(), true},
		{"nil and nil", nil, nil, true},
		{"typed nil and nil", nilPtr, nil, true},
		{"nil and value", nil, 0, false},
		{"string and int", "1", 1, false},
		{"comparable structs", point{1, 2}, point{1, 2}, true},
		{"slices are not comparable", []int{1}, []int{1}, false},
		{"int64 above 2^53", int64(1<<53 + 1), int64(1 << 53), false},
		{"uint64 above 2^53", uint64(1<<53 + 1), uint64(1<<53 + 1), true},
		{"negative int and uint", -1, uint64(math.MaxUint64), false},
		{"uint64 max and int", uint64(math.MaxUint64), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := evaluateToBe(Definition{Value: tt.expected}, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateToBe_InterfaceFieldDoesNotPanic(t *testing.T) {
	type holder struct{ v any }

	ok, _ := evaluateToBe(
		Definition{Value: holder{v: []int{1}}},
		holder{v: []int{1}},
	)
	assert.False(t, ok)
}

func TestEvaluateToEqual(t *testing.T) {
	ok, _ := evaluateToEqual(
		Definition{Value: []int{1, 2, 3}}, []int{1, 2, 3},
	)
	assert.True(t, ok)

	ok, _ = evaluateToEqual(
		Definition{Value: point{1, 2}}, point{1, 2},
	)
	assert.True(t, ok, "unexported fields are compared")

	ok, msg := evaluateToEqual(
		Definition{Value: map[string]int{"a": 1}},
		map[string]int{"a": 2},
	)
	assert.False(t, ok)
	assert.Contains(t, msg, "-expected +actual")
}

func TestEvaluateToMatch(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected any
		passed   bool
	}{
		{"compiled regexp", "alpha-beta", regexp.MustCompile(`alpha`), true},
		{"substring", "alpha-beta", "beta", true},
		{"substring missing", "alpha-beta", "gamma", false},
		{"regex literal", "alpha-beta", "/^al.*ta$/", true},
		{"regex literal no match", "alpha-beta", "/^beta/", false},
		{"regex literal flags", "ALPHA", "/alpha/i", true},
		{"path is a substring", "exec /usr/bin/sim failed", "/usr/bin/sim", true},
		{"path is not a regex", "usr/bin", "/usr/bin/sim", false},
		{"escaped slash literal", "a/b", `/^a\/b$/`, true},
		{"slash in class literal", "a/b", "/^a[/]b$/", true},
		{"repeated flag is a substring", "/x/ii", "/x/ii", true},
		{"bytes value", []byte("alpha"), "alp", true},
		{"invalid regex", "alpha", "/(/", false},
		{"non-string value", 42, "4", false},
		{"non-string expected", "42", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := evaluateToMatch(Definition{Value: tt.expected}, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateStartEndWith(t *testing.T) {
	ok, _ := evaluateToStartWith(Definition{Value: "alpha"}, "alpha-beta")
	assert.True(t, ok)
	ok, _ = evaluateToStartWith(Definition{Value: "beta"}, "alpha-beta")
	assert.False(t, ok)
	ok, _ = evaluateToEndWith(Definition{Value: "beta"}, "alpha-beta")
	assert.True(t, ok)
	ok, _ = evaluateToEndWith(Definition{Value: "alpha"}, "alpha-beta")
	assert.False(t, ok)
	ok, msg := evaluateToEndWith(Definition{Value: "x"}, 1)
	assert.False(t, ok)
	assert.Equal(t, "value is not a string", msg)
}

func TestEvaluateToContain(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected any
		passed   bool
	}{
		{"substring", "hello world", "lo w", true},
		{"substring is case sensitive", "hello", "HELLO", false},
		{"slice element", []int{1, 2, 3}, 2, true},
		{"slice element numeric", []int64{1, 2, 3}, 3, true},
		{"slice missing", []string{"a"}, "b", false},
		{"array element", [2]string{"a", "b"}, "b", true},
		{"map key", map[string]int{"k": 1}, "k", true},
		{"map missing key", map[string]int{"k": 1}, "v", false},
		{"not a collection", 42, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := evaluateToContain(Definition{Value: tt.expected}, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateToHaveLength(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected any
		passed   bool
	}{
		{"slice", []int{1, 2, 3}, 3, true},
		{"slice wrong length", []int{1, 2}, 3, false},
		{"string", "abc", 3, true},
		{"multibyte string", "héllo", 5, true},
		{"multibyte bytes are not characters", "héllo", 6, false},
		{"map", map[string]int{"a": 1}, 1, true},
		{"array pointer", &[4]int{}, 4, true},
		{"float expected", []int{1}, float64(1), true},
		{"no length", 42, 2, false},
		{"nil", nil, 0, false},
		{"non-number expected", "abc", "three", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := evaluateToHaveLength(Definition{Value: tt.expected}, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateNoneAndDefined(t *testing.T) {
	var nilPtr *point
	var nilMap map[string]int

	tests := []struct {
		name    string
		value   any
		none    bool
		defined bool
	}{
		{"untyped nil", nil, true, false},
		{"typed nil pointer", nilPtr, true, true},
		{"nil map", nilMap, true, true},
		{"zero int", 0, false, true},
		{"empty string", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			none, _ := evaluateToBeNone(Definition{}, tt.value)
			defined, _ := evaluateToBeDefined(Definition{}, tt.value)
			assert.Equal(t, tt.none, none)
			assert.Equal(t, tt.defined, defined)
		})
	}
}

func TestEvaluateToBeCloseTo(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		expected  any
		precision *int
		passed    bool
	}{
		{"default precision", 1.234, 1.23, nil, true},
		{"explicit precision", 1.234, 1.23, intPtr(2), true},
		{"too far", 1.24, 1.23, intPtr(2), false},
		{"higher precision", 1.234, 1.23, intPtr(3), false},
		{"zero precision", 1.4, 1, intPtr(0), true},
		{"same infinity", math.Inf(1), math.Inf(1), nil, true},
		{"opposite infinity", math.Inf(-1), math.Inf(1), nil, false},
		{"non-number", "1.23", 1.23, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Definition{Value: tt.expected, Precision: tt.precision}
			ok, _ := evaluateToBeCloseTo(d, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateToBeNaN(t *testing.T) {
	ok, _ := evaluateToBeNaN(Definition{}, math.NaN())
	assert.True(t, ok)
	ok, _ = evaluateToBeNaN(Definition{}, float32(math.NaN()))
	assert.True(t, ok)
	ok, _ = evaluateToBeNaN(Definition{}, 1.0)
	assert.False(t, ok)
	ok, _ = evaluateToBeNaN(Definition{}, "NaN")
	assert.False(t, ok)
}

func TestEvaluateToBeInstanceOf(t *testing.T) {
	errorType := reflect.TypeFor[error]()

	tests := []struct {
		name     string
		value    any
		expected any
		passed   bool
	}{
		{"string type", "hello", reflect.TypeFor[string](), true},
		{"wrong type", 1, reflect.TypeFor[string](), false},
		{"interface", errors.New("x"), errorType, true},
		{"interface not implemented", 1, errorType, false},
		{"stringer", point{}, reflect.TypeFor[fmt.Stringer](), false},
		{"type name", "hello", "string", true},
		{"qualified type name", point{}, "assertion.point", true},
		{"nil value", nil, reflect.TypeFor[string](), false},
		{"not a type", "hello", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := evaluateToBeInstanceOf(Definition{Value: tt.expected}, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateTruthiness(t *testing.T) {
	var nilPtr *point

	tests := []struct {
		name   string
		value  any
		truthy bool
	}{
		{"empty string", "", false},
		{"non-empty string", "x", true},
		{"zero", 0, false},
		{"non-zero", -1, true},
		{"NaN", math.NaN(), false},
		{"false", false, false},
		{"true", true, true},
		{"nil", nil, false},
		{"typed nil", nilPtr, false},
		{"empty slice", []int{}, true},
		{"struct", point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			truthy, _ := evaluateToBeTruthy(Definition{}, tt.value)
			falsy, _ := evaluateToBeFalsy(Definition{}, tt.value)
			assert.Equal(t, tt.truthy, truthy)
			assert.Equal(t, !tt.truthy, falsy)
		})
	}
}

func TestEvaluateComparisons(t *testing.T) {
	tests := []struct {
		name      string
		evaluator Evaluator
		value     any
		expected  any
		passed    bool
	}{
		{"greater", evaluateToBeGreaterThan, 4, 3, true},
		{"not greater", evaluateToBeGreaterThan, 3, 3, false},
		{"greater or equal", evaluateToBeGreaterThanOrEqual, 3, 3, true},
		{"greater or equal below", evaluateToBeGreaterThanOrEqual, 2, 3, false},
		{"less", evaluateToBeLessThan, 2.5, 3, true},
		{"not less", evaluateToBeLessThan, uint8(3), 3, false},
		{"less or equal", evaluateToBeLessThanOrEqual, 3, 3.0, true},
		{"non-number value", evaluateToBeGreaterThan, "4", 3, false},
		{"non-number expected", evaluateToBeLessThan, 4, "3", false},
		{"int64 above 2^53", evaluateToBeGreaterThan, int64(1<<53 + 1), int64(1 << 53), true},
		{"int64 above 2^53 not less", evaluateToBeLessThanOrEqual, int64(1<<53 + 1), int64(1 << 53), false},
		{"uint64 above int64", evaluateToBeGreaterThan, uint64(math.MaxUint64), int64(math.MaxInt64), true},
		{"negative below uint", evaluateToBeLessThan, -1, uint(0), true},
		{"int and float", evaluateToBeGreaterThan, 3, 2.5, true},
		{"NaN never compares", evaluateToBeGreaterThanOrEqual, math.NaN(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := tt.evaluator(Definition{Value: tt.expected}, tt.value)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestCompareNumbers_ExactReason(t *testing.T) {
	ok, msg := evaluateToBeGreaterThan(
		Definition{Value: int64(9007199254740992)}, int64(9007199254740993))
	assert.True(t, ok)
	assert.Equal(t, "9007199254740993 > 9007199254740992", msg)
}

func TestEvaluateToBeInViewport(t *testing.T) {
	tests := []struct {
		name     string
		ratio    any
		expected any
		passed   bool
	}{
		{"any intersection", 0.25, nil, true},
		{"no intersection", 0.0, nil, false},
		{"ratio reached", 0.25, 0.25, true},
		{"ratio above", 0.25, 0.1, true},
		{"ratio missed", 0.25, 0.26, false},
		{"zero ratio option", 0.25, 0, true},
		{"zero ratio option no intersection", 0.0, 0, false},
		{"full", 1.0, 1, true},
		{"not a ratio", "1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := evaluateToBeInViewport(Definition{Value: tt.expected}, tt.ratio)
			assert.Equal(t, tt.passed, ok)
		})
	}
}

func TestEvaluateToBeInViewport_Message(t *testing.T) {
	_, msg := evaluateToBeInViewport(Definition{Not: true}, 1.0)
	assert.Equal(t, `unexpected value "viewport ratio 1"`, msg)

	_, msg = evaluateToBeInViewport(Definition{Value: 0.3}, 0.25)
	assert.Equal(t, `unexpected value "viewport ratio 0.25"`, msg)

	_, msg = evaluateToBeInViewport(Definition{}, 0.25)
	assert.Equal(t, "viewport ratio 0.25", msg)
}
