package assertion

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Built-in matcher types.
const (
	TypeToBe                   = "to_be"
	TypeToEqual                = "to_equal"
	TypeToMatch                = "to_match"
	TypeToStartWith            = "to_start_with"
	TypeToEndWith              = "to_end_with"
	TypeToContain              = "to_contain"
	TypeToHaveLength           = "to_have_length"
	TypeToBeNone               = "to_be_none"
	TypeToBeNull               = "to_be_null"
	TypeToBeDefined            = "to_be_defined"
	TypeToBeCloseTo            = "to_be_close_to"
	TypeToBeNaN                = "to_be_nan"
	TypeToBeInstanceOf         = "to_be_instance_of"
	TypeToBeTruthy             = "to_be_truthy"
	TypeToBeFalsy              = "to_be_falsy"
	TypeToBeGreaterThan        = "to_be_greater_than"
	TypeToBeGreaterThanOrEqual = "to_be_greater_than_or_equal"
	TypeToBeLessThan           = "to_be_less_than"
	TypeToBeLessThanOrEqual    = "to_be_less_than_or_equal"
	TypeToBeInViewport         = "to_be_in_viewport"
	TypeToSatisfyAll           = "to_satisfy_all"
	TypeToSatisfyAny           = "to_satisfy_any"
)

const (
	defaultCloseToPrecision = 2
	viewportRatioTolerance  = 1e-9
)

// evaluateToBe checks identity-style equality. Numbers of
// different Go types compare by value and NaN is the same as NaN.
func evaluateToBe(
	assertion Definition,
	value any,
) (bool, string) {
	if sameValue(assertion.Value, value) {
		return true, fmt.Sprintf("value is %s", repr(value))
	}
	return false, fmt.Sprintf(
		"%s is not %s", repr(value), repr(assertion.Value),
	)
}

// evaluateToEqual checks deep equality, including unexported
// struct fields.
func evaluateToEqual(
	assertion Definition,
	value any,
) (bool, string) {
	opt := cmp.Exporter(func(reflect.Type) bool { return true })
	if cmp.Equal(assertion.Value, value, opt) {
		return true, "values are equal"
	}
	return false, fmt.Sprintf(
		"values differ (-expected +actual):\n%s",
		cmp.Diff(assertion.Value, value, opt),
	)
}

// evaluateToMatch checks a string against a substring, a
// "/pattern/flags" literal or a compiled *regexp.Regexp.
func evaluateToMatch(
	assertion Definition,
	value any,
) (bool, string) {
	str, ok := asString(value)
	if !ok {
		return false, "value is not a string"
	}

	var re *regexp.Regexp
	switch p := assertion.Value.(type) {
	case *regexp.Regexp:
		re = p
	case string:
		if pattern, isLiteral := parseRegexLiteral(p); isLiteral {
			compiled, err := compilePattern(pattern)
			if err != nil {
				return false, fmt.Sprintf(
					"invalid pattern %s: %v", p, err,
				)
			}
			re = compiled
			break
		}
		if strings.Contains(str, p) {
			return true, fmt.Sprintf("contains %q", p)
		}
		return false, fmt.Sprintf(
			"%q does not contain %q", str, p,
		)
	default:
		return false, "expected value is not a string or pattern"
	}

	if re.MatchString(str) {
		return true, fmt.Sprintf("matches /%s/", re)
	}
	return false, fmt.Sprintf(
		"%q does not match /%s/", str, re,
	)
}

func evaluateToStartWith(
	assertion Definition,
	value any,
) (bool, string) {
	str, expected, msg, ok := stringPair(assertion, value)
	if !ok {
		return false, msg
	}
	if strings.HasPrefix(str, expected) {
		return true, fmt.Sprintf("starts with %q", expected)
	}
	return false, fmt.Sprintf(
		"%q does not start with %q", str, expected,
	)
}

func evaluateToEndWith(
	assertion Definition,
	value any,
) (bool, string) {
	str, expected, msg, ok := stringPair(assertion, value)
	if !ok {
		return false, msg
	}
	if strings.HasSuffix(str, expected) {
		return true, fmt.Sprintf("ends with %q", expected)
	}
	return false, fmt.Sprintf(
		"%q does not end with %q", str, expected,
	)
}

// evaluateToContain checks for a substring in a string, an
// element in a slice or array, or a key in a map.
func evaluateToContain(
	assertion Definition,
	value any,
) (bool, string) {
	if str, ok := asString(value); ok {
		expected, ok := asString(assertion.Value)
		if !ok {
			return false, "expected value is not a string"
		}
		if strings.Contains(str, expected) {
			return true, fmt.Sprintf("contains %q", expected)
		}
		return false, fmt.Sprintf(
			"%q does not contain %q", str, expected,
		)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if sameValue(assertion.Value, rv.Index(i).Interface()) {
				return true, fmt.Sprintf(
					"contains %s at index %d",
					repr(assertion.Value), i,
				)
			}
		}
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if sameValue(assertion.Value, key.Interface()) {
				return true, fmt.Sprintf(
					"has key %s", repr(assertion.Value),
				)
			}
		}
	default:
		return false, "value is not a string, collection or map"
	}

	return false, fmt.Sprintf(
		"%s does not contain %s",
		repr(value), repr(assertion.Value),
	)
}

func evaluateToHaveLength(
	assertion Definition,
	value any,
) (bool, string) {
	actual, ok := lengthOf(value)
	if !ok {
		return false, "value has no length"
	}

	expected, ok := toInt(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}

	if actual == expected {
		return true, fmt.Sprintf("length %d == %d", actual, expected)
	}
	return false, fmt.Sprintf("length %d != %d", actual, expected)
}

// evaluateToBeNone passes for nil and for typed nil pointers,
// maps, slices, channels, functions and interfaces.
func evaluateToBeNone(
	_ Definition,
	value any,
) (bool, string) {
	if isNil(value) {
		return true, "value is nil"
	}
	return false, fmt.Sprintf("%s is not nil", repr(value))
}

// evaluateToBeDefined passes for anything except an untyped nil.
// A typed nil pointer is defined.
func evaluateToBeDefined(
	_ Definition,
	value any,
) (bool, string) {
	if value == nil {
		return false, "value is undefined"
	}
	return true, fmt.Sprintf("value is %s", repr(value))
}

// evaluateToBeCloseTo checks |expected-actual| < 10^-precision / 2.
func evaluateToBeCloseTo(
	assertion Definition,
	value any,
) (bool, string) {
	actual, ok := toFloat64(value)
	if !ok {
		return false, "value is not a number"
	}

	expected, ok := toFloat64(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}

	precision := defaultCloseToPrecision
	if assertion.Precision != nil {
		precision = *assertion.Precision
	}

	if math.IsInf(expected, 0) && math.IsInf(actual, 0) &&
		math.Signbit(expected) == math.Signbit(actual) {
		return true, "both values are the same infinity"
	}

	diff := math.Abs(expected - actual)
	limit := math.Pow10(-precision) / 2
	if diff < limit {
		return true, fmt.Sprintf(
			"difference %g < %g", diff, limit,
		)
	}
	return false, fmt.Sprintf(
		"difference %g >= %g", diff, limit,
	)
}

func evaluateToBeNaN(
	_ Definition,
	value any,
) (bool, string) {
	f, ok := toFloat64(value)
	if !ok {
		return false, "value is not a number"
	}
	if math.IsNaN(f) {
		return true, "value is NaN"
	}
	return false, fmt.Sprintf("%g is not NaN", f)
}

// evaluateToBeInstanceOf accepts a reflect.Type (interfaces match
// by implementation) or a type name such as "string" or
// "*http.Request".
func evaluateToBeInstanceOf(
	assertion Definition,
	value any,
) (bool, string) {
	actual := reflect.TypeOf(value)
	if actual == nil {
		return false, "value is nil"
	}

	switch expected := assertion.Value.(type) {
	case reflect.Type:
		if actual == expected ||
			(expected.Kind() == reflect.Interface &&
				actual.Implements(expected)) {
			return true, fmt.Sprintf("value is a %s", actual)
		}
		return false, fmt.Sprintf(
			"%s is not a %s", actual, expected,
		)
	case string:
		if actual.String() == expected || actual.Name() == expected {
			return true, fmt.Sprintf("value is a %s", actual)
		}
		return false, fmt.Sprintf(
			"%s is not a %s", actual, expected,
		)
	default:
		return false, "expected value is not a type"
	}
}

func evaluateToBeTruthy(
	_ Definition,
	value any,
) (bool, string) {
	if isTruthy(value) {
		return true, fmt.Sprintf("%s is truthy", repr(value))
	}
	return false, fmt.Sprintf("%s is falsy", repr(value))
}

func evaluateToBeFalsy(
	_ Definition,
	value any,
) (bool, string) {
	if !isTruthy(value) {
		return true, fmt.Sprintf("%s is falsy", repr(value))
	}
	return false, fmt.Sprintf("%s is truthy", repr(value))
}

func evaluateToBeGreaterThan(
	assertion Definition,
	value any,
) (bool, string) {
	return compareNumbers(assertion, value, ">",
		func(c int) bool { return c > 0 })
}

func evaluateToBeGreaterThanOrEqual(
	assertion Definition,
	value any,
) (bool, string) {
	return compareNumbers(assertion, value, ">=",
		func(c int) bool { return c >= 0 })
}

func evaluateToBeLessThan(
	assertion Definition,
	value any,
) (bool, string) {
	return compareNumbers(assertion, value, "<",
		func(c int) bool { return c < 0 })
}

func evaluateToBeLessThanOrEqual(
	assertion Definition,
	value any,
) (bool, string) {
	return compareNumbers(assertion, value, "<=",
		func(c int) bool { return c <= 0 })
}

// evaluateToBeInViewport checks an element's viewport
// intersection ratio. Without an expected ratio any intersection
// passes; otherwise the ratio must reach the expected one.
func evaluateToBeInViewport(
	assertion Definition,
	value any,
) (bool, string) {
	ratio, ok := toFloat64(value)
	if !ok {
		return false, "value is not a viewport ratio"
	}

	passed := ratio > 0
	if assertion.Value != nil {
		expected, ok := toFloat64(assertion.Value)
		if !ok {
			return false, "expected ratio is not a number"
		}
		passed = passed && ratio > expected-viewportRatioTolerance
	}

	received := fmt.Sprintf("viewport ratio %g", ratio)
	if passed == assertion.Not {
		return passed, fmt.Sprintf("unexpected value %q", received)
	}
	return passed, received
}

func compareNumbers(
	assertion Definition,
	value any,
	op string,
	holds func(c int) bool,
) (bool, string) {
	actual, ok := toNumber(value)
	if !ok {
		return false, "value is not a number"
	}

	expected, ok := toNumber(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}

	if c, ok := compareNumber(actual, expected); ok && holds(c) {
		return true, fmt.Sprintf("%v %s %v", value, op, assertion.Value)
	}
	return false, fmt.Sprintf("%v is not %s %v", value, op, assertion.Value)
}

func stringPair(
	assertion Definition,
	value any,
) (str, expected, msg string, ok bool) {
	str, ok = asString(value)
	if !ok {
		return "", "", "value is not a string", false
	}
	expected, ok = asString(assertion.Value)
	if !ok {
		return "", "", "expected value is not a string", false
	}
	return str, expected, "", true
}
