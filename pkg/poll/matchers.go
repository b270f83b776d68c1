package poll

import (
	"reflect"

	"digital.vasic.expect/pkg/assertion"
)

// ToBe waits for a value identical to expected. Numbers
// compare by value across Go types.
func (h *Handle[T]) ToBe(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToBe,
		Value: expected,
	})
}

// NotToBe is the negation of ToBe.
func (h *Handle[T]) NotToBe(expected any) error {
	return h.Not().ToBe(expected)
}

// ToEqual waits for a value deeply equal to expected.
func (h *Handle[T]) ToEqual(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToEqual,
		Value: expected,
	})
}

// NotToEqual is the negation of ToEqual.
func (h *Handle[T]) NotToEqual(expected any) error {
	return h.Not().ToEqual(expected)
}

// ToMatch waits for a string containing pattern. A
// "/pattern/flags" string or *regexp.Regexp is matched as a
// regular expression. A string counts as such a literal only if
// its flags are from "ims" and every inner slash is escaped, so a
// path like "/usr/bin/sim" stays a substring.
func (h *Handle[T]) ToMatch(pattern any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToMatch,
		Value: pattern,
	})
}

// NotToMatch is the negation of ToMatch.
func (h *Handle[T]) NotToMatch(pattern any) error {
	return h.Not().ToMatch(pattern)
}

// ToStartWith waits for a string beginning with prefix.
func (h *Handle[T]) ToStartWith(prefix string) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToStartWith,
		Value: prefix,
	})
}

// NotToStartWith is the negation of ToStartWith.
func (h *Handle[T]) NotToStartWith(prefix string) error {
	return h.Not().ToStartWith(prefix)
}

// ToEndWith waits for a string ending with suffix.
func (h *Handle[T]) ToEndWith(suffix string) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToEndWith,
		Value: suffix,
	})
}

// NotToEndWith is the negation of ToEndWith.
func (h *Handle[T]) NotToEndWith(suffix string) error {
	return h.Not().ToEndWith(suffix)
}

// ToContain waits for a substring, slice element or map key.
func (h *Handle[T]) ToContain(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToContain,
		Value: expected,
	})
}

// NotToContain is the negation of ToContain.
func (h *Handle[T]) NotToContain(expected any) error {
	return h.Not().ToContain(expected)
}

// ToHaveLength waits for a string with length characters, or a
// collection or map with length elements.
func (h *Handle[T]) ToHaveLength(length int) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToHaveLength,
		Value: length,
	})
}

// NotToHaveLength is the negation of ToHaveLength.
func (h *Handle[T]) NotToHaveLength(length int) error {
	return h.Not().ToHaveLength(length)
}

// ToBeNone waits for nil, including typed nil pointers.
func (h *Handle[T]) ToBeNone() error {
	return h.Should(assertion.Definition{Type: assertion.TypeToBeNone})
}

// NotToBeNone is the negation of ToBeNone.
func (h *Handle[T]) NotToBeNone() error {
	return h.Not().ToBeNone()
}

// ToBeNull is an alias of ToBeNone.
func (h *Handle[T]) ToBeNull() error {
	return h.Should(assertion.Definition{Type: assertion.TypeToBeNull})
}

// NotToBeNull is the negation of ToBeNull.
func (h *Handle[T]) NotToBeNull() error {
	return h.Not().ToBeNull()
}

// ToBeDefined waits for anything but an untyped nil.
func (h *Handle[T]) ToBeDefined() error {
	return h.Should(assertion.Definition{Type: assertion.TypeToBeDefined})
}

// NotToBeDefined is the negation of ToBeDefined.
func (h *Handle[T]) NotToBeDefined() error {
	return h.Not().ToBeDefined()
}

// ToBeNaN waits for a floating point NaN.
func (h *Handle[T]) ToBeNaN() error {
	return h.Should(assertion.Definition{Type: assertion.TypeToBeNaN})
}

// NotToBeNaN is the negation of ToBeNaN.
func (h *Handle[T]) NotToBeNaN() error {
	return h.Not().ToBeNaN()
}

// ToBeInstanceOf waits for a value of type t. Interface
// types match by implementation.
func (h *Handle[T]) ToBeInstanceOf(t reflect.Type) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToBeInstanceOf,
		Value: t,
	})
}

// NotToBeInstanceOf is the negation of ToBeInstanceOf.
func (h *Handle[T]) NotToBeInstanceOf(t reflect.Type) error {
	return h.Not().ToBeInstanceOf(t)
}

// ToBeTruthy waits for a value other than nil, false, zero, NaN
// or the empty string.
func (h *Handle[T]) ToBeTruthy() error {
	return h.Should(assertion.Definition{Type: assertion.TypeToBeTruthy})
}

// NotToBeTruthy is the negation of ToBeTruthy.
func (h *Handle[T]) NotToBeTruthy() error {
	return h.Not().ToBeTruthy()
}

// ToBeFalsy waits for nil, false, zero, NaN or "".
func (h *Handle[T]) ToBeFalsy() error {
	return h.Should(assertion.Definition{Type: assertion.TypeToBeFalsy})
}

// NotToBeFalsy is the negation of ToBeFalsy.
func (h *Handle[T]) NotToBeFalsy() error {
	return h.Not().ToBeFalsy()
}

// ToBeGreaterThan waits for a number above expected.
func (h *Handle[T]) ToBeGreaterThan(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToBeGreaterThan,
		Value: expected,
	})
}

// NotToBeGreaterThan is the negation of ToBeGreaterThan.
func (h *Handle[T]) NotToBeGreaterThan(expected any) error {
	return h.Not().ToBeGreaterThan(expected)
}

// ToBeGreaterThanOrEqual waits for a number at or above expected.
func (h *Handle[T]) ToBeGreaterThanOrEqual(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToBeGreaterThanOrEqual,
		Value: expected,
	})
}

// NotToBeGreaterThanOrEqual is the negation of ToBeGreaterThanOrEqual.
func (h *Handle[T]) NotToBeGreaterThanOrEqual(expected any) error {
	return h.Not().ToBeGreaterThanOrEqual(expected)
}

// ToBeLessThan waits for a number below expected.
func (h *Handle[T]) ToBeLessThan(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToBeLessThan,
		Value: expected,
	})
}

// NotToBeLessThan is the negation of ToBeLessThan.
func (h *Handle[T]) NotToBeLessThan(expected any) error {
	return h.Not().ToBeLessThan(expected)
}

// ToBeLessThanOrEqual waits for a number at or below expected.
func (h *Handle[T]) ToBeLessThanOrEqual(expected any) error {
	return h.Should(assertion.Definition{
		Type:  assertion.TypeToBeLessThanOrEqual,
		Value: expected,
	})
}

// NotToBeLessThanOrEqual is the negation of ToBeLessThanOrEqual.
func (h *Handle[T]) NotToBeLessThanOrEqual(expected any) error {
	return h.Not().ToBeLessThanOrEqual(expected)
}

// ToBeCloseTo waits for a number within half a unit of the
// given decimal precision of expected. Pass a negative precision
// for the default of two digits.
func (h *Handle[T]) ToBeCloseTo(expected float64, precision int) error {
	return h.Should(closeTo(expected, precision))
}

// NotToBeCloseTo is the negation of ToBeCloseTo.
func (h *Handle[T]) NotToBeCloseTo(expected float64, precision int) error {
	return h.Not().ToBeCloseTo(expected, precision)
}

func closeTo(expected float64, precision int) assertion.Definition {
	def := assertion.Definition{
		Type:  assertion.TypeToBeCloseTo,
		Value: expected,
	}
	if precision >= 0 {
		def.Precision = &precision
	}
	return def
}

// ToSatisfyAll waits for a value that passes every matcher.
func (h *Handle[T]) ToSatisfyAll(defs ...assertion.Definition) error {
	return h.Should(assertion.AllOf(defs...))
}

// NotToSatisfyAll is the negation of ToSatisfyAll.
func (h *Handle[T]) NotToSatisfyAll(defs ...assertion.Definition) error {
	return h.Not().ToSatisfyAll(defs...)
}

// ToSatisfyAny waits for a value that passes at least one
// matcher.
func (h *Handle[T]) ToSatisfyAny(defs ...assertion.Definition) error {
	return h.Should(assertion.AnyOf(defs...))
}

// NotToSatisfyAny is the negation of ToSatisfyAny.
func (h *Handle[T]) NotToSatisfyAny(defs ...assertion.Definition) error {
	return h.Not().ToSatisfyAny(defs...)
}
