package assertion

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"unicode/utf8"
)

// sameValue reports whether two values are the same in the
// sense of "to_be": numbers compare by value whatever their Go
// type, NaN equals NaN, nil-like values equal each other and
// everything else must share a comparable dynamic type.
func sameValue(expected, actual any) (same bool) {
	en, eok := toNumber(expected)
	an, aok := toNumber(actual)
	if eok && aok {
		if en.isNaN() && an.isNaN() {
			return true
		}
		c, ok := compareNumber(an, en)
		return ok && c == 0
	}

	if isNil(expected) || isNil(actual) {
		return isNil(expected) && isNil(actual)
	}

	et, at := reflect.TypeOf(expected), reflect.TypeOf(actual)
	if et != at || !et.Comparable() {
		return false
	}

	// Structs holding interface fields can still panic on ==.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return expected == actual
}

// repr renders a value for failure messages.
func repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case reflect.Type:
		return val.String()
	case *regexp.Regexp:
		return "/" + val.String() + "/"
	case error:
		return fmt.Sprintf("%q", val.Error())
	}
	return fmt.Sprintf("%#v", v)
}

// asString converts strings, byte slices and fmt.Stringers.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		if isNil(v) {
			return "", false
		}
		return s.String(), true
	}
	return "", false
}

// lengthOf returns the length of strings, slices, arrays, maps
// and channels.
func lengthOf(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	case reflect.Pointer:
		if !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
			return rv.Elem().Len(), true
		}
	}
	return 0, false
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.Interface,
		reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// isTruthy treats nil, false, zero, NaN and the empty string as
// falsy. Everything else, including empty collections, is truthy.
func isTruthy(v any) bool {
	if isNil(v) {
		return false
	}
	if f, ok := toFloat64(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	}
	return true
}

// toInt converts an any value to int.
func toInt(v any) (int, bool) {
	f, ok := toFloat64(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// toFloat64 converts any integer, unsigned or floating point
// value to float64.
func toFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

type numberKind int

const (
	signedNumber numberKind = iota
	unsignedNumber
	floatNumber
)

// number keeps an integer exact instead of rounding it through
// float64, which cannot represent every integer above 2^53.
type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func (n number) isNaN() bool {
	return n.kind == floatNumber && math.IsNaN(n.f)
}

func (n number) float() float64 {
	switch n.kind {
	case signedNumber:
		return float64(n.i)
	case unsignedNumber:
		return float64(n.u)
	}
	return n.f
}

func toNumber(v any) (number, bool) {
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return number{kind: signedNumber, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: unsignedNumber, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: floatNumber, f: rv.Float()}, true
	}
	return number{}, false
}

// compareNumber returns -1, 0 or 1 as a is less than, equal to or
// greater than b. Two integers compare exactly, mixed signs
// included; a float on either side compares as float64. ok is
// false when a NaN is involved.
func compareNumber(a, b number) (int, bool) {
	switch {
	case a.kind == signedNumber && b.kind == signedNumber:
		return order(a.i < b.i, a.i > b.i), true
	case a.kind == unsignedNumber && b.kind == unsignedNumber:
		return order(a.u < b.u, a.u > b.u), true
	case a.kind == signedNumber && b.kind == unsignedNumber:
		if a.i < 0 {
			return -1, true
		}
		return order(uint64(a.i) < b.u, uint64(a.i) > b.u), true
	case a.kind == unsignedNumber && b.kind == signedNumber:
		if b.i < 0 {
			return 1, true
		}
		return order(a.u < uint64(b.i), a.u > uint64(b.i)), true
	}
	af, bf := a.float(), b.float()
	if math.IsNaN(af) || math.IsNaN(bf) {
		return 0, false
	}
	return order(af < bf, af > bf), true
}

func order(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

// Repr renders a value the way matcher messages do: Go syntax
// for values, "nil" for nil and the type name for types.
func Repr(v any) string {
	return repr(v)
}
