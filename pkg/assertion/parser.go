package assertion

import (
	"strconv"
	"strings"
)

const negationPrefix = "not:"

// ParseAssertionString parses a compact matcher string of the
// form "type:value" into its components. If no colon is present
// the entire string is treated as the type and value is nil.
//
// Examples:
//
//	"to_match:/ok/" -> ("to_match", "/ok/")
//	"to_be_truthy"  -> ("to_be_truthy", nil)
//	"to_be:2"       -> ("to_be", "2")
func ParseAssertionString(
	s string,
) (assertionType string, value any) {
	parts := strings.SplitN(s, ":", 2)
	assertionType = parts[0]

	if len(parts) > 1 {
		value = parts[1]
	}

	return
}

// ParseDefinition builds a Definition from a compact matcher
// string. A leading "not:" negates the matcher and the value is
// coerced to an int, float, bool or nil when it reads as one;
// quoted values stay strings. For "to_be_close_to" a trailing
// ",N" sets the precision.
//
//	"not:to_be:pending"        -> to_be "pending", negated
//	"to_be_close_to:1.23,2"    -> to_be_close_to 1.23, precision 2
//	"to_be_greater_than:3"     -> to_be_greater_than 3
func ParseDefinition(s string) Definition {
	var d Definition
	if strings.HasPrefix(s, negationPrefix) {
		d.Not = true
		s = strings.TrimPrefix(s, negationPrefix)
	}

	assertionType, raw := ParseAssertionString(s)
	d.Type = assertionType

	str, ok := raw.(string)
	if !ok {
		return d
	}

	if assertionType == TypeToBeCloseTo {
		if i := strings.LastIndexByte(str, ','); i >= 0 {
			if p, err := strconv.Atoi(str[i+1:]); err == nil {
				d.Precision = &p
				str = str[:i]
			}
		}
	}

	switch assertionType {
	case TypeToMatch, TypeToStartWith, TypeToEndWith,
		TypeToBeInstanceOf:
		d.Value = str
	default:
		d.Value = coerce(str)
	}
	return d
}

func coerce(s string) any {
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	switch s {
	case "nil", "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
