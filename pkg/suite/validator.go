package suite

import (
	"fmt"

	"digital.vasic.expect/pkg/assertion"
)

// ValidationError represents a validation issue found in a suite
// file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("checks[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a decoded suite and returns all errors found.
func Validate(file *File) []ValidationError {
	var errors []ValidationError

	if file.Version == "" {
		errors = append(errors, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}
	if file.Defaults != nil {
		if err := file.Defaults.Validate(); err != nil {
			errors = append(errors, ValidationError{
				Field: "defaults", Message: err.Error(), Index: -1,
			})
		}
	}
	if len(file.Checks) == 0 {
		errors = append(errors, ValidationError{
			Field: "checks", Message: "at least one check is required", Index: -1,
		})
	}

	engine := assertion.Default()
	names := make(map[string]bool)
	for i, c := range file.Checks {
		switch {
		case c.Name == "":
			errors = append(errors, ValidationError{
				Field: "name", Message: "check name is required", Index: i,
			})
		case names[c.Name]:
			errors = append(errors, ValidationError{
				Field: "name", Message: fmt.Sprintf("duplicate name: %s", c.Name), Index: i,
			})
		default:
			names[c.Name] = true
		}

		if c.HTTP.URL == "" {
			errors = append(errors, ValidationError{
				Field: "http.url", Message: "url is required", Index: i,
			})
		}

		errors = append(errors, validateExpectations(engine, c, i)...)

		if c.Timeout != nil && *c.Timeout < 0 {
			errors = append(errors, ValidationError{
				Field: "timeout", Message: "timeout must not be negative", Index: i,
			})
		}
		for _, d := range c.Intervals {
			if d < 0 {
				errors = append(errors, ValidationError{
					Field: "intervals", Message: "intervals must not be negative", Index: i,
				})
				break
			}
		}
	}

	return errors
}

func validateExpectations(engine *assertion.DefaultEngine, c Check, index int) []ValidationError {
	given := 0
	for _, set := range []bool{c.Expect != "", len(c.All) > 0, len(c.Any) > 0} {
		if set {
			given++
		}
	}
	switch {
	case given == 0:
		return []ValidationError{{
			Field: "expect", Message: "expectation is required", Index: index,
		}}
	case given > 1:
		return []ValidationError{{
			Field: "expect", Message: "use only one of expect, all or any", Index: index,
		}}
	}

	field, expects := "expect", []string{c.Expect}
	if len(c.All) > 0 {
		field, expects = "all", c.All
	} else if len(c.Any) > 0 {
		field, expects = "any", c.Any
	}

	var errs []ValidationError
	for _, e := range expects {
		if def := assertion.ParseDefinition(e); !engine.HasEvaluator(def.Type) {
			errs = append(errs, ValidationError{
				Field: field, Message: fmt.Sprintf("unknown matcher: %s", def.Type), Index: index,
			})
		}
	}
	return errs
}
