package schema

import (
	"errors"
	"fmt"
	"sort"
)

// Validator runs a declarative rule set over submitted form values.
type Validator struct {
	rules Rules
}

// NewValidator fails fast on a missing rule set: a misconfigured controller
// must surface at wiring time, not on its first request.
func NewValidator(rules Rules) (*Validator, error) {
	if len(rules) == 0 {
		return nil, errors.New("validator requires a non-empty rule set")
	}
	return &Validator{rules: rules}, nil
}

// MustValidator is NewValidator for wiring-time use; it panics on error.
func MustValidator(rules Rules) *Validator {
	v, err := NewValidator(rules)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return v
}

// Validate collects every violation in one pass. There is no early exit and
// no type coercion; the result lists errors in field order so rendered error
// summaries are stable.
func (v *Validator) Validate(values map[string]string) Result {
	fields := make([]string, 0, len(v.rules))
	for field := range v.rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var errs []FieldError
	for _, field := range fields {
		errs = append(errs, v.rules[field].check(field, values[field])...)
	}
	return NewResult(errs...)
}
