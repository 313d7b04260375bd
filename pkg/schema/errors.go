package schema

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure. Both Field and
// Text are mandatory: every error must be attributable and explainable.
type FieldError struct {
	Field string
	Text  string
}

// NewFieldError constructs a FieldError, rejecting empty field or text.
func NewFieldError(field, text string) (FieldError, error) {
	if field == "" {
		return FieldError{}, errors.New("field error requires a field name")
	}
	if text == "" {
		return FieldError{}, fmt.Errorf("field error for %q requires text", field)
	}
	return FieldError{Field: field, Text: text}, nil
}

// Href derives the anchor fragment for "skip to error" links. Dotted paths
// become hyphenated anchors: "reasons.other.title" -> "#reasons-other-title".
func (e FieldError) Href() string {
	return "#" + strings.ReplaceAll(e.Field, ".", "-")
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Text)
}

// Result is an immutable collection of field errors produced by one
// validation pass.
type Result struct {
	errors []FieldError
}

// NewResult builds a Result from the given errors.
func NewResult(errs ...FieldError) Result {
	return Result{errors: errs}
}

// Valid reports whether the pass found no violations.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns the collected field errors in field order.
func (r Result) Errors() []FieldError {
	out := make([]FieldError, len(r.errors))
	copy(out, r.errors)
	return out
}

// ErrorForField returns the first error recorded for the given field.
func (r Result) ErrorForField(field string) (FieldError, bool) {
	for _, e := range r.errors {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

func (r Result) String() string {
	if r.Valid() {
		return "valid"
	}
	parts := make([]string, len(r.errors))
	for i, e := range r.errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
