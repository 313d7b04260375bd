package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field is the declarative rule set for one form field. Keys in Rules are
// dotted field paths matching the posted input names.
type Field struct {
	// Required rejects missing or blank values.
	Required     bool
	RequiredText string

	// MaxLength caps the value length in runes. Zero means unlimited.
	MaxLength     int
	MaxLengthText string

	// Pattern, when set, must match the whole value. Pattern checks are
	// skipped for blank optional values.
	Pattern     *regexp.Regexp
	PatternText string
}

// Rules maps dotted field paths to their rule sets.
// Example: {"penalty_reference": {Required: true, Pattern: refPattern}}.
type Rules map[string]Field

// check returns every violation for a single value. Values are never
// coerced: a numeric-looking string is validated as the string it is.
func (f Field) check(field, value string) []FieldError {
	var errs []FieldError

	blank := strings.TrimSpace(value) == ""
	if blank {
		if f.Required {
			errs = append(errs, FieldError{Field: field, Text: f.requiredText(field)})
		}
		return errs
	}

	if f.MaxLength > 0 && utf8.RuneCountInString(value) > f.MaxLength {
		errs = append(errs, FieldError{Field: field, Text: f.maxLengthText(field)})
	}
	if f.Pattern != nil && !f.Pattern.MatchString(value) {
		errs = append(errs, FieldError{Field: field, Text: f.patternText(field)})
	}
	return errs
}

func (f Field) requiredText(field string) string {
	if f.RequiredText != "" {
		return f.RequiredText
	}
	return fmt.Sprintf("%s is required", field)
}

func (f Field) maxLengthText(field string) string {
	if f.MaxLengthText != "" {
		return f.MaxLengthText
	}
	return fmt.Sprintf("%s must be %d characters or fewer", field, f.MaxLength)
}

func (f Field) patternText(field string) string {
	if f.PatternText != "" {
		return f.PatternText
	}
	return fmt.Sprintf("%s is not in a recognised format", field)
}
