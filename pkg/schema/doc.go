// Package schema provides declarative form validation for wizard steps.
//
// A Validator wraps a Rules map (dotted field path -> Field rules) and
// produces a Result holding every violation found in a single pass. Values
// are treated strictly as the strings the browser posted; nothing is
// coerced. FieldError carries the anchor fragment used by "skip to error"
// links in the rendered page.
package schema
