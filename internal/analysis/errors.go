// Package analysis defines the error taxonomy shared by the calculation
// packages. Validation and lookup failures always propagate to the caller;
// degenerate outcomes (negative cashflow, TDSR over limit, zero-interest
// loans) are values, never errors.
package analysis

import "fmt"

// ValidationError reports an input that violates a calculation precondition,
// such as a negative price or a malformed tier schedule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid constructs a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// LookupError reports a key missing from a rate schedule or an empty
// comparable set. Lookups never fall back to a default rate: a guessed
// rate would misstate a real tax liability.
type LookupError struct {
	Kind string // e.g. "absd rate", "ltv limit"
	Key  string
}

func (e *LookupError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("no %s available", e.Kind)
	}
	return fmt.Sprintf("no %s for %q", e.Kind, e.Key)
}

// NotFound constructs a LookupError.
func NotFound(kind, key string) error {
	return &LookupError{Kind: kind, Key: key}
}
