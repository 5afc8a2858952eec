package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required contract field is absent.
	ErrMissingField = errors.New("all fields must be filled")

	// ErrNotifySkipped marks a notification that was intentionally not sent,
	// for example when no relay is configured for the recipient's domain.
	// Skips are logged and never retried.
	ErrNotifySkipped = errors.New("payslip notification skipped")
)

// ValidationError describes a contract field that failed a business rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
