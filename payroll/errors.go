/*
errors.go - Centralized error types for the payroll domain

PURPOSE:
  All domain error types in one place for consistency and discoverability.
  The api package maps these onto HTTP status codes.

ERROR CATEGORIES:
  1. Not found     - referenced employee id does not exist
  2. Invalid input - bad date range or invalid field values
  3. Persistence   - storage-layer failures, propagated as-is

Out-of-range working-day numbers are NOT an error: they are silently
filtered during normalization (see workdays.go).
*/
package payroll

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee id does
	// not exist. Request-level failure, never fatal to the service.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidRange is returned when a pay computation is requested with
	// endDate before startDate. The request performs no side effects.
	ErrInvalidRange = errors.New("invalid range: end date before start date")

	// ErrInvalidEmployee is returned when employee fields fail validation
	// (empty name, negative daily rate).
	ErrInvalidEmployee = errors.New("invalid employee")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidRangeError reports the offending bounds of a pay computation.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: end date %s before start date %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// FieldError reports a single invalid employee field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid employee: %s %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrInvalidEmployee }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing employee.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidEmployee)
}

// ValidateEmployee checks the scalar field invariants: non-empty names and
// a non-negative daily rate.
func ValidateEmployee(firstName, lastName string, dailyRate Money) error {
	if firstName == "" {
		return &FieldError{Field: "first_name", Message: "must not be empty"}
	}
	if lastName == "" {
		return &FieldError{Field: "last_name", Message: "must not be empty"}
	}
	if dailyRate.IsNegative() {
		return &FieldError{Field: "daily_rate", Message: "must not be negative"}
	}
	return nil
}
