/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The service layer maps these to HTTP statuses; the engine itself
  never swallows or zero-defaults a failure, because payroll
  correctness requires visibility into every exclusion.

ERROR CATEGORIES:
  1. Interval errors - Malformed or implausible shift timestamps
  2. Rate errors     - Missing wage configuration for a date/type combination
  3. Aggregate errors - Period aggregation could not complete atomically

USAGE:
  Callers classify with errors.Is / errors.As:

    var partial *payroll.PartialDataError
    if errors.As(err, &partial) {
        for _, f := range partial.Failures { ... }
    }

SEE ALSO:
  - interval.go: Returns InvalidIntervalError
  - rates.go: Returns NoApplicableRateError
  - aggregate.go: Returns PartialDataError
*/
package payroll

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when a shift's timestamps are malformed
	// or implausible (zero length, or longer than 24h after the overnight
	// adjustment). This guards against data entry errors, not business rules.
	ErrInvalidInterval = errors.New("invalid work interval")

	// ErrNoApplicableRate is returned when no wage rate row satisfies the
	// work-type/sub-category/date constraint. Callers must refuse to
	// aggregate the record rather than silently defaulting to zero.
	ErrNoApplicableRate = errors.New("no applicable wage rate")

	// ErrPartialData is returned when period aggregation could not complete
	// for every contributing record. Aggregation is atomic: payroll must
	// never understate pay without visibility.
	ErrPartialData = errors.New("aggregation incomplete")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrWorkTypeNotFound is returned when a referenced work type doesn't exist.
	ErrWorkTypeNotFound = errors.New("work type not found")

	// ErrRecordNotFound is returned when a referenced work record doesn't exist.
	ErrRecordNotFound = errors.New("work record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidIntervalError describes a shift whose duration failed the
// sanity checks after overnight normalization.
type InvalidIntervalError struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration // After overnight adjustment
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid work interval %s -> %s (adjusted duration %v)",
		e.Start.Format("2006-01-02 15:04"), e.End.Format("2006-01-02 15:04"), e.Duration)
}

func (e *InvalidIntervalError) Unwrap() error { return ErrInvalidInterval }

// NoApplicableRateError names the rate lookup that found no row.
type NoApplicableRateError struct {
	WorkTypeID  WorkTypeID
	SubCategory SubCategory
	AsOf        WorkDate
}

func (e *NoApplicableRateError) Error() string {
	sub := string(e.SubCategory)
	if e.SubCategory.IsAny() {
		sub = "-"
	}
	return fmt.Sprintf("no applicable wage rate for work type %q (sub-category %q) as of %s",
		e.WorkTypeID, sub, e.AsOf)
}

func (e *NoApplicableRateError) Unwrap() error { return ErrNoApplicableRate }

// RecordFailure ties a resolution failure to the offending record.
type RecordFailure struct {
	RecordID RecordID
	Err      error
}

func (f RecordFailure) Error() string {
	return fmt.Sprintf("record %s: %v", f.RecordID, f.Err)
}

func (f RecordFailure) Unwrap() error { return f.Err }

// PartialDataError reports every record that prevented a period's
// aggregation from completing.
type PartialDataError struct {
	EmployeeID EmployeeID
	Period     Period
	Failures   []RecordFailure
}

func (e *PartialDataError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("aggregation incomplete for employee %s in %s: %s",
		e.EmployeeID, e.Period, strings.Join(msgs, "; "))
}

func (e *PartialDataError) Unwrap() error { return ErrPartialData }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid input or
// missing configuration rather than an engine defect.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrNoApplicableRate) ||
		errors.Is(err, ErrPartialData) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing master record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrWorkTypeNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}
