package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// WORK DATE - Calendar day a shift belongs to
// =============================================================================

// WorkDate is a calendar date (day granularity, UTC). It is the key by
// which shifts are grouped for the daily overtime split, and the date the
// wage rate table is consulted with.
type WorkDate struct {
	Time time.Time
}

// Constructors
func NewWorkDate(year int, month time.Month, day int) WorkDate {
	return WorkDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) WorkDate {
	return NewWorkDate(t.Year(), t.Month(), t.Day())
}

// ParseWorkDate parses a YYYY-MM-DD date string.
func ParseWorkDate(s string) (WorkDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return WorkDate{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// Comparison
func (d WorkDate) Before(other WorkDate) bool        { return d.normalize().Before(other.normalize()) }
func (d WorkDate) After(other WorkDate) bool         { return d.normalize().After(other.normalize()) }
func (d WorkDate) Equal(other WorkDate) bool         { return d.normalize().Equal(other.normalize()) }
func (d WorkDate) BeforeOrEqual(other WorkDate) bool { return d.Before(other) || d.Equal(other) }
func (d WorkDate) AfterOrEqual(other WorkDate) bool  { return d.After(other) || d.Equal(other) }

func (d WorkDate) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d WorkDate) AddDays(n int) WorkDate   { return WorkDate{Time: d.Time.AddDate(0, 0, n)} }
func (d WorkDate) AddMonths(n int) WorkDate { return WorkDate{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d WorkDate) Year() int         { return d.Time.Year() }
func (d WorkDate) Month() time.Month { return d.Time.Month() }
func (d WorkDate) Day() int          { return d.Time.Day() }
func (d WorkDate) IsZero() bool      { return d.Time.IsZero() }

func (d WorkDate) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// PERIOD - Inclusive billing period boundary
// =============================================================================

// Period is the [Start, End] date range a payroll run covers, inclusive
// on both ends. Aggregation is ALWAYS period-scoped.
type Period struct {
	Start WorkDate
	End   WorkDate
}

// NewPeriod validates that end is not before start.
func NewPeriod(start, end WorkDate) (Period, error) {
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// MonthPeriod returns the full-month billing period, the unit the batch
// runner and dashboard operate on.
func MonthPeriod(year int, month time.Month) Period {
	start := NewWorkDate(year, month, 1)
	end := WorkDate{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
	return Period{Start: start, End: end}
}

// PreviousMonth returns the full month before this period's start month.
// The batch runner walks months with this.
func (p Period) PreviousMonth() Period {
	prev := p.Start.AddMonths(-1)
	return MonthPeriod(prev.Year(), prev.Month())
}

// Contains returns true if the date is within [Start, End].
func (p Period) Contains(d WorkDate) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Label is the display form used by the dashboard ("2024-01").
func (p Period) Label() string { return p.Start.Time.Format("2006-01") }

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
