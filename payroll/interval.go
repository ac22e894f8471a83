/*
interval.go - Shift duration resolution

PURPOSE:
  Normalizes a raw start/end timestamp pair into a duration in hours,
  correctly handling shifts that cross midnight.

OVERNIGHT RULE:
  If the end timestamp is literally on or before the start timestamp,
  the end is treated as belonging to the next calendar day (+24h) before
  the difference is computed. A night shift entered as 22:00 -> 06:00
  resolves to 8.00 hours without the caller pre-adjusting the date.

SANITY CEILING:
  Durations over 24h (or zero/negative after adjustment) are data entry
  errors, not business outcomes, and are rejected with InvalidIntervalError.

SEE ALSO:
  - aggregate.go: Resolves every contributing record through here
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const maxShiftDuration = 24 * time.Hour

// ResolveInterval returns the worked duration of a shift in hours,
// fractional to two decimal places.
//
// The work date is the calendar date the shift belongs to: the start
// date, even when the shift ends the next day.
func ResolveInterval(workDate WorkDate, start, end time.Time) (Hours, error) {
	// Overnight shift: end entered as same-or-earlier clock time means
	// the shift runs into the next calendar day.
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	d := end.Sub(start)
	if d <= 0 || d > maxShiftDuration {
		return Hours{}, &InvalidIntervalError{Start: start, End: end, Duration: d}
	}

	seconds := decimal.NewFromInt(int64(d / time.Second))
	hours := seconds.Div(decimal.NewFromInt(3600)).Round(2)
	return HoursFromDecimal(hours), nil
}
