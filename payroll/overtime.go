/*
overtime.go - Daily regular/overtime split

PURPOSE:
  Splits accumulated worked time into regular and overtime components
  against a per-day threshold policy.

POLICY MODEL:
  The policy is a single scalar daily threshold: for each calendar day,
  hours up to the threshold are regular, the remainder is overtime.
  Weekly/monthly thresholds are out of scope. Multiple records on the
  same day are summed BEFORE the threshold applies, not evaluated
  independently (the aggregator does the grouping).

PREMIUM:
  No overtime premium is defined by the available wage data; overtime is
  priced at the base rate. OvertimeMultiplier is the configurable
  extension point: the zero value means base rate.

SEE ALSO:
  - aggregate.go: Groups records per day and prices the split
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// OVERTIME POLICY - Supplied by configuration, never persisted by the engine
// =============================================================================

// OvertimePolicy is the per-computation threshold configuration.
type OvertimePolicy struct {
	// DailyThreshold is the hour boundary beyond which a day's worked
	// time is classified as overtime.
	DailyThreshold Hours

	// OvertimeMultiplier scales the base rate for overtime payment.
	// The zero value means overtime is paid at the base rate; a premium
	// (e.g., 1.25) is a policy decision, not an engine constant.
	OvertimeMultiplier decimal.Decimal
}

// Multiplier returns the effective overtime rate multiplier.
func (p OvertimePolicy) Multiplier() decimal.Decimal {
	if p.OvertimeMultiplier.IsZero() {
		return decimal.NewFromInt(1)
	}
	return p.OvertimeMultiplier
}

// =============================================================================
// DAILY SPLIT
// =============================================================================

// DayHours is one calendar day's accumulated worked time.
type DayHours struct {
	Date  WorkDate
	Total Hours
}

// DaySplit is one day's regular/overtime decomposition.
// INVARIANT: Regular + Overtime == Total, and neither is negative.
type DaySplit struct {
	Date     WorkDate
	Regular  Hours
	Overtime Hours
}

// SplitDay splits a single day's total against the threshold.
func SplitDay(total Hours, policy OvertimePolicy) (regular, overtime Hours) {
	if total.IsNegative() {
		return Hours{Value: decimal.Zero}, Hours{Value: decimal.Zero}
	}
	regular = total.Min(policy.DailyThreshold)
	overtime = total.Sub(regular)
	return regular, overtime
}

// SplitOvertime splits an ordered sequence of daily totals day by day.
// The input order is preserved in the output.
func SplitOvertime(days []DayHours, policy OvertimePolicy) []DaySplit {
	splits := make([]DaySplit, len(days))
	for i, d := range days {
		regular, overtime := SplitDay(d.Total, policy)
		splits[i] = DaySplit{Date: d.Date, Regular: regular, Overtime: overtime}
	}
	return splits
}
