/*
aggregate.go - Period aggregation into PayrollSummary

PURPOSE:
  Folds individual work records for an employee over a billing period
  into a PayrollSummary, and folds employee summaries into an
  organization-wide total.

ALGORITHM:
  1. Filter records to the employee and the inclusive period
  2. Resolve each record's duration (interval.go) and rate (rates.go)
  3. Group by calendar day, split against the daily threshold (overtime.go)
  4. Price the split: regular hours at the record's rate, overtime hours
     at the record's rate times the policy multiplier
  5. Count distinct work days (not record count) and sum period totals

ATOMICITY:
  If ANY contributing record fails interval or rate resolution, the whole
  period's aggregation fails with PartialDataError carrying every failure.
  Payroll must never understate pay without visibility.

MIXED-RATE DAYS:
  A day can hold records of different work types, but the threshold
  applies to the day's total. Regular capacity is consumed record by
  record in start-time order at each record's own rate; hours past the
  threshold are overtime priced at the rate of the record they fall in.
  This keeps payment conservation exact and the result deterministic.

DETERMINISM:
  Records are sorted by (work date, start, id) before folding, so
  identical inputs always produce identical output regardless of the
  provider's ordering.

SEE ALSO:
  - dashboard.go: Projects summaries into display statistics
*/
package payroll

import "sort"

// =============================================================================
// PAYROLL SUMMARY - Derived, never hand-edited
// =============================================================================

// PayrollSummary is the aggregated pay result for one employee over one
// period. It is regenerated deterministically from WorkRecords +
// WageRates + OvertimePolicy and must never be persisted as
// independently-editable state.
type PayrollSummary struct {
	EmployeeID EmployeeID
	Period     Period

	TotalWorkDays int
	RegularHours  Hours
	OvertimeHours Hours

	RegularPayment  Money
	OvertimePayment Money
	TotalPayment    Money

	// Contributing records, ordered by (work date, start, id).
	Records []WorkRecord
}

// TotalHours returns the period's total worked hours.
func (s PayrollSummary) TotalHours() Hours {
	return s.RegularHours.Add(s.OvertimeHours)
}

// =============================================================================
// AGGREGATION
// =============================================================================

// AggregateInput carries one employee-period computation's immutable inputs.
type AggregateInput struct {
	EmployeeID EmployeeID
	Period     Period

	// All candidate records; the aggregator filters by employee and period.
	Records []WorkRecord

	// Unsorted rate rows; the table does the selecting.
	Rates *RateTable

	Policy OvertimePolicy
}

// resolvedRecord pairs a record with its resolved duration and rate.
type resolvedRecord struct {
	record WorkRecord
	hours  Hours
	rate   Money
}

// Aggregate computes the payroll summary for one employee and period.
func Aggregate(in AggregateInput) (PayrollSummary, error) {
	records := filterRecords(in.Records, in.EmployeeID, in.Period)
	sortRecords(records)

	// Resolve everything up front; aggregation is all-or-nothing.
	resolved := make([]resolvedRecord, 0, len(records))
	var failures []RecordFailure
	for _, rec := range records {
		hours, err := ResolveInterval(rec.WorkDate, rec.Start, rec.End)
		if err != nil {
			failures = append(failures, RecordFailure{RecordID: rec.ID, Err: err})
			continue
		}
		rate, err := in.Rates.Resolve(rec.WorkTypeID, rec.SubCategory, rec.WorkDate)
		if err != nil {
			failures = append(failures, RecordFailure{RecordID: rec.ID, Err: err})
			continue
		}
		resolved = append(resolved, resolvedRecord{record: rec, hours: hours, rate: rate.HourlyAmount})
	}
	if len(failures) > 0 {
		return PayrollSummary{}, &PartialDataError{EmployeeID: in.EmployeeID, Period: in.Period, Failures: failures}
	}

	summary := PayrollSummary{
		EmployeeID: in.EmployeeID,
		Period:     in.Period,
		Records:    records,
	}

	regularHours := NewHours(0)
	overtimeHours := NewHours(0)
	regularPay := NewMoney(0)
	overtimePay := NewMoney(0)
	multiplier := in.Policy.Multiplier()

	for _, day := range groupByDay(resolved) {
		total := NewHours(0)
		for _, rr := range day {
			total = total.Add(rr.hours)
		}
		regular, overtime := SplitDay(total, in.Policy)
		regularHours = regularHours.Add(regular)
		overtimeHours = overtimeHours.Add(overtime)
		summary.TotalWorkDays++

		// Consume regular capacity in chronological order; the excess in
		// each record is overtime at that record's rate.
		remaining := regular
		for _, rr := range day {
			recRegular := rr.hours.Min(remaining)
			recOvertime := rr.hours.Sub(recRegular)
			remaining = remaining.Sub(recRegular)

			regularPay = regularPay.Add(rr.rate.MulHours(recRegular))
			overtimePay = overtimePay.Add(rr.rate.MulHours(recOvertime).Mul(multiplier))
		}
	}

	summary.RegularHours = regularHours.Round2()
	summary.OvertimeHours = overtimeHours.Round2()
	summary.RegularPayment = regularPay.Round2()
	summary.OvertimePayment = overtimePay.Round2()
	summary.TotalPayment = summary.RegularPayment.Add(summary.OvertimePayment)
	return summary, nil
}

func filterRecords(records []WorkRecord, employeeID EmployeeID, period Period) []WorkRecord {
	var out []WorkRecord
	for _, rec := range records {
		if rec.EmployeeID == employeeID && period.Contains(rec.WorkDate) {
			out = append(out, rec)
		}
	}
	return out
}

func sortRecords(records []WorkRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].WorkDate.Equal(records[j].WorkDate) {
			return records[i].WorkDate.Before(records[j].WorkDate)
		}
		if !records[i].Start.Equal(records[j].Start) {
			return records[i].Start.Before(records[j].Start)
		}
		return records[i].ID < records[j].ID
	})
}

// groupByDay groups sorted resolved records into per-day runs,
// preserving chronological order within each day.
func groupByDay(resolved []resolvedRecord) [][]resolvedRecord {
	var days [][]resolvedRecord
	for _, rr := range resolved {
		n := len(days)
		if n > 0 && days[n-1][0].record.WorkDate.Equal(rr.record.WorkDate) {
			days[n-1] = append(days[n-1], rr)
			continue
		}
		days = append(days, []resolvedRecord{rr})
	}
	return days
}

// =============================================================================
// ORGANIZATION-WIDE TOTALS
// =============================================================================

// PayrollTotals is the element-wise sum of per-employee summaries for
// one period. Day counts sum across employees: a day worked by two
// employees counts twice, since days are employee-scoped.
type PayrollTotals struct {
	Period        Period
	EmployeeCount int

	TotalWorkDays int
	RegularHours  Hours
	OvertimeHours Hours

	RegularPayment  Money
	OvertimePayment Money
	TotalPayment    Money
}

// TotalHours returns the organization's total worked hours.
func (t PayrollTotals) TotalHours() Hours {
	return t.RegularHours.Add(t.OvertimeHours)
}

// Combine folds per-employee summaries into organization-wide totals.
// Summation is order-independent: any permutation yields the same result.
func Combine(summaries []PayrollSummary) PayrollTotals {
	totals := PayrollTotals{
		EmployeeCount:   len(summaries),
		RegularHours:    NewHours(0),
		OvertimeHours:   NewHours(0),
		RegularPayment:  NewMoney(0),
		OvertimePayment: NewMoney(0),
		TotalPayment:    NewMoney(0),
	}
	for i, s := range summaries {
		if i == 0 {
			totals.Period = s.Period
		}
		totals.TotalWorkDays += s.TotalWorkDays
		totals.RegularHours = totals.RegularHours.Add(s.RegularHours)
		totals.OvertimeHours = totals.OvertimeHours.Add(s.OvertimeHours)
		totals.RegularPayment = totals.RegularPayment.Add(s.RegularPayment)
		totals.OvertimePayment = totals.OvertimePayment.Add(s.OvertimePayment)
		totals.TotalPayment = totals.TotalPayment.Add(s.TotalPayment)
	}
	return totals
}
