/*
dashboard.go - Read-only monthly projections

PURPOSE:
  Derives lightweight statistics for a single employee or for all
  employees from already-computed payroll summaries. Strictly a
  projection: no rates or splits are recomputed here.

MODES:
  Personal:  one summary in, its hours/days/payment mirrored out.
  Aggregate: all employees' summaries for the same period, summed the
             same way as organization-wide payroll, plus a head count.

SEE ALSO:
  - aggregate.go: Produces the summaries this projects
*/
package payroll

// DashboardStats is a read-only projection of one or more payroll
// summaries plus a count. Never persisted.
type DashboardStats struct {
	// Month is the fixed display label for the period ("2024-01").
	Month string

	TotalWorkHours   Hours
	TotalWorkDays    int
	EstimatedPayment Money

	// EmployeeCount is the number of summaries included.
	// Zero in personal mode.
	EmployeeCount int
}

// ProjectPersonal projects a single employee's summary.
func ProjectPersonal(summary PayrollSummary) DashboardStats {
	return DashboardStats{
		Month:            summary.Period.Label(),
		TotalWorkHours:   summary.TotalHours(),
		TotalWorkDays:    summary.TotalWorkDays,
		EstimatedPayment: summary.TotalPayment,
	}
}

// ProjectAggregate projects all employees' summaries for one period.
func ProjectAggregate(summaries []PayrollSummary) DashboardStats {
	totals := Combine(summaries)
	return DashboardStats{
		Month:            totals.Period.Label(),
		TotalWorkHours:   totals.TotalHours(),
		TotalWorkDays:    totals.TotalWorkDays,
		EstimatedPayment: totals.TotalPayment,
		EmployeeCount:    totals.EmployeeCount,
	}
}
