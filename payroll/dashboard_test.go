package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// DASHBOARD PROJECTION TESTS
// =============================================================================

func TestProjectPersonal_MirrorsSummary(t *testing.T) {
	// GIVEN: A computed summary for one employee
	// WHEN: Projecting the personal dashboard
	// THEN: Hours, days, and payment mirror the summary exactly;
	//       head count stays zero in personal mode

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     payroll.MonthPeriod(2024, time.January),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 17, "regular-work", ""),
			record("wr-2", 7, 9, 19, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	stats := payroll.ProjectPersonal(summary)
	assert.Equal(t, "2024-01", stats.Month)
	assert.Equal(t, summary.TotalWorkDays, stats.TotalWorkDays)
	assert.Equal(t, summary.TotalHours().String(), stats.TotalWorkHours.String())
	assert.Equal(t, summary.TotalPayment.String(), stats.EstimatedPayment.String())
	assert.Equal(t, 0, stats.EmployeeCount)
}

func TestProjectAggregate_SumsAcrossEmployees(t *testing.T) {
	// GIVEN: Summaries for two employees in the same month
	// WHEN: Projecting the aggregate dashboard
	// THEN: Sums match the organization-wide combination plus a head count

	base := payroll.AggregateInput{
		Period: payroll.MonthPeriod(2024, time.January),
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	}

	base.EmployeeID = "emp-001"
	base.Records = []payroll.WorkRecord{record("wr-1", 5, 9, 17, "regular-work", "")}
	a, err := payroll.Aggregate(base)
	require.NoError(t, err)

	base.EmployeeID = "emp-002"
	base.Records = []payroll.WorkRecord{
		payroll.NewWorkRecord("wr-2", "emp-002", jan(6),
			at(6, 9, 0), at(6, 19, 0), "regular-work", "", ""),
	}
	b, err := payroll.Aggregate(base)
	require.NoError(t, err)

	stats := payroll.ProjectAggregate([]payroll.PayrollSummary{a, b})
	assert.Equal(t, "2024-01", stats.Month)
	assert.Equal(t, 2, stats.EmployeeCount)
	assert.Equal(t, 2, stats.TotalWorkDays)
	// 8h + 10h worked; 8000 + (8000 + 2000) paid
	assert.Equal(t, "18.00", stats.TotalWorkHours.String())
	assert.Equal(t, "18000.00", stats.EstimatedPayment.String())
}

func TestProjectAggregate_NoSummaries(t *testing.T) {
	// GIVEN: An empty organization
	// WHEN: Projecting the aggregate dashboard
	// THEN: Zeroes, no panic

	stats := payroll.ProjectAggregate(nil)
	assert.Equal(t, 0, stats.EmployeeCount)
	assert.True(t, stats.EstimatedPayment.IsZero())
}
