package payroll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func record(id payroll.RecordID, day, startHour, endHour int, workType payroll.WorkTypeID, sub payroll.SubCategory) payroll.WorkRecord {
	return payroll.NewWorkRecord(id, "emp-001", jan(day),
		at(day, startHour, 0), at(day, endHour, 0), workType, sub, "")
}

func flatRateTable() *payroll.RateTable {
	return payroll.NewRateTable(
		rate("r1", "regular-work", payroll.SubCategoryAny, 1000, jan(1)),
	)
}

func january() payroll.Period {
	return payroll.MonthPeriod(2024, time.January)
}

// =============================================================================
// PERIOD AGGREGATION TESTS
// =============================================================================

func TestAggregate_ThreeDayWeekWithOneOvertimeDay(t *testing.T) {
	// GIVEN: Three days of 8h, 2h, and 10h at 1000/h with an 8h threshold
	// WHEN: Aggregating January
	// THEN: 18.00 regular + 2.00 overtime over 3 work days;
	//       18000 regular + 2000 overtime = 20000 total

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 17, "regular-work", ""),
			record("wr-2", 6, 9, 11, "regular-work", ""),
			record("wr-3", 7, 9, 19, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalWorkDays)
	assert.Equal(t, "18.00", summary.RegularHours.String())
	assert.Equal(t, "2.00", summary.OvertimeHours.String())
	assert.Equal(t, "18000.00", summary.RegularPayment.String())
	assert.Equal(t, "2000.00", summary.OvertimePayment.String())
	assert.Equal(t, "20000.00", summary.TotalPayment.String())
}

func TestAggregate_TotalIsSumOfRoundedComponents(t *testing.T) {
	// GIVEN: Any computed summary
	// WHEN: Reading the payment fields
	// THEN: TotalPayment equals RegularPayment + OvertimePayment exactly

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 19, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)
	assert.True(t, summary.TotalPayment.Equal(summary.RegularPayment.Add(summary.OvertimePayment)))
}

func TestAggregate_NightShiftCountsOnStartDate(t *testing.T) {
	// GIVEN: A 22:00 -> 06:00 night shift logged on Jan 15
	// WHEN: Aggregating January
	// THEN: Exactly 8.00 regular hours attributed to one work day, no overtime

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			payroll.NewWorkRecord("wr-night", "emp-001", jan(15),
				at(15, 22, 0), at(15, 6, 0), "regular-work", "", "night shift"),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalWorkDays)
	assert.Equal(t, "8.00", summary.RegularHours.String())
	assert.True(t, summary.OvertimeHours.IsZero())
	assert.Equal(t, "8000.00", summary.TotalPayment.String())
}

func TestAggregate_SameDayRecordsSumBeforeThreshold(t *testing.T) {
	// GIVEN: Two 5-hour records on the same day
	// WHEN: Aggregating with an 8-hour threshold
	// THEN: The day's total of 10h splits 8 + 2; the records are not
	//       evaluated against the threshold independently

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 10, 9, 14, "regular-work", ""),
			record("wr-2", 10, 15, 20, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalWorkDays)
	assert.Equal(t, "8.00", summary.RegularHours.String())
	assert.Equal(t, "2.00", summary.OvertimeHours.String())
}

func TestAggregate_MixedRateDay_OvertimePricedChronologically(t *testing.T) {
	// GIVEN: A day with a 6h tutoring record (3000/h) followed by a 5h
	//        study-room record (1200/h), threshold 8h
	// WHEN: Aggregating
	// THEN: Regular capacity fills in start order: all 6h of tutoring plus
	//       2h of study room are regular; the last 3h of study room are
	//       overtime at the study-room rate

	rates := payroll.NewRateTable(
		rate("r1", "tutoring", payroll.SubCategoryAny, 3000, jan(1)),
		rate("r2", "study-room", payroll.SubCategoryAny, 1200, jan(1)),
	)

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 10, 9, 15, "tutoring", ""),
			record("wr-2", 10, 16, 21, "study-room", ""),
		},
		Rates:  rates,
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	// 6*3000 + 2*1200 = 20400 regular; 3*1200 = 3600 overtime
	assert.Equal(t, "8.00", summary.RegularHours.String())
	assert.Equal(t, "3.00", summary.OvertimeHours.String())
	assert.Equal(t, "20400.00", summary.RegularPayment.String())
	assert.Equal(t, "3600.00", summary.OvertimePayment.String())
	assert.Equal(t, "24000.00", summary.TotalPayment.String())
}

func TestAggregate_OvertimeMultiplierAppliesPremium(t *testing.T) {
	// GIVEN: A 10-hour day at 1000/h with a 1.25 overtime multiplier
	// WHEN: Aggregating
	// THEN: 2 overtime hours pay 2 * 1000 * 1.25 = 2500

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 19, "regular-work", ""),
		},
		Rates: flatRateTable(),
		Policy: payroll.OvertimePolicy{
			DailyThreshold:     payroll.NewHours(8),
			OvertimeMultiplier: decimal.NewFromFloat(1.25),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "8000.00", summary.RegularPayment.String())
	assert.Equal(t, "2500.00", summary.OvertimePayment.String())
}

func TestAggregate_FiltersByEmployeeAndPeriod(t *testing.T) {
	// GIVEN: Records for another employee and records outside January
	// WHEN: Aggregating emp-001 for January
	// THEN: Only emp-001's January records contribute, nothing else

	other := payroll.NewWorkRecord("wr-other", "emp-999", jan(5),
		at(5, 9, 0), at(5, 17, 0), "regular-work", "", "")
	february := payroll.NewWorkRecord("wr-feb", "emp-001",
		payroll.NewWorkDate(2024, time.February, 1),
		time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 17, 0, 0, 0, time.UTC),
		"regular-work", "", "")

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			other,
			february,
			record("wr-1", 5, 9, 17, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalWorkDays)
	assert.Len(t, summary.Records, 1)
	assert.Equal(t, payroll.RecordID("wr-1"), summary.Records[0].ID)
}

func TestAggregate_EmptyPeriod_ZeroSummary(t *testing.T) {
	// GIVEN: No records in the period
	// WHEN: Aggregating
	// THEN: A zero summary, not an error

	summary, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records:    nil,
		Rates:      flatRateTable(),
		Policy:     eightHourPolicy(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalWorkDays)
	assert.True(t, summary.TotalPayment.IsZero())
}

func TestAggregate_MissingRate_FailsAtomically(t *testing.T) {
	// GIVEN: Two good records and one for a work type with no rate row
	// WHEN: Aggregating
	// THEN: The whole period fails with PartialDataError naming exactly
	//       the offending record; nothing is silently priced at zero

	_, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 17, "regular-work", ""),
			record("wr-2", 6, 9, 17, "unpriced-work", ""),
			record("wr-3", 7, 9, 17, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrPartialData))

	var partial *payroll.PartialDataError
	require.True(t, errors.As(err, &partial))
	require.Len(t, partial.Failures, 1)
	assert.Equal(t, payroll.RecordID("wr-2"), partial.Failures[0].RecordID)
	assert.True(t, errors.Is(partial.Failures[0].Err, payroll.ErrNoApplicableRate))
}

func TestAggregate_CollectsEveryFailure(t *testing.T) {
	// GIVEN: One record with a missing rate and one with a bad interval
	// WHEN: Aggregating
	// THEN: Both failures are reported, not just the first

	bad := payroll.NewWorkRecord("wr-bad", "emp-001", jan(6),
		at(6, 9, 0), at(7, 10, 0), "regular-work", "", "")

	_, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 17, "unpriced-work", ""),
			bad,
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})

	var partial *payroll.PartialDataError
	require.True(t, errors.As(err, &partial))
	assert.Len(t, partial.Failures, 2)
}

func TestAggregate_Deterministic_InputOrderIrrelevant(t *testing.T) {
	// GIVEN: The same records in two different provider orders
	// WHEN: Aggregating each
	// THEN: Identical summaries, record list in (date, start, id) order

	records := []payroll.WorkRecord{
		record("wr-1", 5, 9, 17, "regular-work", ""),
		record("wr-2", 6, 9, 17, "regular-work", ""),
		record("wr-3", 7, 9, 19, "regular-work", ""),
	}
	reversed := []payroll.WorkRecord{records[2], records[1], records[0]}

	in := payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records:    records,
		Rates:      flatRateTable(),
		Policy:     eightHourPolicy(),
	}
	first, err := payroll.Aggregate(in)
	require.NoError(t, err)

	in.Records = reversed
	second, err := payroll.Aggregate(in)
	require.NoError(t, err)

	assert.Equal(t, first.TotalPayment.String(), second.TotalPayment.String())
	assert.Equal(t, first.TotalWorkDays, second.TotalWorkDays)
	require.Len(t, second.Records, 3)
	assert.Equal(t, payroll.RecordID("wr-1"), second.Records[0].ID)
	assert.Equal(t, payroll.RecordID("wr-3"), second.Records[2].ID)
}

// =============================================================================
// ORGANIZATION-WIDE TOTALS TESTS
// =============================================================================

func TestCombine_SumsElementWise(t *testing.T) {
	// GIVEN: Two employee summaries for the same period
	// WHEN: Combining
	// THEN: Hours, payments, and day counts all sum; head count is 2

	a, err := payroll.Aggregate(payroll.AggregateInput{
		EmployeeID: "emp-001",
		Period:     january(),
		Records: []payroll.WorkRecord{
			record("wr-1", 5, 9, 17, "regular-work", ""),
		},
		Rates:  flatRateTable(),
		Policy: eightHourPolicy(),
	})
	require.NoError(t, err)

	b := a
	b.EmployeeID = "emp-002"

	totals := payroll.Combine([]payroll.PayrollSummary{a, b})
	assert.Equal(t, 2, totals.EmployeeCount)
	assert.Equal(t, 2, totals.TotalWorkDays)
	assert.Equal(t, "16.00", totals.TotalHours().String())
	assert.Equal(t, "16000.00", totals.TotalPayment.String())
	assert.Equal(t, "2024-01", totals.Period.Label())
}

func TestCombine_OrderIndependent(t *testing.T) {
	// GIVEN: Summaries in two different orders
	// WHEN: Combining each permutation
	// THEN: Identical totals

	summaries := []payroll.PayrollSummary{
		{EmployeeID: "a", Period: january(), TotalWorkDays: 2,
			RegularHours: payroll.NewHours(16), OvertimeHours: payroll.NewHours(1),
			RegularPayment: payroll.NewMoney(16000), OvertimePayment: payroll.NewMoney(1000),
			TotalPayment: payroll.NewMoney(17000)},
		{EmployeeID: "b", Period: january(), TotalWorkDays: 3,
			RegularHours: payroll.NewHours(24), OvertimeHours: payroll.NewHours(0),
			RegularPayment: payroll.NewMoney(24000), OvertimePayment: payroll.NewMoney(0),
			TotalPayment: payroll.NewMoney(24000)},
	}
	swapped := []payroll.PayrollSummary{summaries[1], summaries[0]}

	forward := payroll.Combine(summaries)
	backward := payroll.Combine(swapped)

	assert.Equal(t, forward.TotalWorkDays, backward.TotalWorkDays)
	assert.Equal(t, forward.TotalPayment.String(), backward.TotalPayment.String())
	assert.Equal(t, forward.TotalHours().String(), backward.TotalHours().String())
}

func TestCombine_Empty(t *testing.T) {
	// GIVEN: No summaries
	// WHEN: Combining
	// THEN: Zero totals and zero head count

	totals := payroll.Combine(nil)
	assert.Equal(t, 0, totals.EmployeeCount)
	assert.True(t, totals.TotalPayment.IsZero())
}
