package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/payroll"
)

func eightHourPolicy() payroll.OvertimePolicy {
	return payroll.OvertimePolicy{DailyThreshold: payroll.NewHours(8)}
}

// =============================================================================
// DAILY SPLIT TESTS
// =============================================================================

func TestSplitDay_UnderThreshold_AllRegular(t *testing.T) {
	// GIVEN: 6 hours against an 8-hour threshold
	// WHEN: Splitting the day
	// THEN: All regular, zero overtime

	regular, overtime := payroll.SplitDay(payroll.NewHours(6), eightHourPolicy())
	assert.Equal(t, "6.00", regular.String())
	assert.Equal(t, "0.00", overtime.String())
}

func TestSplitDay_ExactlyAtThreshold_NoOvertime(t *testing.T) {
	// GIVEN: Exactly 8 hours against an 8-hour threshold
	// WHEN: Splitting the day
	// THEN: The boundary itself is regular

	regular, overtime := payroll.SplitDay(payroll.NewHours(8), eightHourPolicy())
	assert.Equal(t, "8.00", regular.String())
	assert.True(t, overtime.IsZero())
}

func TestSplitDay_OverThreshold_FractionalOvertime(t *testing.T) {
	// GIVEN: 9.5 hours against an 8-hour threshold
	// WHEN: Splitting the day
	// THEN: 8 regular + 1.5 overtime

	regular, overtime := payroll.SplitDay(payroll.NewHours(9.5), eightHourPolicy())
	assert.Equal(t, "8.00", regular.String())
	assert.Equal(t, "1.50", overtime.String())
}

func TestSplitDay_ConservesTotal(t *testing.T) {
	// GIVEN: A range of daily totals
	// WHEN: Splitting each
	// THEN: regular + overtime == total and neither is negative

	policy := eightHourPolicy()
	for _, total := range []float64{0, 0.25, 4, 8, 8.01, 12, 24} {
		in := payroll.NewHours(total)
		regular, overtime := payroll.SplitDay(in, policy)
		assert.True(t, regular.Add(overtime).Equal(in), "total %v not conserved", total)
		assert.False(t, regular.IsNegative())
		assert.False(t, overtime.IsNegative())
	}
}

func TestSplitOvertime_PerDayIndependent(t *testing.T) {
	// GIVEN: Three days of 8, 8, and 10 hours
	// WHEN: Splitting the sequence
	// THEN: Only the 10-hour day produces overtime; order is preserved

	days := []payroll.DayHours{
		{Date: jan(5), Total: payroll.NewHours(8)},
		{Date: jan(6), Total: payroll.NewHours(8)},
		{Date: jan(7), Total: payroll.NewHours(10)},
	}

	splits := payroll.SplitOvertime(days, eightHourPolicy())
	assert.Len(t, splits, 3)
	assert.True(t, splits[0].Overtime.IsZero())
	assert.True(t, splits[1].Overtime.IsZero())
	assert.Equal(t, "2.00", splits[2].Overtime.String())
	assert.True(t, splits[2].Date.Equal(jan(7)))
}

// =============================================================================
// POLICY MULTIPLIER TESTS
// =============================================================================

func TestOvertimePolicy_ZeroMultiplierMeansBaseRate(t *testing.T) {
	// GIVEN: A policy with no multiplier configured
	// WHEN: Reading the effective multiplier
	// THEN: 1 (base rate), not 0

	policy := eightHourPolicy()
	assert.True(t, policy.Multiplier().Equal(decimal.NewFromInt(1)))
}

func TestOvertimePolicy_ExplicitMultiplier(t *testing.T) {
	// GIVEN: A 1.25 premium policy
	// WHEN: Reading the effective multiplier
	// THEN: 1.25

	policy := payroll.OvertimePolicy{
		DailyThreshold:     payroll.NewHours(8),
		OvertimeMultiplier: decimal.NewFromFloat(1.25),
	}
	assert.True(t, policy.Multiplier().Equal(decimal.NewFromFloat(1.25)))
}
