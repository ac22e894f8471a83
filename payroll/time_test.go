package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// WORK DATE TESTS
// =============================================================================

func TestParseWorkDate(t *testing.T) {
	d, err := payroll.ParseWorkDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "2024-01-15", d.String())

	_, err = payroll.ParseWorkDate("15/01/2024")
	assert.Error(t, err)
}

func TestWorkDate_ComparisonIgnoresClockTime(t *testing.T) {
	// GIVEN: Two dates built from timestamps at different clock times
	// WHEN: Comparing
	// THEN: Day granularity; clock time never matters

	morning := payroll.DateOf(time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC))
	evening := payroll.DateOf(time.Date(2024, time.January, 15, 23, 30, 0, 0, time.UTC))
	assert.True(t, morning.Equal(evening))
	assert.True(t, morning.BeforeOrEqual(evening))
	assert.False(t, morning.Before(evening))
}

// =============================================================================
// PERIOD TESTS
// =============================================================================

func TestMonthPeriod_CoversWholeMonth(t *testing.T) {
	p := payroll.MonthPeriod(2024, time.February) // leap year
	assert.Equal(t, "2024-02-01", p.Start.String())
	assert.Equal(t, "2024-02-29", p.End.String())
	assert.Equal(t, "2024-02", p.Label())
}

func TestPeriod_ContainsInclusiveBounds(t *testing.T) {
	p := payroll.MonthPeriod(2024, time.January)
	assert.True(t, p.Contains(payroll.NewWorkDate(2024, time.January, 1)))
	assert.True(t, p.Contains(payroll.NewWorkDate(2024, time.January, 31)))
	assert.False(t, p.Contains(payroll.NewWorkDate(2024, time.February, 1)))
	assert.False(t, p.Contains(payroll.NewWorkDate(2023, time.December, 31)))
}

func TestNewPeriod_RejectsReversedBounds(t *testing.T) {
	_, err := payroll.NewPeriod(
		payroll.NewWorkDate(2024, time.January, 31),
		payroll.NewWorkDate(2024, time.January, 1),
	)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPeriod_PreviousMonth_CrossesYearBoundary(t *testing.T) {
	// GIVEN: January 2024
	// WHEN: Stepping back a month
	// THEN: December 2023, full month

	prev := payroll.MonthPeriod(2024, time.January).PreviousMonth()
	assert.Equal(t, "2023-12", prev.Label())
	assert.Equal(t, "2023-12-31", prev.End.String())
}
