package payroll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func rate(id string, workType payroll.WorkTypeID, sub payroll.SubCategory, amount float64, from payroll.WorkDate) payroll.WageRate {
	return payroll.WageRate{
		ID:            id,
		WorkTypeID:    workType,
		SubCategory:   sub,
		HourlyAmount:  payroll.NewMoney(amount),
		EffectiveFrom: from,
	}
}

// =============================================================================
// RATE SELECTION TESTS
// =============================================================================

func TestRateTable_LatestEffectiveRateWins(t *testing.T) {
	// GIVEN: Two rate versions for the same pair, Jan 1 at 1000 and Feb 1 at 1200
	// WHEN: Resolving for dates on either side of the boundary
	// THEN: Each date gets the latest row effective on or before it

	table := payroll.NewRateTable(
		rate("r1", "tutoring", "junior-high", 1000, payroll.NewWorkDate(2024, time.January, 1)),
		rate("r2", "tutoring", "junior-high", 1200, payroll.NewWorkDate(2024, time.February, 1)),
	)

	before, err := table.ResolveAmount("tutoring", "junior-high", payroll.NewWorkDate(2024, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, "1000.00", before.String())

	onBoundary, err := table.ResolveAmount("tutoring", "junior-high", payroll.NewWorkDate(2024, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, "1200.00", onBoundary.String())
}

func TestRateTable_SpecificSubCategoryBeatsWildcard(t *testing.T) {
	// GIVEN: A wildcard row and a more specific row for the same work type
	// WHEN: Resolving with the specific sub-category
	// THEN: The specific row wins even though the wildcard also matches

	table := payroll.NewRateTable(
		rate("r1", "tutoring", payroll.SubCategoryAny, 1000, jan(1)),
		rate("r2", "tutoring", "high-school", 3500, jan(1)),
	)

	amount, err := table.ResolveAmount("tutoring", "high-school", jan(15))
	require.NoError(t, err)
	assert.Equal(t, "3500.00", amount.String())
}

func TestRateTable_WildcardFallback(t *testing.T) {
	// GIVEN: Only a wildcard row for the work type
	// WHEN: Resolving with a specific sub-category that has no exact row
	// THEN: The wildcard row applies

	table := payroll.NewRateTable(
		rate("r1", "study-room", payroll.SubCategoryAny, 1200, jan(1)),
	)

	amount, err := table.ResolveAmount("study-room", "junior-high", jan(15))
	require.NoError(t, err)
	assert.Equal(t, "1200.00", amount.String())
}

func TestRateTable_EmptySubCategoryMatchesWildcard(t *testing.T) {
	// GIVEN: A wildcard row stored as "-"
	// WHEN: Resolving with the empty sub-category
	// THEN: Empty and "-" are the same wildcard

	table := payroll.NewRateTable(
		rate("r1", "study-room", "-", 1200, jan(1)),
	)

	amount, err := table.ResolveAmount("study-room", "", jan(15))
	require.NoError(t, err)
	assert.Equal(t, "1200.00", amount.String())
}

func TestRateTable_SameEffectiveDate_LastWriterWins(t *testing.T) {
	// GIVEN: Two rows with identical work type, sub-category, and effective date
	// WHEN: Resolving
	// THEN: The later-inserted row wins

	table := payroll.NewRateTable(
		rate("r1", "tutoring", "junior-high", 1000, jan(1)),
		rate("r2", "tutoring", "junior-high", 1100, jan(1)),
	)

	amount, err := table.ResolveAmount("tutoring", "junior-high", jan(15))
	require.NoError(t, err)
	assert.Equal(t, "1100.00", amount.String())
}

func TestRateTable_NoRowBeforeDate_Fails(t *testing.T) {
	// GIVEN: Only a future-dated rate row
	// WHEN: Resolving for an earlier date
	// THEN: NoApplicableRateError naming the lookup

	table := payroll.NewRateTable(
		rate("r1", "tutoring", "junior-high", 1000, payroll.NewWorkDate(2024, time.March, 1)),
	)

	_, err := table.Resolve("tutoring", "junior-high", jan(15))
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrNoApplicableRate))

	var detail *payroll.NoApplicableRateError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, payroll.WorkTypeID("tutoring"), detail.WorkTypeID)
}

func TestRateTable_UnknownWorkType_Fails(t *testing.T) {
	// GIVEN: A populated table
	// WHEN: Resolving a work type with no rows at all
	// THEN: NoApplicableRateError, never a zero default

	table := payroll.NewRateTable(
		rate("r1", "tutoring", "junior-high", 1000, jan(1)),
	)

	_, err := table.Resolve("group-lesson", "junior-high", jan(15))
	assert.True(t, errors.Is(err, payroll.ErrNoApplicableRate))
}
