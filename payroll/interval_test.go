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

func jan(day int) payroll.WorkDate {
	return payroll.NewWorkDate(2024, time.January, day)
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

// =============================================================================
// INTERVAL RESOLUTION TESTS
// =============================================================================

func TestResolveInterval_NormalShift(t *testing.T) {
	// GIVEN: A same-day shift 9:00 -> 18:00
	// WHEN: Resolving the interval
	// THEN: 9.00 hours

	hours, err := payroll.ResolveInterval(jan(15), at(15, 9, 0), at(15, 18, 0))
	require.NoError(t, err)
	assert.Equal(t, "9.00", hours.String())
}

func TestResolveInterval_FractionalHours(t *testing.T) {
	// GIVEN: A shift of 7 hours 30 minutes
	// WHEN: Resolving the interval
	// THEN: 7.50 hours, exact

	hours, err := payroll.ResolveInterval(jan(15), at(15, 9, 30), at(15, 17, 0))
	require.NoError(t, err)
	assert.Equal(t, "7.50", hours.String())
}

func TestResolveInterval_NightShift_CrossesMidnight(t *testing.T) {
	// GIVEN: A night shift entered as 22:00 -> 06:00 with the end clock
	//        time before the start clock time
	// WHEN: Resolving the interval
	// THEN: The end is treated as next-day and the result is exactly 8.00

	hours, err := payroll.ResolveInterval(jan(15), at(15, 22, 0), at(15, 6, 0))
	require.NoError(t, err)
	assert.Equal(t, "8.00", hours.String())
}

func TestResolveInterval_NightShift_EndOnNextCalendarDay(t *testing.T) {
	// GIVEN: A night shift whose end timestamp already carries the next date
	// WHEN: Resolving the interval
	// THEN: No adjustment needed; still 8.00 hours

	hours, err := payroll.ResolveInterval(jan(15), at(15, 22, 0), at(16, 6, 0))
	require.NoError(t, err)
	assert.Equal(t, "8.00", hours.String())
}

func TestResolveInterval_EqualTimestamps_FullDayShift(t *testing.T) {
	// GIVEN: Start and end at the same instant
	// WHEN: Resolving the interval
	// THEN: The overnight rule pushes the end a day forward: a 24h shift,
	//       which sits exactly on the sanity ceiling and is allowed

	hours, err := payroll.ResolveInterval(jan(15), at(15, 9, 0), at(15, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, "24.00", hours.String())
}

func TestResolveInterval_OverTwentyFourHours_Rejected(t *testing.T) {
	// GIVEN: An end timestamp more than 24h after the start
	// WHEN: Resolving the interval
	// THEN: InvalidIntervalError carrying the adjusted duration

	_, err := payroll.ResolveInterval(jan(15), at(15, 9, 0), at(16, 10, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, payroll.ErrInvalidInterval))

	var detail *payroll.InvalidIntervalError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, 25*time.Hour, detail.Duration)
}

func TestResolveInterval_RoundsToTwoDecimals(t *testing.T) {
	// GIVEN: A 50-minute shift (0.8333... hours)
	// WHEN: Resolving the interval
	// THEN: Rounded to 0.83

	hours, err := payroll.ResolveInterval(jan(15), at(15, 9, 0), at(15, 9, 50))
	require.NoError(t, err)
	assert.Equal(t, "0.83", hours.String())
}
