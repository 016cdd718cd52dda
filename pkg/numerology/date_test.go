package numerology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDate_LifePath(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{day(1990, time.January, 1), 3},
		{day(2000, time.February, 2), 6},
		{day(2023, time.December, 10), 11},
	}
	for _, tt := range tests {
		got, err := CalculateDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.LifePath, "life path of %s", tt.date.Format(time.DateOnly))
	}
}

func TestCalculateDate_AllFields(t *testing.T) {
	got, err := CalculateDate(day(2023, time.December, 10))
	require.NoError(t, err)
	assert.Equal(t, DateSignature{
		Date:       day(2023, time.December, 10),
		LifePath:   11,
		Attitude:   4,
		Generation: 7,
		DayOfBirth: 1,
	}, got)
}

func TestCalculateDate_UsesOwnLocation(t *testing.T) {
	east := time.FixedZone("UTC+5", 5*60*60)
	got, err := CalculateDate(time.Date(2023, time.December, 10, 1, 0, 0, 0, east))
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.December, 10), got.Date)
	assert.Equal(t, 11, got.LifePath)
}

func TestCalculateDateRange(t *testing.T) {
	got, err := CalculateDateRange(day(2024, time.February, 27), day(2024, time.March, 1))
	require.NoError(t, err)
	require.Len(t, got, 4)

	want := []time.Time{
		day(2024, time.February, 27),
		day(2024, time.February, 28),
		day(2024, time.February, 29),
		day(2024, time.March, 1),
	}
	for i, sig := range got {
		assert.Equal(t, want[i], sig.Date)
	}
}

func TestCalculateDateRange_SingleDay(t *testing.T) {
	got, err := CalculateDateRange(day(1990, time.January, 1), day(1990, time.January, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].LifePath)
}

func TestCalculateDateRange_Reversed(t *testing.T) {
	_, err := CalculateDateRange(day(2024, time.March, 1), day(2024, time.February, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestFindDates(t *testing.T) {
	got, err := FindDates(day(2023, time.December, 1), day(2023, time.December, 31), []int{11})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	var found bool
	for _, sig := range got {
		assert.Equal(t, 11, sig.LifePath)
		if sig.Date.Equal(day(2023, time.December, 10)) {
			found = true
		}
	}
	assert.True(t, found, "2023-12-10 missing from life path 11 dates")

	all, err := FindDates(day(2023, time.December, 1), day(2023, time.December, 31), nil)
	require.NoError(t, err)
	assert.Len(t, all, 31)
}

func TestDaysInRange(t *testing.T) {
	assert.Equal(t, 366, DaysInRange(day(2024, time.January, 1), day(2024, time.December, 31)))
	assert.Equal(t, 1, DaysInRange(day(2024, time.May, 5), day(2024, time.May, 5)))
	assert.Equal(t, 0, DaysInRange(day(2024, time.May, 5), day(2024, time.May, 4)))
}

func TestDaysInRange_Millennium(t *testing.T) {
	// 1000 years with 242 leap days, plus the end day
	assert.Equal(t, 365243, DaysInRange(day(1000, time.January, 1), day(2000, time.January, 1)))
	assert.Equal(t, 146097*25+1, DaysInRange(day(-5000, time.March, 1), day(5000, time.March, 1)))
}
