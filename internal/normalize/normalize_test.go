package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/airfare-pricer/pkg/models"
)

func TestTimeBucket(t *testing.T) {
	tests := []struct {
		hour     int
		expected models.TimeBucket
	}{
		{0, models.BucketEarlyMorning},
		{5, models.BucketEarlyMorning},
		{6, models.BucketMorning},
		{11, models.BucketMorning},
		{12, models.BucketAfternoon},
		{17, models.BucketAfternoon},
		{18, models.BucketEvening},
		{23, models.BucketEvening},
		{-3, models.BucketEarlyMorning},
		{30, models.BucketEvening},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TimeBucket(tt.hour), "hour %d", tt.hour)
	}
}

func TestDaysToDeparture(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     string
		expected int
	}{
		{name: "today clamps to one", date: "2026-03-10", expected: 1},
		{name: "tomorrow is less than a full day away", date: "2026-03-11", expected: 1},
		{name: "two days ahead floors to one", date: "2026-03-12", expected: 1},
		{name: "three days ahead", date: "2026-03-13", expected: 2},
		{name: "a month ahead", date: "2026-04-10", expected: 30},
		{name: "past date clamps to one", date: "2025-12-31", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := DaysToDeparture(tt.date, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, days)
			assert.GreaterOrEqual(t, days, 1)
		})
	}
}

func TestDaysToDeparture_AtMidnight(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	days, err := DaysToDeparture("2026-03-17", now)

	require.NoError(t, err)
	assert.Equal(t, 7, days)
}

func TestDaysToDeparture_InvalidDate(t *testing.T) {
	for _, date := range []string{"", "10-03-2026", "2026-02-30", "tomorrow"} {
		_, err := DaysToDeparture(date, time.Now())
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}
}

func TestNormalizer_UsesClock(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	n := New(func() time.Time { return fixed })

	days, err := n.DaysToDeparture("2026-01-15")

	require.NoError(t, err)
	assert.Equal(t, 13, days)
	assert.Equal(t, models.BucketMorning, n.TimeBucket(9))
}
