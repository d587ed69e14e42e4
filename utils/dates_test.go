package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	d := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	t.Run("same day is one day", func(t *testing.T) {
		days, err := DaysBetween(d, d)
		require.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("inclusive of both boundary days", func(t *testing.T) {
		days, err := DaysBetween(d, d.AddDate(0, 0, 6))
		require.NoError(t, err)
		assert.Equal(t, 7, days)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		late := time.Date(2025, 6, 10, 23, 50, 0, 0, time.Local)
		early := time.Date(2025, 6, 12, 0, 10, 0, 0, time.Local)
		days, err := DaysBetween(late, early)
		require.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("inverted range clamps to one", func(t *testing.T) {
		days, err := DaysBetween(d.AddDate(0, 0, 6), d)
		require.NoError(t, err)
		assert.Equal(t, 1, days)
	})

	t.Run("counts civil days across a fall-back transition", func(t *testing.T) {
		// Europe/Berlin leaves DST on 2025-10-26, making it a 25-hour
		// day; naive hour division would overcount by one.
		berlin, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)

		start := time.Date(2025, 10, 25, 0, 0, 0, 0, berlin)
		end := time.Date(2025, 10, 27, 0, 0, 0, 0, berlin)
		days, err := DaysBetween(start, end)
		require.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("counts civil days across a spring-forward transition", func(t *testing.T) {
		berlin, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)

		start := time.Date(2025, 3, 29, 0, 0, 0, 0, berlin)
		end := time.Date(2025, 3, 31, 0, 0, 0, 0, berlin)
		days, err := DaysBetween(start, end)
		require.NoError(t, err)
		assert.Equal(t, 3, days)
	})

	t.Run("zero time is invalid", func(t *testing.T) {
		_, err := DaysBetween(time.Time{}, d)
		assert.ErrorIs(t, err, ErrInvalidDateRange)

		_, err = DaysBetween(d, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestDaysBetweenStrict(t *testing.T) {
	d := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)

	days, err := DaysBetweenStrict(d, d.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	_, err = DaysBetweenStrict(d.AddDate(0, 0, 1), d)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 10, 15, 42, 7, 123, time.Local)
	got := BeginningOfDay(ts)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local), got)
}
