// utils/dates.go
package utils

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned when a date bound is not a usable date.
var ErrInvalidDateRange = errors.New("invalid date range")

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// civilDay pins the calendar date to UTC so day differences are exact
// multiples of 24h even across a DST transition in the input's zone.
func civilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the inclusive number of rental days between two
// dates: both boundary days count, so a same-day rental is 1 day. Time of
// day is ignored. Inverted ranges clamp to 1 instead of failing; that
// leniency is part of the contract (DaysBetweenStrict is the validating
// variant).
func DaysBetween(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, ErrInvalidDateRange
	}

	days := int(civilDay(end).Sub(civilDay(start)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// DaysBetweenStrict behaves like DaysBetween but rejects end < start.
func DaysBetweenStrict(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, ErrInvalidDateRange
	}
	if BeginningOfDay(end).Before(BeginningOfDay(start)) {
		return 0, ErrInvalidDateRange
	}
	return DaysBetween(start, end)
}
