// Package timeutil provides calendar math over date-only values.
//
// All domain dates (event dates, birthdays, important dates) are stored as
// YYYY-MM-DD strings. Comparisons interpret them at UTC midnight so results
// do not drift with the host timezone; display-time localization is layered
// on top by callers.
package timeutil

import (
	"errors"
	"time"

	"github.com/tartampluch/dunbar/internal/config"
)

// ErrBadDate is returned for values that match none of the accepted layouts.
var ErrBadDate = errors.New(config.ErrDateParse)

// ParseYMD parses a date-only value. Accepted layouts: 2006-01-02, 20060102
// and RFC3339 (the time part is discarded).
func ParseYMD(value string) (time.Time, error) {
	for _, layout := range []string{
		config.DateFormatYMD,
		config.DateFormatBasic,
		config.DateFormatRFC3339,
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrBadDate
}

// FormatYMD renders a time as a date-only YYYY-MM-DD string.
func FormatYMD(t time.Time) string {
	return t.UTC().Format(config.DateFormatYMD)
}

// DayKey buckets an instant into its calendar day in the given location,
// rendered as YYYY-MM-DD. A nil location means UTC.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(config.DateFormatYMD)
}

// Truncate drops the time-of-day component, keeping the calendar day at UTC.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day distance from a to b (negative when b is
// before a). Both are truncated to their UTC calendar day first.
func DaysBetween(a, b time.Time) int {
	const day = 24 * time.Hour
	return int(Truncate(b).Sub(Truncate(a)) / day)
}

// WithinTrailingDays reports whether date falls inside the trailing window
// [now-days, now], inclusive on both ends.
func WithinTrailingDays(date, now time.Time, days int) bool {
	d := DaysBetween(date, now)
	return d >= 0 && d <= days
}

// AddMonths advances a date by n months, clamping the day to the last day of
// the target month (Jan 31 + 1 month = Feb 28/29, not Mar 2/3).
func AddMonths(t time.Time, n int) time.Time {
	t = Truncate(t)
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// NextAnnualOccurrence projects the next yearly occurrence of base relative
// to now (today counts as upcoming). Go's time.Date normalizes Feb 29 to
// March 1 in non-leap years, which is the behavior we want for leaplings.
func NextAnnualOccurrence(now, base time.Time) time.Time {
	now = Truncate(now)
	candidate := time.Date(now.Year(), base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(now) {
		candidate = time.Date(now.Year()+1, base.Month(), base.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// NextMonthStep walks forward from base in stepMonths increments until the
// candidate is not before today. Used for 6/12-month event anniversaries.
func NextMonthStep(now, base time.Time, stepMonths int) time.Time {
	now = Truncate(now)
	candidate := Truncate(base)
	for candidate.Before(now) {
		candidate = AddMonths(candidate, stepMonths)
	}
	return candidate
}
