package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DayOf drops the time of day, keeping the calendar date as seen in t's own location.
// All day arithmetic in this module runs on values produced here.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from 'from' to 'to'.
// It is negative when 'to' is before 'from'.
func DaysBetween(from, to time.Time) int {
	return int(DayOf(to).Sub(DayOf(from)).Hours() / 24)
}

func DaysInYear(year int) int {
	return DayOf(time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)).YearDay()
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayOf(t), nil
	}
	return time.Time{}, NewInvalidInput("date", fmt.Sprintf("cannot parse %q, expected YYYY-MM-DD", s))
}
