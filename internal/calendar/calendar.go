// Package calendar provides working-day date arithmetic over a
// Monday–Friday calendar. Saturday and Sunday are the only non-working
// days; no holiday calendar is modeled. A holiday-aware calendar could
// replace this package behind the same functions without touching the
// schedulers that consume it.
package calendar

import "time"

// Layout is the canonical wire format for schedule dates.
const Layout = "2006-01-02"

// Date returns the UTC midnight time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates t to UTC midnight so that schedule dates compare
// exactly with Equal, Before, and After.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse decodes a YYYY-MM-DD string into a normalized date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// Format encodes a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// IsWorkingDay reports whether t falls on a Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextWorkingDay returns the first working day strictly after t.
func NextWorkingDay(t time.Time) time.Time {
	d := t.AddDate(0, 0, 1)
	for !IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PrevWorkingDay returns the last working day strictly before t.
func PrevWorkingDay(t time.Time) time.Time {
	d := t.AddDate(0, 0, -1)
	for !IsWorkingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddWorkingDays advances t by n working days, stepping one calendar day
// at a time and skipping weekends. n = 0 returns t unchanged, so a task
// with a one-day duration starts and ends on the same date. Negative n
// delegates to SubtractWorkingDays.
func AddWorkingDays(t time.Time, n int) time.Time {
	if n < 0 {
		return SubtractWorkingDays(t, -n)
	}
	d := t
	for i := 0; i < n; i++ {
		d = NextWorkingDay(d)
	}
	return d
}

// SubtractWorkingDays retreats t by n working days, the mirror of
// AddWorkingDays. n = 0 returns t unchanged.
func SubtractWorkingDays(t time.Time, n int) time.Time {
	if n < 0 {
		return AddWorkingDays(t, -n)
	}
	d := t
	for i := 0; i < n; i++ {
		d = PrevWorkingDay(d)
	}
	return d
}

// WorkingDaySpan counts the working days from start to end inclusive.
// It returns 0 when end precedes start. Weekend endpoints contribute
// nothing to the count.
func WorkingDaySpan(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			n++
		}
	}
	return n
}
