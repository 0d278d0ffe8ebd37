package insight

import "time"

// Time-window helpers. All day arithmetic is whole days, truncated toward
// zero, and elapsed time is signed: a future timestamp yields a negative
// "since" value, never a positive one. Callers guard nil timestamps before
// calling; a missing timestamp suppresses the dependent check entirely.

// DaysSince returns the whole number of days elapsed from t to now.
func DaysSince(now, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// HoursSince returns the whole number of hours elapsed from t to now.
func HoursSince(now, t time.Time) int {
	return int(now.Sub(t).Hours())
}

// DaysUntil returns the whole number of days from now until t.
// Negative when t is already past.
func DaysUntil(now, t time.Time) int {
	return int(t.Sub(now).Hours() / 24)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BeforeToday reports whether t falls on a calendar date strictly before
// now's date. Start-of-day comparison avoids same-day false positives.
func BeforeToday(now, t time.Time) bool {
	return StartOfDay(t).Before(StartOfDay(now))
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
