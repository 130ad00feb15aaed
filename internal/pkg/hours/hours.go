// Package hours implements the worked-hours arithmetic for attendance
// records: the canonical total stored on a record, and the display-oriented
// breakdown (work-day window plus overtime) used by reports.
package hours

import (
	"math"
	"time"
)

// Manila is the Philippine time zone. Fixed UTC+8, no daylight saving, so a
// fixed zone avoids a runtime dependency on host tzdata.
var Manila = time.FixedZone("Asia/Manila", 8*60*60)

const (
	// Work-day window used by the display breakdown, Manila local time.
	WindowStartHour = 9
	WindowEndHour   = 18

	// Elapsed spans of at least this many hours get the 1-hour unpaid
	// lunch break deducted.
	lunchThreshold = 5.0

	// Spans in [fullDayHours, lunchThreshold) are clamped to exactly
	// fullDayHours instead of deducting lunch.
	fullDayHours = 4.0
)

// Total converts a committed (timeIn, timeOut) pair into the canonical
// worked-hours figure stored on the record. It reports false when the pair
// is not yet computable: timeOut missing semantics are the caller's to
// handle, and a non-positive elapsed span is rejected here.
//
// Rules: spans of 5h or more lose 1h for lunch; spans in [4h, 5h) count as
// exactly 4h; shorter spans count as-is. The result is rounded to two
// decimal places.
func Total(timeIn, timeOut time.Time) (float64, bool) {
	raw := timeOut.Sub(timeIn).Hours()
	if raw <= 0 {
		return 0, false
	}

	switch {
	case raw >= lunchThreshold:
		raw -= 1
	case raw >= fullDayHours:
		raw = fullDayHours
	}

	return round2(raw), true
}

// Breakdown is the reporting view of a day's work: the hours inside the
// work-day window, plus overtime credited past the window end. It never
// feeds back into the stored total.
type Breakdown struct {
	Base     float64
	Overtime float64
}

// Display computes the reporting breakdown for a (timeIn, timeOut) pair.
// Worked time is clamped to the 09:00-18:00 Manila window before applying
// the lunch rule, and minutes past the window end are credited as overtime
// only when the record has been administratively approved.
func Display(timeIn, timeOut time.Time, approved bool) (Breakdown, bool) {
	if !timeOut.After(timeIn) {
		return Breakdown{}, false
	}

	in := timeIn.In(Manila)
	out := timeOut.In(Manila)

	windowStart := time.Date(in.Year(), in.Month(), in.Day(), WindowStartHour, 0, 0, 0, Manila)
	windowEnd := time.Date(in.Year(), in.Month(), in.Day(), WindowEndHour, 0, 0, 0, Manila)

	clampedIn := in
	if clampedIn.Before(windowStart) {
		clampedIn = windowStart
	}
	clampedOut := out
	if clampedOut.After(windowEnd) {
		clampedOut = windowEnd
	}

	var b Breakdown
	if base, ok := Total(clampedIn, clampedOut); ok {
		b.Base = base
	}

	if approved && out.After(windowEnd) {
		b.Overtime = round2(out.Sub(windowEnd).Hours())
	}

	return b, true
}

// Classify labels a day's total hours for reporting. Never persisted.
func Classify(total float64) string {
	if total >= fullDayHours {
		return "Full-day"
	}
	return "Half-day"
}

// DayOf returns the Manila calendar day a timestamp falls on, at midnight
// Manila time. This is the bucket key for per-day record uniqueness.
func DayOf(t time.Time) time.Time {
	local := t.In(Manila)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Manila)
}

// At combines a calendar day with a wall-clock time into a full Manila
// timestamp. Used when a YYYY-MM-DD date and an HH:mm field arrive
// separately from the client.
func At(day time.Time, hour, minute int) time.Time {
	local := day.In(Manila)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, Manila)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
