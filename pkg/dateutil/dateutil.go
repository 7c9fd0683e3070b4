// Package dateutil provides whole-day calendar math over local dates.
//
// Dates travel through the system as zero-padded "YYYY-MM-DD" strings, which
// makes interval comparisons plain lexicographic string comparisons. Every
// day-count computation normalizes to UTC midnight first so that partial-day
// offsets never shift a boundary.
package dateutil

import "time"

// Layout is the canonical wire format for calendar-local dates.
const Layout = "2006-01-02"

// Format renders the date's local calendar fields as "YYYY-MM-DD".
// It deliberately ignores the time-of-day and zone offset; serializing via
// UTC instead would shift dates near midnight.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse converts a "YYYY-MM-DD" string into a UTC-midnight time.Time.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// Midnight truncates a timestamp to its own calendar day at UTC midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns b-a in whole days. Both arguments are normalized to
// midnight first, so the result is a pure calendar-day delta.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// AddDays shifts a "YYYY-MM-DD" string by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of the month, Sunday = 0.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// CalendarGrid builds a flat month grid: leading nil cells pad the first week
// up to the weekday of the 1st, followed by one entry per day of the month.
// Callers chunk the result into 7-cell rows.
func CalendarGrid(year int, month time.Month) []*time.Time {
	first := FirstWeekday(year, month)
	days := DaysInMonth(year, month)

	grid := make([]*time.Time, 0, first+days)
	for i := 0; i < first; i++ {
		grid = append(grid, nil)
	}
	for d := 1; d <= days; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		grid = append(grid, &day)
	}
	return grid
}

// PadToWeeks appends trailing nil cells until the grid length is a multiple
// of seven, for fixed-row renderings.
func PadToWeeks(grid []*time.Time) []*time.Time {
	for len(grid)%7 != 0 {
		grid = append(grid, nil)
	}
	return grid
}

// Period selects a reporting window relative to a reference day.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// PeriodRange returns the inclusive [start, end] date strings for the period
// containing now: the day itself, the Sunday-to-Saturday week, or the whole
// calendar month. The reference time is explicit so reports are reproducible
// across day boundaries.
func PeriodRange(period Period, now time.Time) (string, string) {
	today := Format(now)

	switch period {
	case PeriodWeek:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		end := start.AddDate(0, 0, 6)
		return Format(start), Format(end)
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return Format(start), Format(end)
	default:
		return today, today
	}
}

// RangesOverlap reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] intersect. This single predicate backs every "task visible
// in period" query; an inverted range simply never overlaps anything.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && aEnd >= bStart
}

// Contains reports whether date falls inside the inclusive [start, end] range.
func Contains(start, end, date string) bool {
	return RangesOverlap(start, end, date, date)
}
