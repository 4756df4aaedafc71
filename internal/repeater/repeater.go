// Package repeater computes the next occurrence of a repeating
// timestamp. Grounded on original_source/src/timestamp/repeater.rs's
// three strategies, generalized to operate on orgtime.Timestamp and the
// holiday calendar rather than a bespoke date type.
package repeater

import (
	"time"

	"github.com/mdagenda/agenda/internal/holiday"
	"github.com/mdagenda/agenda/internal/orgtime"
)

const dateLayout = "2006-01-02"

// Advance computes the next occurrence of ts relative to today, per its
// repeater strategy. ok is false when ts has no repeater or its start
// date fails to parse.
func Advance(ts *orgtime.Timestamp, today time.Time, cal *holiday.Calendar) (time.Time, bool) {
	if ts == nil || ts.Repeater == nil {
		return time.Time{}, false
	}
	base, err := time.Parse(dateLayout, ts.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	today = today.Truncate(24 * time.Hour)
	rep := ts.Repeater

	switch rep.Strategy {
	case orgtime.Restart:
		// Next occurrence counts from the day the task was completed, not
		// from the originally scheduled date.
		return step(today, rep.Count, rep.Unit, cal), true

	case orgtime.Cumulative:
		// Exactly one step forward from the date that was due, even if
		// that leaves the result still in the past; missed occurrences
		// accumulate rather than being skipped.
		return step(base, rep.Count, rep.Unit, cal), true

	case orgtime.CatchUp:
		// Step forward repeatedly until the result is on or after today,
		// collapsing any missed occurrences into one jump. Today itself
		// qualifies — this isn't "strictly future" the way Upcoming is.
		next := step(base, rep.Count, rep.Unit, cal)
		for next.Before(today) {
			next = step(next, rep.Count, rep.Unit, cal)
		}
		return next, true

	default:
		return time.Time{}, false
	}
}

// step advances date by one repeater increment of count units.
func step(date time.Time, count int, unit orgtime.Unit, cal *holiday.Calendar) time.Time {
	switch unit {
	case orgtime.UnitHour:
		return date.Add(time.Duration(count) * time.Hour)
	case orgtime.UnitDay:
		return date.AddDate(0, 0, count)
	case orgtime.UnitWeek:
		return date.AddDate(0, 0, 7*count)
	case orgtime.UnitMonth:
		return addMonthsClamped(date, count)
	case orgtime.UnitYear:
		return addMonthsClamped(date, 12*count)
	case orgtime.UnitWorkday:
		cur := date
		for i := 0; i < count; i++ {
			cur = cal.NextWorkday(cur)
		}
		return cur
	default:
		return date
	}
}

// addMonthsClamped adds months to date, clamping the day-of-month to the
// last day of the resulting month when the original day doesn't exist
// there (e.g. Jan 31 + 1 month lands on Feb 28, not Mar 3).
func addMonthsClamped(date time.Time, months int) time.Time {
	day := date.Day()
	firstOfMonth := time.Date(date.Year(), date.Month(), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	target := firstOfMonth.AddDate(0, months, 0)
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
