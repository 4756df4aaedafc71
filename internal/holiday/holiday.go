// Package holiday implements the working-day calendar: weekends plus
// government-declared non-working holidays and the occasional "transfer"
// working day that some years swap in to compensate. The backing data is
// compiled in as static literals and loaded once at process start, the
// same way the teacher's internal/scheduler treats cron schedules as
// immutable after construction.
package holiday

import (
	"sort"
	"time"
)

// MinYear and MaxYear bound the range for which holiday queries and the
// --holidays flag are accepted at all. Outside this range the calendar
// falls back to weekends-only.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Calendar is a read-only, process-wide working-day calendar.
type Calendar struct {
	holidays  map[string]bool // "YYYY-MM-DD" -> true
	transfers map[string]bool // government-declared working weekends
}

var process = New()

// Default returns the process-wide calendar loaded from embedded data.
func Default() *Calendar { return process }

// New constructs a calendar from the embedded static tables. It is cheap
// enough to call directly in tests that want an isolated instance.
func New() *Calendar {
	c := &Calendar{holidays: map[string]bool{}, transfers: map[string]bool{}}
	for _, d := range holidayDates {
		c.holidays[d] = true
	}
	for _, d := range transferDates {
		c.transfers[d] = true
	}
	return c
}

func key(d time.Time) string { return d.Format("2006-01-02") }

// IsWorkday reports whether date is a working day: weekends are
// non-working unless declared a transfer workday for that year; any date
// in the year's holiday set is non-working; everything else is a workday.
// Years outside [MinYear, MaxYear] are judged on weekday alone.
func (c *Calendar) IsWorkday(d time.Time) bool {
	d = d.Truncate(24 * time.Hour)
	y := d.Year()
	if y < MinYear || y > MaxYear {
		return d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
	}
	k := key(d)
	if c.transfers[k] {
		return true
	}
	if c.holidays[k] {
		return false
	}
	return d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
}

// NextWorkday returns the smallest date strictly greater than date for
// which IsWorkday is true.
func (c *Calendar) NextWorkday(d time.Time) time.Time {
	cur := d.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	for !c.IsWorkday(cur) {
		cur = cur.AddDate(0, 0, 1)
	}
	return cur
}

// List returns the sorted sequence of non-working holiday dates for year.
// Years outside [MinYear, MaxYear] or with no authoritative data return
// an empty sequence.
func (c *Calendar) List(year int) []time.Time {
	var out []time.Time
	for k := range c.holidays {
		t, err := time.Parse("2006-01-02", k)
		if err != nil {
			continue
		}
		if t.Year() == year {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
