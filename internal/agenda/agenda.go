// Package agenda assembles extracted tasks into day-based or flat views.
// A Task list is owned by the caller for the life of the process; agenda
// entries reference tasks by index into that list rather than copying
// them, so a task that recurs across several days in range mode is
// described once and referenced many times. Grounded loosely on
// original_source/src/agenda.rs's filter_agenda/build_day_agenda, scaled
// back to the plainer bucket rules this module's operations describe
// rather than that file's fuller DEADLINE-warning-window logic.
package agenda

import (
	"errors"
	"sort"
	"time"

	"github.com/mdagenda/agenda/internal/extract"
	"github.com/mdagenda/agenda/internal/holiday"
	"github.com/mdagenda/agenda/internal/orgtime"
	"github.com/mdagenda/agenda/internal/repeater"
)

// Mode selects which view is produced: ListTasks, BuildDay or BuildRange.
type Mode string

const (
	ModeTasks Mode = "tasks"
	ModeDay   Mode = "day"
	ModeRange Mode = "range"
)

var (
	ErrInvalidMode  = errors.New("agenda: invalid mode")
	ErrMissingRange = errors.New("agenda: range mode requires a from and to date")
)

const dateLayout = "2006-01-02"

// Entry references one task, by its index into the caller's task list,
// along with its signed offset from the agenda day it's bucketed under.
// Negative means overdue, positive means upcoming, nil means due exactly
// on the day.
type Entry struct {
	TaskIndex  int
	DaysOffset *int
}

// Day is one date's worth of bucketed entries.
type Day struct {
	Date            time.Time
	Overdue         []Entry
	ScheduledTimed  []Entry
	ScheduledNoTime []Entry
	Upcoming        []Entry
}

// BuildDay buckets every task in tasks against the single day d.
func BuildDay(tasks []*extract.Task, d time.Time, cal *holiday.Calendar) *Day {
	d = d.Truncate(24 * time.Hour)
	day := &Day{Date: d}

	for idx, t := range tasks {
		if t.Primary == nil {
			continue
		}
		occurs, ok := occurrenceDate(t, d, cal)
		if !ok {
			continue
		}
		offset := daysBetween(d, occurs)

		switch {
		case offset == 0:
			entry := Entry{TaskIndex: idx}
			if t.StartTime() != nil {
				day.ScheduledTimed = append(day.ScheduledTimed, entry)
			} else {
				day.ScheduledNoTime = append(day.ScheduledNoTime, entry)
			}
		case offset < 0:
			// Overdue is restricted to Scheduled/Deadline kinds (a Closed
			// or bare timestamp isn't something that can be "due"), and
			// to anything not already Done.
			kind := t.Primary.Kind
			if t.State == extract.Done {
				continue
			}
			if kind != orgtime.Scheduled && kind != orgtime.Deadline {
				continue
			}
			off := offset
			day.Overdue = append(day.Overdue, Entry{TaskIndex: idx, DaysOffset: &off})
		default:
			// Upcoming takes open Scheduled tasks, plus Deadline tasks
			// regardless of state (a completed deadline still marks when
			// the work was due).
			kind := t.Primary.Kind
			switch {
			case kind == orgtime.Deadline:
			case kind == orgtime.Scheduled && t.State == extract.Todo:
			default:
				continue
			}
			off := offset
			day.Upcoming = append(day.Upcoming, Entry{TaskIndex: idx, DaysOffset: &off})
		}
	}

	sortEntries(day.Overdue, tasks)
	sortEntries(day.ScheduledNoTime, tasks)
	sortEntries(day.Upcoming, tasks)
	sortTimedEntries(day.ScheduledTimed, tasks)

	return day
}

// BuildRange buckets tasks against every day in [from, to], inclusive.
func BuildRange(tasks []*extract.Task, from, to time.Time, cal *holiday.Calendar) ([]*Day, error) {
	from = from.Truncate(24 * time.Hour)
	to = to.Truncate(24 * time.Hour)
	if to.Before(from) {
		return nil, ErrMissingRange
	}
	var days []*Day
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, BuildDay(tasks, d, cal))
	}
	return days, nil
}

// ListTasks returns the indices of every open (TODO) task, sorted by
// priority, then file, then line — the flat "tasks" mode view.
func ListTasks(tasks []*extract.Task) []int {
	var idxs []int
	for idx, t := range tasks {
		if t.State == extract.Todo {
			idxs = append(idxs, idx)
		}
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		return less(tasks, idxs[i], idxs[j])
	})
	return idxs
}

func less(tasks []*extract.Task, i, j int) bool {
	ti, tj := tasks[i], tasks[j]
	pi, pj := extract.PriorityOrder(ti.Priority), extract.PriorityOrder(tj.Priority)
	if pi != pj {
		return pi < pj
	}
	if ti.File != tj.File {
		return ti.File < tj.File
	}
	return ti.Line < tj.Line
}

func sortEntries(entries []Entry, tasks []*extract.Task) {
	sort.SliceStable(entries, func(i, j int) bool {
		return less(tasks, entries[i].TaskIndex, entries[j].TaskIndex)
	})
}

func sortTimedEntries(entries []Entry, tasks []*extract.Task) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := tasks[entries[i].TaskIndex], tasks[entries[j].TaskIndex]
		si, sj := ti.StartTime(), tj.StartTime()
		if si != nil && sj != nil && *si != *sj {
			return *si < *sj
		}
		return less(tasks, entries[i].TaskIndex, entries[j].TaskIndex)
	})
}

// occurrenceDate resolves the date a task's primary timestamp is
// actually due on, relative to reference day d. A non-repeating
// timestamp's date is used as-is. A repeating timestamp whose date has
// already passed (on or before d) is advanced once via its repeater
// strategy; one still in the future is left alone, since it isn't due
// yet.
func occurrenceDate(t *extract.Task, d time.Time, cal *holiday.Calendar) (time.Time, bool) {
	base, err := time.Parse(dateLayout, t.Primary.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	if t.Primary.Repeater == nil {
		return base, true
	}
	if base.After(d) {
		return base, true
	}
	next, ok := repeater.Advance(t.Primary, d, cal)
	if !ok {
		return base, true
	}
	return next, true
}

func daysBetween(d, occurs time.Time) int {
	return int(occurs.Sub(d).Hours() / 24)
}
