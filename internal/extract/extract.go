// Package extract builds one Task record per heading from a file's
// block-event stream. It is a small finite accumulator: a heading opens
// a task, the blocks that follow accumulate into its body until the
// next heading (or end of file) closes it. Grounded on
// original_source/src/parser.rs's extract_tasks/process_node/
// finalize_task, adapted from comrak's node tree to the flat
// mdblocks.Event stream.
package extract

import (
	"regexp"

	"github.com/mdagenda/agenda/internal/clock"
	"github.com/mdagenda/agenda/internal/locale"
	"github.com/mdagenda/agenda/internal/mdblocks"
	"github.com/mdagenda/agenda/internal/orgtime"
)

// MaxTasksPerFile bounds how many tasks a single file may contribute,
// the same safety cap original_source/src/types.rs calls MAX_TASKS,
// scoped per file rather than per run so one runaway file can't starve
// the rest of a tree walk.
const MaxTasksPerFile = 10_000

// State is a heading's TODO/DONE marker, or its absence.
type State string

const (
	Todo State = "TODO"
	Done State = "DONE"
	None State = ""
)

// Task is one heading's extracted metadata.
type Task struct {
	File     string
	Line     int
	Heading  string
	State    State
	Priority *byte // 'A'..'Z', nil if absent
	Content  string

	Created *string // raw "CREATED: <...>" literal, nil if absent
	Primary *orgtime.Timestamp

	Clocks         []clock.Entry
	TotalClockTime *string // "H:MM", nil if no clock entry contributes a duration
}

// Type returns the primary timestamp's kind, or "" if there is none.
func (t *Task) Type() orgtime.Kind {
	if t.Primary == nil {
		return ""
	}
	return t.Primary.Kind
}

// Date returns the primary timestamp's start date, or "" if there is none.
func (t *Task) Date() string {
	if t.Primary == nil {
		return ""
	}
	return t.Primary.StartDate
}

// StartTime returns the primary timestamp's start time, or nil.
func (t *Task) StartTime() *string {
	if t.Primary == nil {
		return nil
	}
	return t.Primary.StartTime
}

// EndTime returns the primary timestamp's end time, or nil.
func (t *Task) EndTime() *string {
	if t.Primary == nil {
		return nil
	}
	return t.Primary.EndTime
}

var headingRe = regexp.MustCompile(`^(TODO|DONE)\s+(?:\[#([A-Z])\]\s+)?(.+)$`)
var backtickSpanRe = regexp.MustCompile("`([^`]+)`")

// FromSource extracts every eligible task from a single file's content.
// truncated reports whether MaxTasksPerFile cut the file short.
func FromSource(file string, source []byte, enabled map[locale.Locale]bool) (tasks []*Task, truncated bool) {
	events := mdblocks.Extract(source)

	var cur *Task
	flush := func() {
		if cur == nil {
			return
		}
		if eligible(cur) {
			if len(tasks) >= MaxTasksPerFile {
				truncated = true
				cur = nil
				return
			}
			tasks = append(tasks, cur)
		}
		cur = nil
	}

	for _, ev := range events {
		if truncated {
			break
		}
		switch ev.Kind {
		case mdblocks.Heading:
			flush()
			cur = newTask(file, ev)
		default:
			if cur == nil {
				continue
			}
			appendBody(cur, ev.Text, enabled)
		}
	}
	flush()

	return tasks, truncated
}

func newTask(file string, ev mdblocks.Event) *Task {
	t := &Task{File: file, Line: ev.Line, Heading: ev.Text, State: None}
	if m := headingRe.FindStringSubmatch(ev.Text); m != nil {
		t.State = State(m[1])
		if m[2] != "" {
			p := m[2][0]
			t.Priority = &p
		}
		t.Heading = m[3]
	}
	return t
}

// appendBody folds one block's text into the task under construction: it
// grows Content, harvests CLOCK records, and resolves the task's primary
// timestamp and CREATED literal from any backtick-quoted timestamp spans.
func appendBody(t *Task, text string, enabled map[locale.Locale]bool) {
	if t.Content == "" {
		t.Content = text
	} else {
		t.Content = t.Content + "\n" + text
	}

	t.Clocks = append(t.Clocks, clock.Extract(text)...)

	for _, m := range backtickSpanRe.FindAllStringSubmatch(text, -1) {
		ts, ok := orgtime.Parse(m[1], enabled)
		if !ok {
			continue
		}
		if ts.Kind == orgtime.Created {
			if t.Created == nil {
				raw := ts.Raw
				t.Created = &raw
			}
			continue
		}
		if t.Primary == nil {
			t.Primary = ts
		}
	}

	if total, ok := clock.TotalMinutes(t.Clocks); ok {
		formatted := clock.FormatDuration(total)
		t.TotalClockTime = &formatted
	}
}

// eligible reports whether a finished task carries enough information to
// be worth keeping: a TODO/DONE marker, a primary timestamp, or at least
// one CLOCK entry.
func eligible(t *Task) bool {
	return t.State == Todo || t.State == Done || t.Primary != nil || len(t.Clocks) > 0
}

// PriorityOrder returns a task's priority's sort weight: 'A' sorts before
// 'B', and an absent priority sorts after every lettered one, matching
// the "unprioritized tasks sort last" rule used when building the Tasks
// agenda view.
func PriorityOrder(p *byte) int {
	if p == nil {
		return 256
	}
	return int(*p)
}
