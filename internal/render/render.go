// Package render materializes agenda output in the three forms §6
// describes: a JSON record form, a Markdown form, and an HTML form.
// Agenda entries only carry task indices; every renderer here copies
// the referenced task's fields into its own flat shape, so nothing
// downstream of this package needs to know about the index-based
// ownership model in internal/agenda. Grounded on
// original_source/src/render.rs's render_markdown/render_html,
// restructured for the day/bucket nesting this module's agenda views add.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/mdagenda/agenda/internal/agenda"
	"github.com/mdagenda/agenda/internal/extract"
)

// TaskRecord is the flat JSON shape of one task, independent of which
// agenda bucket it was found in.
type TaskRecord struct {
	File           string  `json:"file"`
	Line           int     `json:"line"`
	Heading        string  `json:"heading"`
	State          string  `json:"state,omitempty"`
	Priority       *string `json:"priority,omitempty"`
	Content        string  `json:"content,omitempty"`
	Created        *string `json:"created,omitempty"`
	Type           string  `json:"type,omitempty"`
	Date           string  `json:"date,omitempty"`
	StartTime      *string `json:"start_time,omitempty"`
	EndTime        *string `json:"end_time,omitempty"`
	TotalClockTime *string `json:"total_clock_time,omitempty"`
}

// EntryRecord pairs a materialized task with its signed offset from the
// agenda day it was bucketed under.
type EntryRecord struct {
	Task       TaskRecord `json:"task"`
	DaysOffset *int       `json:"days_offset,omitempty"`
}

// DayRecord is one day's full bucket set, in JSON form.
type DayRecord struct {
	Date            string        `json:"date"`
	Overdue         []EntryRecord `json:"overdue,omitempty"`
	ScheduledTimed  []EntryRecord `json:"scheduled_timed,omitempty"`
	ScheduledNoTime []EntryRecord `json:"scheduled_no_time,omitempty"`
	Upcoming        []EntryRecord `json:"upcoming,omitempty"`
}

func toRecord(t *extract.Task) TaskRecord {
	r := TaskRecord{
		File: t.File, Line: t.Line, Heading: t.Heading,
		State: string(t.State), Content: t.Content,
		Created: t.Created, Type: string(t.Type()), Date: t.Date(),
		StartTime: t.StartTime(), EndTime: t.EndTime(),
		TotalClockTime: t.TotalClockTime,
	}
	if t.Priority != nil {
		p := string(*t.Priority)
		r.Priority = &p
	}
	return r
}

func toEntryRecords(entries []agenda.Entry, tasks []*extract.Task) []EntryRecord {
	var out []EntryRecord
	for _, e := range entries {
		off := e.DaysOffset
		var copied *int
		if off != nil {
			v := *off
			copied = &v
		}
		out = append(out, EntryRecord{Task: toRecord(tasks[e.TaskIndex]), DaysOffset: copied})
	}
	return out
}

func toDayRecord(d *agenda.Day, tasks []*extract.Task) DayRecord {
	return DayRecord{
		Date:            d.Date.Format("2006-01-02"),
		Overdue:         toEntryRecords(d.Overdue, tasks),
		ScheduledTimed:  toEntryRecords(d.ScheduledTimed, tasks),
		ScheduledNoTime: toEntryRecords(d.ScheduledNoTime, tasks),
		Upcoming:        toEntryRecords(d.Upcoming, tasks),
	}
}

// marshalIndented encodes v as indented JSON with string values kept
// verbatim: <, > and & are not rewritten as JSON unicode escapes.
func marshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RecordJSON renders a sequence of agenda days as indented JSON.
func RecordJSON(days []*agenda.Day, tasks []*extract.Task) ([]byte, error) {
	records := make([]DayRecord, 0, len(days))
	for _, d := range days {
		records = append(records, toDayRecord(d, tasks))
	}
	return marshalIndented(records)
}

// TasksRecordJSON renders the flat "tasks" mode view as indented JSON.
func TasksRecordJSON(idxs []int, tasks []*extract.Task) ([]byte, error) {
	records := make([]TaskRecord, 0, len(idxs))
	for _, idx := range idxs {
		records = append(records, toRecord(tasks[idx]))
	}
	return marshalIndented(records)
}

// offsetSuffix renders a bucketed task's signed day offset the way §6's
// shape contract requires: absent for a task due exactly on the agenda
// day it's listed under, "(N days ago)" for overdue, "(in N days)" for
// upcoming.
func offsetSuffix(offset *int) string {
	if offset == nil {
		return ""
	}
	if n := *offset; n < 0 {
		return fmt.Sprintf(" (%d days ago)", -n)
	}
	return fmt.Sprintf(" (in %d days)", *offset)
}

func timeField(t *extract.Task) string {
	start := t.StartTime()
	if start == nil {
		return ""
	}
	if end := t.EndTime(); end != nil {
		return *start + "-" + *end
	}
	return *start
}

// Markdown renders a sequence of agenda days as the Markdown document
// §6 describes: a top-level `# Agenda`, one `##` section per day, one
// `###` per non-empty bucket, and one `####` per task carrying its
// File/Type/Priority/Time/Created/Total Time fields.
func Markdown(days []*agenda.Day, tasks []*extract.Task) string {
	var b strings.Builder
	b.WriteString("# Agenda\n\n")
	for _, d := range days {
		fmt.Fprintf(&b, "## %s\n\n", d.Date.Format("2006-01-02"))
		writeMarkdownBucket(&b, "Overdue", d.Overdue, tasks)
		writeMarkdownBucket(&b, "Scheduled", d.ScheduledTimed, tasks)
		writeMarkdownBucket(&b, "Scheduled", d.ScheduledNoTime, tasks)
		writeMarkdownBucket(&b, "Upcoming", d.Upcoming, tasks)
	}
	return b.String()
}

func writeMarkdownBucket(b *strings.Builder, title string, entries []agenda.Entry, tasks []*extract.Task) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, e := range entries {
		writeMarkdownTask(b, tasks[e.TaskIndex], e.DaysOffset)
	}
}

func writeMarkdownTask(b *strings.Builder, t *extract.Task, offset *int) {
	fmt.Fprintf(b, "#### %s%s\n\n", t.Heading, offsetSuffix(offset))
	if t.File != "" {
		fmt.Fprintf(b, "**File:** %s\n", t.File)
	}
	if typ := t.Type(); typ != "" {
		fmt.Fprintf(b, "**Type:** %s\n", typ)
	}
	if t.Priority != nil {
		fmt.Fprintf(b, "**Priority:** %c\n", *t.Priority)
	}
	if tf := timeField(t); tf != "" {
		fmt.Fprintf(b, "**Time:** %s\n", tf)
	}
	if t.Created != nil {
		fmt.Fprintf(b, "**Created:** %s\n", *t.Created)
	}
	if t.TotalClockTime != nil {
		fmt.Fprintf(b, "**Total Time:** %s\n", *t.TotalClockTime)
	}
	b.WriteByte('\n')
}

// MarkdownTasks renders the flat "tasks" mode view: a top-level
// `# Tasks` followed by one `####` section per open task.
func MarkdownTasks(idxs []int, tasks []*extract.Task) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	for _, idx := range idxs {
		writeMarkdownTask(&b, tasks[idx], nil)
	}
	return b.String()
}

// HTML renders a sequence of agenda days as the HTML fragment §6
// describes: `<h1>Agenda</h1>`, `<h2>` per day, `<h3>` per non-empty
// bucket, `<h4>` plus field paragraphs per task.
func HTML(days []*agenda.Day, tasks []*extract.Task) string {
	var b strings.Builder
	b.WriteString("<h1>Agenda</h1>\n")
	for _, d := range days {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(d.Date.Format("2006-01-02")))
		writeHTMLBucket(&b, "Overdue", d.Overdue, tasks)
		writeHTMLBucket(&b, "Scheduled", d.ScheduledTimed, tasks)
		writeHTMLBucket(&b, "Scheduled", d.ScheduledNoTime, tasks)
		writeHTMLBucket(&b, "Upcoming", d.Upcoming, tasks)
	}
	return b.String()
}

func writeHTMLBucket(b *strings.Builder, title string, entries []agenda.Entry, tasks []*extract.Task) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "<h3>%s</h3>\n", html.EscapeString(title))
	for _, e := range entries {
		writeHTMLTask(b, tasks[e.TaskIndex], e.DaysOffset)
	}
}

func writeHTMLTask(b *strings.Builder, t *extract.Task, offset *int) {
	fmt.Fprintf(b, "<h4>%s%s</h4>\n", html.EscapeString(t.Heading), html.EscapeString(offsetSuffix(offset)))
	if t.File != "" {
		fmt.Fprintf(b, "<p><strong>File:</strong> %s</p>\n", html.EscapeString(t.File))
	}
	if typ := t.Type(); typ != "" {
		fmt.Fprintf(b, "<p><strong>Type:</strong> %s</p>\n", html.EscapeString(string(typ)))
	}
	if t.Priority != nil {
		fmt.Fprintf(b, "<p><strong>Priority:</strong> %c</p>\n", *t.Priority)
	}
	if tf := timeField(t); tf != "" {
		fmt.Fprintf(b, "<p><strong>Time:</strong> %s</p>\n", html.EscapeString(tf))
	}
	if t.Created != nil {
		fmt.Fprintf(b, "<p><strong>Created:</strong> %s</p>\n", html.EscapeString(*t.Created))
	}
	if t.TotalClockTime != nil {
		fmt.Fprintf(b, "<p><strong>Total Time:</strong> %s</p>\n", html.EscapeString(*t.TotalClockTime))
	}
}

// HTMLTasks renders the flat "tasks" mode view as an HTML fragment.
func HTMLTasks(idxs []int, tasks []*extract.Task) string {
	var b strings.Builder
	b.WriteString("<h1>Tasks</h1>\n")
	for _, idx := range idxs {
		writeHTMLTask(&b, tasks[idx], nil)
	}
	return b.String()
}
