// Package clock extracts CLOCK records from task content. Unlike the
// inline timestamp grammar in internal/orgtime, a CLOCK record accepts
// both `<...>` and `[...]` brackets on either side of the `--`, since
// §4.E carves out CLOCK as the one place square brackets are active.
// Grounded on original_source/src/clock.rs's CLOCK_RE/extract_clocks.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const clockTimeLayout = "2006-01-02 15:04"

// Entry is one CLOCK record: a start timestamp literal, an optional end
// timestamp literal, and an optional reported duration.
type Entry struct {
	Start    string
	End      *string
	Duration *string
}

var clockRe = regexp.MustCompile(
	`CLOCK:\s*[\[<]([^\]>]+)[\]>](?:--[\[<]([^\]>]+)[\]>])?(?:\s*=>\s*([0-9]+:[0-9]+))?`,
)

// Extract scans text line by line and returns every CLOCK record found,
// in document order. A line that doesn't match clockRe contributes
// nothing; it is not an error, per §7's tolerance for unrecognized text.
func Extract(text string) []Entry {
	var out []Entry
	for _, line := range strings.Split(text, "\n") {
		m := clockRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		e := Entry{Start: strings.TrimSpace(m[1])}
		if m[2] != "" {
			end := strings.TrimSpace(m[2])
			e.End = &end
		}
		if m[3] != "" {
			dur := m[3]
			e.Duration = &dur
		}
		out = append(out, e)
	}
	return out
}

// ParseDuration converts an "H:MM" duration string into total minutes.
func ParseDuration(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// FormatDuration renders a minute count as "H:MM": unpadded hours,
// zero-padded minutes.
func FormatDuration(totalMinutes int) string {
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}

// TotalMinutes sums every entry's duration: the reported "=> H:MM"
// literal if present, or else end minus start for a closed interval that
// didn't report one. An open interval (no End, no Duration) contributes
// nothing. ok is false if no entry contributed anything, matching a task
// with CLOCK records but no closed intervals.
func TotalMinutes(entries []Entry) (int, bool) {
	total := 0
	any := false
	for _, e := range entries {
		minutes, ok := entryMinutes(e)
		if !ok {
			continue
		}
		total += minutes
		any = true
	}
	return total, any
}

func entryMinutes(e Entry) (int, bool) {
	if e.Duration != nil {
		return ParseDuration(*e.Duration)
	}
	if e.End == nil {
		return 0, false
	}
	start, err := time.Parse(clockTimeLayout, e.Start)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse(clockTimeLayout, *e.End)
	if err != nil {
		return 0, false
	}
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0, false
	}
	return minutes, true
}
