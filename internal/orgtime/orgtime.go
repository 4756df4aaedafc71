// Package orgtime implements the timestamp grammar of §4.C: a small
// sub-language embedded in backtick-quoted spans that encodes dates,
// times, time ranges, date ranges, deadline warnings, and repeater rules,
// with locale-aware day-of-week tokens. Grounded on
// original_source/src/timestamp/parser.rs, generalized from its two fixed
// regexes into one grammar that also accounts for the SCHEDULED/DEADLINE/
// CLOSED/CREATED prefixes and the `-Nd` warning suffix spec.md adds.
package orgtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mdagenda/agenda/internal/locale"
)

// Kind classifies what a parsed timestamp represents.
type Kind string

const (
	Scheduled Kind = "SCHEDULED"
	Deadline  Kind = "DEADLINE"
	Closed    Kind = "CLOSED"
	Created   Kind = "CREATED"
	Plain     Kind = "PLAIN"
)

// RepeaterStrategy is the repetition rule a repeater suffix encodes.
type RepeaterStrategy string

const (
	Cumulative RepeaterStrategy = "+"
	CatchUp    RepeaterStrategy = "++"
	Restart    RepeaterStrategy = ".+"
)

// Unit is a repeater or warning time unit.
type Unit string

const (
	UnitHour    Unit = "h"
	UnitDay     Unit = "d"
	UnitWeek    Unit = "w"
	UnitMonth   Unit = "m"
	UnitYear    Unit = "y"
	UnitWorkday Unit = "wd"
)

// Repeater is the `(strategy, count, unit)` suffix on a timestamp body.
type Repeater struct {
	Strategy RepeaterStrategy
	Count    int
	Unit     Unit
}

// Warning is the `-Nd`-style deadline lead time.
type Warning struct {
	Count int
	Unit  Unit
}

// Timestamp is a parsed timestamp literal, per §3's "Parsed timestamp".
type Timestamp struct {
	Kind       Kind
	StartDate  string // YYYY-MM-DD
	DayOfWeek  string // canonical three-letter token, "" if absent
	StartTime  *string
	EndTime    *string
	RangeEnd   *string // second date, for <d1>--<d2> spans
	Warning    *Warning
	Repeater   *Repeater
	Raw        string // the literal as matched, prefix included
}

var prefixPattern = `(?:(SCHEDULED|DEADLINE|CLOSED|CREATED):\s*)?`
var datePattern = `(\d{4}-\d{2}-\d{2})`
var dowPattern = `([A-Za-zА-Яа-яЁё]+)`
var timePattern = `(\d{1,2}:\d{2})`
var repeaterPattern = `(\.\+|\+\+|\+)(\d+)(wd|[dwmyh])`
var warningPattern = `-(\d+)([dwmyh])`

var bodyPattern = datePattern +
	`(?:\s+` + dowPattern + `)?` +
	`(?:\s+` + timePattern + `(?:-` + timePattern + `)?)?` +
	`(?:\s*` + repeaterPattern + `)?` +
	`(?:\s+` + warningPattern + `)?`

var rangeTailPattern = datePattern +
	`(?:\s+` + dowPattern + `)?` +
	`(?:\s+` + timePattern + `(?:-` + timePattern + `)?)?`

var singleRe = regexp.MustCompile(`^` + prefixPattern + `<` + bodyPattern + `>$`)
var rangeRe = regexp.MustCompile(`^` + prefixPattern + `<` + bodyPattern + `>--<` + rangeTailPattern + `>$`)

// singleRe capture group indices.
const (
	gPrefix = 1
	gDate   = 2
	gDow    = 3
	gStart  = 4
	gEnd    = 5
	gRepSt  = 6
	gRepCnt = 7
	gRepUn  = 8
	gWarnN  = 9
	gWarnU  = 10
)

// rangeRe adds the second date's group indices after the first body.
const (
	rgDate2  = 11
	rgDow2   = 12
	rgStart2 = 13
	rgEnd2   = 14
)

// Parse recognizes an inline timestamp span: a prefix-qualified or bare
// active timestamp, optionally a `<d1>--<d2>` range. Failure is silent —
// the second return value is false — matching §4.C's "ill-formed
// timestamp yields no structured record" contract.
func Parse(raw string, enabled map[locale.Locale]bool) (*Timestamp, bool) {
	raw = strings.TrimSpace(raw)

	if m := rangeRe.FindStringSubmatch(raw); m != nil {
		dow, dowOK := dowOrEmpty(m[gDow], enabled)
		if !dowOK {
			return nil, false
		}
		ts := &Timestamp{Raw: raw, Kind: kindOf(m[gPrefix]), StartDate: m[gDate], DayOfWeek: dow}
		end := m[rgDate2]
		ts.RangeEnd = &end
		// Range spans never carry a time on either side in derived fields,
		// even if one was written; the raw text still preserves it.
		if rep := buildRepeater(m); rep != nil {
			ts.Repeater = rep
		}
		if warn := buildWarning(m); warn != nil {
			ts.Warning = warn
		}
		return ts, true
	}

	if m := singleRe.FindStringSubmatch(raw); m != nil {
		dow, dowOK := dowOrEmpty(m[gDow], enabled)
		if !dowOK {
			return nil, false
		}
		ts := &Timestamp{Raw: raw, Kind: kindOf(m[gPrefix]), StartDate: m[gDate], DayOfWeek: dow}
		if m[gStart] != "" {
			start := m[gStart]
			ts.StartTime = &start
		}
		if m[gEnd] != "" {
			end := m[gEnd]
			ts.EndTime = &end
		}
		if rep := buildRepeater(m); rep != nil {
			ts.Repeater = rep
		}
		if warn := buildWarning(m); warn != nil {
			ts.Warning = warn
		}
		return ts, true
	}

	return nil, false
}

func kindOf(prefix string) Kind {
	switch prefix {
	case "SCHEDULED":
		return Scheduled
	case "DEADLINE":
		return Deadline
	case "CLOSED":
		return Closed
	case "CREATED":
		return Created
	default:
		return Plain
	}
}

// dowOrEmpty canonicalizes an optional day-of-week token. An absent token
// is fine (empty, ok); a present but unrecognized token fails the match
// outright, since it most likely means the regex mis-split the body.
func dowOrEmpty(token string, enabled map[locale.Locale]bool) (string, bool) {
	if token == "" {
		return "", true
	}
	canon, ok := locale.Canonicalize(token, enabled)
	if !ok {
		return "", false
	}
	return canon, true
}

func buildRepeater(m []string) *Repeater {
	if m[gRepSt] == "" {
		return nil
	}
	count, err := strconv.Atoi(m[gRepCnt])
	if err != nil {
		return nil
	}
	return &Repeater{Strategy: RepeaterStrategy(m[gRepSt]), Count: count, Unit: Unit(m[gRepUn])}
}

func buildWarning(m []string) *Warning {
	if m[gWarnN] == "" {
		return nil
	}
	count, err := strconv.Atoi(m[gWarnN])
	if err != nil {
		return nil
	}
	return &Warning{Count: count, Unit: Unit(m[gWarnU])}
}

// Render reconstructs the canonical literal for a parsed timestamp,
// satisfying the round-trip invariant of §8: Parse(Render(t)) == t.
func Render(ts *Timestamp) string {
	var b strings.Builder
	if ts.Kind != Plain {
		b.WriteString(string(ts.Kind))
		b.WriteString(": ")
	}
	b.WriteByte('<')
	b.WriteString(ts.StartDate)
	if ts.DayOfWeek != "" {
		b.WriteByte(' ')
		b.WriteString(ts.DayOfWeek)
	}
	if ts.RangeEnd == nil {
		if ts.StartTime != nil {
			b.WriteByte(' ')
			b.WriteString(*ts.StartTime)
			if ts.EndTime != nil {
				b.WriteByte('-')
				b.WriteString(*ts.EndTime)
			}
		}
		if ts.Repeater != nil {
			fmt.Fprintf(&b, " %s%d%s", ts.Repeater.Strategy, ts.Repeater.Count, ts.Repeater.Unit)
		}
		if ts.Warning != nil {
			fmt.Fprintf(&b, " -%d%s", ts.Warning.Count, ts.Warning.Unit)
		}
	}
	b.WriteByte('>')
	if ts.RangeEnd != nil {
		b.WriteString("--<")
		b.WriteString(*ts.RangeEnd)
		b.WriteByte('>')
	}
	return b.String()
}
