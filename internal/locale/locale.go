// Package locale recognizes day-of-week tokens written in Russian or
// English, short or long form, and canonicalizes them to the three-letter
// English tokens used everywhere else in the pipeline (Mon, Tue, …).
package locale

import "strings"

// Locale identifies a language whose day-of-week tokens should be
// recognized during timestamp parsing.
type Locale string

const (
	RU Locale = "ru"
	EN Locale = "en"
)

// ParseLocales splits a comma list (as accepted by --locale) into a set of
// enabled locales. Unknown tokens are ignored rather than rejected, since
// §6 treats invocation details as external to the core.
func ParseLocales(csv string) map[Locale]bool {
	out := map[Locale]bool{}
	for _, part := range strings.Split(csv, ",") {
		switch Locale(strings.ToLower(strings.TrimSpace(part))) {
		case RU:
			out[RU] = true
		case EN:
			out[EN] = true
		}
	}
	return out
}

// ru maps Russian short and long day-of-week tokens to their canonical
// English three-letter form. Keys are matched case-sensitively against
// the exact Cyrillic spelling produced by org-mode-style Markdown.
var ru = map[string]string{
	"Пн":          "Mon",
	"Вт":          "Tue",
	"Ср":          "Wed",
	"Чт":          "Thu",
	"Пт":          "Fri",
	"Сб":          "Sat",
	"Вс":          "Sun",
	"Понедельник": "Mon",
	"Вторник":     "Tue",
	"Среда":       "Wed",
	"Четверг":     "Thu",
	"Пятница":     "Fri",
	"Суббота":     "Sat",
	"Воскресенье": "Sun",
}

// en maps English long day-of-week tokens to their canonical three-letter
// form. The three-letter forms are already canonical and recognized as-is
// by Canonicalize without consulting this table.
var en = map[string]string{
	"Monday":    "Mon",
	"Tuesday":   "Tue",
	"Wednesday": "Wed",
	"Thursday":  "Thu",
	"Friday":    "Fri",
	"Saturday":  "Sat",
	"Sunday":    "Sun",
}

var canonical = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

// Canonicalize recognizes a day-of-week token against the enabled locales
// and returns its canonical three-letter English form. The second return
// value is false when the token is not a recognized day-of-week word in
// any enabled locale (including the always-on canonical English forms).
func Canonicalize(token string, enabled map[Locale]bool) (string, bool) {
	if canonical[token] {
		return token, true
	}
	if enabled[EN] {
		if v, ok := en[token]; ok {
			return v, true
		}
	}
	if enabled[RU] {
		if v, ok := ru[token]; ok {
			return v, true
		}
	}
	return "", false
}
