package repeater

import (
	"testing"
	"time"

	"github.com/mdagenda/agenda/internal/holiday"
	"github.com/mdagenda/agenda/internal/locale"
	"github.com/mdagenda/agenda/internal/orgtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruEn = locale.ParseLocales("ru,en")

func parseTS(t *testing.T, raw string) *orgtime.Timestamp {
	ts, ok := orgtime.Parse(raw, ruEn)
	require.True(t, ok, raw)
	return ts
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAdvanceCumulativeAddsOneStepFromBase(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-01-01 +1w>")
	next, ok := Advance(ts, date("2025-03-01"), holiday.New())
	require.True(t, ok)
	assert.Equal(t, date("2025-01-08"), next)
}

func TestAdvanceCatchUpSkipsToFirstOccurrenceOnOrAfterToday(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-01-01 ++1w>")
	next, ok := Advance(ts, date("2025-03-01"), holiday.New())
	require.True(t, ok)
	assert.False(t, next.Before(date("2025-03-01")))
	assert.Equal(t, date("2025-03-05"), next)
}

func TestAdvanceCatchUpLandingExactlyOnTodayQualifies(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-01-01 ++1w>")
	next, ok := Advance(ts, date("2025-01-08"), holiday.New())
	require.True(t, ok)
	assert.Equal(t, date("2025-01-08"), next)
}

func TestAdvanceRestartCountsFromToday(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-01-01 .+1w>")
	next, ok := Advance(ts, date("2025-03-01"), holiday.New())
	require.True(t, ok)
	assert.Equal(t, date("2025-03-08"), next)
}

func TestAdvanceMonthClampsToMonthEnd(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-01-31 +1m>")
	next, ok := Advance(ts, date("2025-01-01"), holiday.New())
	require.True(t, ok)
	assert.Equal(t, date("2025-02-28"), next)
}

func TestAdvanceYearStep(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2024-02-29 +1y>")
	next, ok := Advance(ts, date("2024-01-01"), holiday.New())
	require.True(t, ok)
	assert.Equal(t, date("2025-02-28"), next)
}

func TestAdvanceWorkdaySkipsWeekend(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-12-05 +1wd>")
	next, ok := Advance(ts, date("2025-12-01"), holiday.New())
	require.True(t, ok)
	assert.Equal(t, date("2025-12-08"), next)
}

func TestAdvanceNoRepeaterFails(t *testing.T) {
	ts := parseTS(t, "SCHEDULED: <2025-12-05>")
	_, ok := Advance(ts, date("2025-12-01"), holiday.New())
	assert.False(t, ok)
}
