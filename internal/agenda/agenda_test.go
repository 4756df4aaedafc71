package agenda

import (
	"testing"
	"time"

	"github.com/mdagenda/agenda/internal/extract"
	"github.com/mdagenda/agenda/internal/holiday"
	"github.com/mdagenda/agenda/internal/locale"
	"github.com/mdagenda/agenda/internal/orgtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruEn = locale.ParseLocales("ru,en")

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func taskWith(t *testing.T, state extract.State, raw string) *extract.Task {
	ts, ok := orgtime.Parse(raw, ruEn)
	require.True(t, ok, raw)
	return &extract.Task{State: state, Primary: ts}
}

func TestBuildDayBucketsScheduledNoTime(t *testing.T) {
	tasks := []*extract.Task{taskWith(t, extract.Todo, "SCHEDULED: <2025-12-10>")}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	require.Len(t, day.ScheduledNoTime, 1)
	assert.Empty(t, day.Overdue)
	assert.Empty(t, day.Upcoming)
}

func TestBuildDayBucketsScheduledTimed(t *testing.T) {
	tasks := []*extract.Task{taskWith(t, extract.Todo, "SCHEDULED: <2025-12-10 09:00>")}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	require.Len(t, day.ScheduledTimed, 1)
}

func TestBuildDayOverdueExcludesDoneButAllowsBareState(t *testing.T) {
	tasks := []*extract.Task{
		taskWith(t, extract.None, "SCHEDULED: <2025-12-01>"),
		taskWith(t, extract.Done, "SCHEDULED: <2025-12-01>"),
	}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	require.Len(t, day.Overdue, 1)
	require.NotNil(t, day.Overdue[0].DaysOffset)
	assert.Equal(t, -9, *day.Overdue[0].DaysOffset)
}

func TestBuildDayOverdueExcludesClosedAndPlainKinds(t *testing.T) {
	tasks := []*extract.Task{
		taskWith(t, extract.Todo, "CLOSED: <2025-12-01>"),
		taskWith(t, extract.Todo, "<2025-12-01>"),
	}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	assert.Empty(t, day.Overdue)
}

func TestBuildDayUpcomingScheduledRequiresTodo(t *testing.T) {
	tasks := []*extract.Task{
		taskWith(t, extract.Todo, "SCHEDULED: <2025-12-20>"),
		taskWith(t, extract.Done, "SCHEDULED: <2025-12-20>"),
	}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	require.Len(t, day.Upcoming, 1)
	require.NotNil(t, day.Upcoming[0].DaysOffset)
	assert.Equal(t, 10, *day.Upcoming[0].DaysOffset)
}

func TestBuildDayUpcomingDeadlineQualifiesRegardlessOfState(t *testing.T) {
	tasks := []*extract.Task{taskWith(t, extract.Done, "DEADLINE: <2025-12-20>")}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	require.Len(t, day.Upcoming, 1)
}

func TestBuildDaySkipsTasksWithoutTimestamp(t *testing.T) {
	tasks := []*extract.Task{{State: extract.Todo}}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	assert.Empty(t, day.Overdue)
	assert.Empty(t, day.ScheduledNoTime)
	assert.Empty(t, day.Upcoming)
}

func TestBuildDayAdvancesOverdueRepeater(t *testing.T) {
	tasks := []*extract.Task{taskWith(t, extract.Todo, "SCHEDULED: <2025-12-01 +1w>")}
	day := BuildDay(tasks, date("2025-12-10"), holiday.New())
	// base 12-01, cumulative +1w -> 12-08, still before 12-10: overdue by 2.
	require.Len(t, day.Overdue, 1)
	assert.Equal(t, -2, *day.Overdue[0].DaysOffset)
}

func TestBuildRangeRejectsInvertedBounds(t *testing.T) {
	tasks := []*extract.Task{}
	_, err := BuildRange(tasks, date("2025-12-10"), date("2025-12-01"), holiday.New())
	assert.ErrorIs(t, err, ErrMissingRange)
}

func TestBuildRangeCoversEveryDayInclusive(t *testing.T) {
	days, err := BuildRange([]*extract.Task{}, date("2025-12-01"), date("2025-12-03"), holiday.New())
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, date("2025-12-03"), days[2].Date)
}

func TestListTasksSortsByPriorityThenFileThenLine(t *testing.T) {
	high := taskWith(t, extract.Todo, "SCHEDULED: <2025-12-10>")
	high.Priority = bytePtr('A')
	high.File, high.Line = "b.md", 5

	low := taskWith(t, extract.Todo, "SCHEDULED: <2025-12-11>")
	low.File, low.Line = "a.md", 1

	mid := taskWith(t, extract.Todo, "SCHEDULED: <2025-12-12>")
	mid.Priority = bytePtr('B')
	mid.File, mid.Line = "a.md", 1

	tasks := []*extract.Task{low, mid, high}
	idxs := ListTasks(tasks)
	require.Len(t, idxs, 3)
	assert.Equal(t, 2, idxs[0]) // high, priority A
	assert.Equal(t, 1, idxs[1]) // mid, priority B
	assert.Equal(t, 0, idxs[2]) // low, no priority
}

func TestListTasksExcludesDone(t *testing.T) {
	tasks := []*extract.Task{taskWith(t, extract.Done, "SCHEDULED: <2025-12-10>")}
	assert.Empty(t, ListTasks(tasks))
}

func bytePtr(b byte) *byte { return &b }
