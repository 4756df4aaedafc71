package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNote(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRunDayModeRecordFormat(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "rent.md", "# TODO [#A] Pay rent\n\nSCHEDULED: `<2025-12-10 Wed>`\n")

	var buf bytes.Buffer
	err := run([]string{
		"-dir", dir,
		"-mode", "day",
		"-date", "2025-12-10",
		"-current-date", "2025-12-10",
		"-format", "record",
	}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Pay rent")
	assert.Contains(t, buf.String(), "scheduled_no_time")
}

func TestRunTasksModeListsOpenTasksOnly(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a.md", "# TODO Open item\n\nSCHEDULED: `<2025-12-10>`\n")
	writeNote(t, dir, "b.md", "# DONE Closed item\n\nSCHEDULED: `<2025-12-01>`\n")

	var buf bytes.Buffer
	err := run([]string{"-dir", dir, "-mode", "tasks", "-format", "record"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Open item")
	assert.NotContains(t, buf.String(), "Closed item")
}

func TestRunMarkdownFormat(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a.md", "# TODO Walk the dog\n\nSCHEDULED: `<2025-12-10 09:00>`\n")

	var buf bytes.Buffer
	err := run([]string{
		"-dir", dir, "-mode", "day", "-date", "2025-12-10",
		"-current-date", "2025-12-10", "-format", "markdown",
	}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# 2025-12-10")
	assert.Contains(t, buf.String(), "Walk the dog")
}

func TestRunRangeModeRequiresFromAndTo(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	err := run([]string{"-dir", dir, "-mode", "range", "-format", "record"}, &buf)
	assert.Error(t, err)
}

func TestRunHolidaysFlagPrintsCalendarAndSkipsWalk(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	err := run([]string{"-dir", dir, "-holidays", "-date", "2025-01-01"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2025-01-01")
}

func TestRunUnknownFormatFails(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a.md", "# TODO X\n\nSCHEDULED: `<2025-12-10>`\n")
	var buf bytes.Buffer
	err := run([]string{"-dir", dir, "-mode", "day", "-date", "2025-12-10", "-format", "bogus"}, &buf)
	assert.Error(t, err)
}
