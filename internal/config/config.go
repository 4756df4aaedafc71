// Package config resolves a run's settings from environment variables
// and command-line flags, env-var defaults the way the teacher's
// internal/config does ("AGENDA_..." with defaultXxx fallbacks), flags
// layered on top since this is a CLI rather than a server.
package config

import (
	"errors"
	"flag"
	"os"
)

const (
	defaultGlob   = "**/*.md"
	defaultLocale = "ru,en"
	defaultTZ     = "Local"
	defaultMode   = "day"
	defaultFormat = "record"
	defaultOutput = "-"
)

// ErrUnknownFlag is returned when flag parsing rejects the argument list.
var ErrUnknownFlag = errors.New("config: unknown flag")

// Config is a fully resolved run configuration.
type Config struct {
	Dir         string
	Glob        string
	Locale      string
	TZ          string
	Mode        string
	Date        string
	From        string
	To          string
	Format      string
	Output      string
	Holidays    bool
	CurrentDate string
}

// Parse builds a Config from args (typically os.Args[1:]), with every
// flag's default first taken from its "AGENDA_*" environment variable
// and falling back to the package constants above.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("agenda", flag.ContinueOnError)

	fs.StringVar(&cfg.Dir, "dir", envOrDefault("AGENDA_DIR", "."), "directory to scan")
	fs.StringVar(&cfg.Glob, "glob", envOrDefault("AGENDA_GLOB", defaultGlob), "glob pattern for files to scan")
	fs.StringVar(&cfg.Locale, "locale", envOrDefault("AGENDA_LOCALE", defaultLocale), "comma-separated locales for day-of-week tokens")
	fs.StringVar(&cfg.TZ, "tz", envOrDefault("AGENDA_TZ", defaultTZ), "timezone for resolving \"today\"")
	fs.StringVar(&cfg.Mode, "mode", envOrDefault("AGENDA_MODE", defaultMode), "agenda mode: tasks, day, or range")
	fs.StringVar(&cfg.Date, "date", "", "date for day mode (YYYY-MM-DD), defaults to today")
	fs.StringVar(&cfg.From, "from", "", "range mode start date")
	fs.StringVar(&cfg.To, "to", "", "range mode end date")
	fs.StringVar(&cfg.Format, "format", envOrDefault("AGENDA_FORMAT", defaultFormat), "output format: record, markdown, or html")
	fs.StringVar(&cfg.Output, "output", envOrDefault("AGENDA_OUTPUT", defaultOutput), "output file path, - for stdout")
	fs.BoolVar(&cfg.Holidays, "holidays", false, "print the holiday calendar for --date's year and exit")
	fs.StringVar(&cfg.CurrentDate, "current-date", "", "override \"today\" for repeatable tests")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Join(ErrUnknownFlag, err)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
