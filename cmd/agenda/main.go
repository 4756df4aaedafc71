// Command agenda scans a directory of Markdown files for Org-mode-style
// task metadata and prints an agenda view, per §6. Subcommand-free: all
// behavior is selected through flags, the way the teacher's cmd/otter
// dispatches through a flag.FlagSet inside a single entrypoint rather
// than through cobra.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mdagenda/agenda/internal/agenda"
	"github.com/mdagenda/agenda/internal/config"
	"github.com/mdagenda/agenda/internal/extract"
	"github.com/mdagenda/agenda/internal/holiday"
	"github.com/mdagenda/agenda/internal/locale"
	"github.com/mdagenda/agenda/internal/render"
	"github.com/mdagenda/agenda/internal/walk"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		return fmt.Errorf("agenda: bad timezone %q: %w", cfg.TZ, err)
	}

	today := time.Now().In(loc)
	if cfg.CurrentDate != "" {
		today, err = time.ParseInLocation("2006-01-02", cfg.CurrentDate, loc)
		if err != nil {
			return fmt.Errorf("agenda: bad --current-date %q: %w", cfg.CurrentDate, err)
		}
	}

	cal := holiday.Default()

	if cfg.Holidays {
		return printHolidays(stdout, cal, cfg, today)
	}

	enabled := locale.ParseLocales(cfg.Locale)

	files, stats, err := walk.Walk(cfg.Dir, cfg.Glob)
	if err != nil {
		return fmt.Errorf("agenda: %w", err)
	}
	log.Printf("matched %d files, read %d, skipped %d for size, failed %d",
		stats.FilesMatched, stats.FilesProcessed, stats.SkippedForSize, stats.FailedToRead)

	var tasks []*extract.Task
	for _, f := range files {
		found, truncated := extract.FromSource(f.Path, f.Content, enabled)
		if truncated {
			log.Printf("warning: %s exceeded %d tasks, remaining tasks were dropped", f.Path, extract.MaxTasksPerFile)
		}
		tasks = append(tasks, found...)
	}

	out, err := renderOutput(cfg, tasks, cal, loc, today)
	if err != nil {
		return err
	}

	if cfg.Output == "-" {
		_, err := stdout.Write(out)
		return err
	}
	return os.WriteFile(cfg.Output, out, 0o644)
}

func renderOutput(cfg *config.Config, tasks []*extract.Task, cal *holiday.Calendar, loc *time.Location, today time.Time) ([]byte, error) {
	mode := agenda.Mode(cfg.Mode)

	if mode == agenda.ModeTasks {
		idxs := agenda.ListTasks(tasks)
		return renderTasks(cfg.Format, idxs, tasks)
	}

	days, err := buildDays(mode, cfg, tasks, cal, loc, today)
	if err != nil {
		return nil, err
	}
	return renderDays(cfg.Format, days, tasks)
}

func buildDays(mode agenda.Mode, cfg *config.Config, tasks []*extract.Task, cal *holiday.Calendar, loc *time.Location, today time.Time) ([]*agenda.Day, error) {
	switch mode {
	case agenda.ModeDay:
		d := today
		if cfg.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", cfg.Date, loc)
			if err != nil {
				return nil, fmt.Errorf("agenda: bad --date %q: %w", cfg.Date, err)
			}
			d = parsed
		}
		return []*agenda.Day{agenda.BuildDay(tasks, d, cal)}, nil

	case agenda.ModeRange:
		if cfg.From == "" || cfg.To == "" {
			return nil, agenda.ErrMissingRange
		}
		from, err := time.ParseInLocation("2006-01-02", cfg.From, loc)
		if err != nil {
			return nil, fmt.Errorf("agenda: bad --from %q: %w", cfg.From, err)
		}
		to, err := time.ParseInLocation("2006-01-02", cfg.To, loc)
		if err != nil {
			return nil, fmt.Errorf("agenda: bad --to %q: %w", cfg.To, err)
		}
		return agenda.BuildRange(tasks, from, to, cal)

	default:
		return nil, agenda.ErrInvalidMode
	}
}

func renderDays(format string, days []*agenda.Day, tasks []*extract.Task) ([]byte, error) {
	switch format {
	case "record":
		return render.RecordJSON(days, tasks)
	case "markdown":
		return []byte(render.Markdown(days, tasks)), nil
	case "html":
		return []byte(render.HTML(days, tasks)), nil
	default:
		return nil, fmt.Errorf("agenda: unknown --format %q", format)
	}
}

func renderTasks(format string, idxs []int, tasks []*extract.Task) ([]byte, error) {
	switch format {
	case "record":
		return render.TasksRecordJSON(idxs, tasks)
	case "markdown":
		return []byte(render.MarkdownTasks(idxs, tasks)), nil
	case "html":
		return []byte(render.HTMLTasks(idxs, tasks)), nil
	default:
		return nil, fmt.Errorf("agenda: unknown --format %q", format)
	}
}

func printHolidays(stdout io.Writer, cal *holiday.Calendar, cfg *config.Config, today time.Time) error {
	year := today.Year()
	if cfg.Date != "" {
		if d, err := time.Parse("2006-01-02", cfg.Date); err == nil {
			year = d.Year()
		}
	}
	if year < holiday.MinYear || year > holiday.MaxYear {
		return fmt.Errorf("agenda: --holidays year %d outside [%d, %d]", year, holiday.MinYear, holiday.MaxYear)
	}
	for _, d := range cal.List(year) {
		fmt.Fprintln(stdout, d.Format("2006-01-02"))
	}
	return nil
}
