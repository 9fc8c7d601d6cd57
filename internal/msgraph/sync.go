package msgraph

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Tiliavir/timesheet/internal/logging"
	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Ignored  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	DryRun bool
	// Project names every imported job. Empty = the event subject.
	Project string
	// Location interprets zone-less Graph times. Nil = time.Local.
	Location *time.Location
	Out      io.Writer
	Logger   *slog.Logger
}

func (o SyncOptions) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// LoadLocation resolves an IANA name. Empty means local time.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// parseGraphTime parses a Graph API dateTime and returns it in loc. Graph
// returns times like "2026-02-27T09:00:00.0000000" without an offset; they
// are read in the zone named by the event's timeZone field ("UTC" unless a
// Prefer: outlook.timezone header was sent), falling back to loc.
func parseGraphTime(gt graphTime, loc *time.Location) (time.Time, error) {
	// RFC3339Nano also accepts values without fractional seconds.
	if t, err := time.Parse(time.RFC3339Nano, gt.DateTime); err == nil {
		return t.In(loc), nil
	}
	src := loc
	if gt.TimeZone != "" {
		if z, err := time.LoadLocation(gt.TimeZone); err == nil {
			src = z
		}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, gt.DateTime, src); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", gt.DateTime)
}

// skipReason returns why an event is not imported, or "" to import it.
func skipReason(event CalendarEvent) string {
	switch {
	case event.IsCancelled:
		return "cancelled"
	case event.IsAllDay:
		return "all-day"
	case event.Sensitivity == "private":
		return "private"
	case event.ShowAs == "free":
		return "free"
	case event.Start.DateTime == "" || event.End.DateTime == "":
		return "missing times"
	}
	return ""
}

// MapEventToJob converts a Graph CalendarEvent into a Job and returns the
// event's local start time.
func MapEventToJob(event CalendarEvent, loc *time.Location, project string) (model.Job, time.Time, error) {
	start, err := parseGraphTime(event.Start, loc)
	if err != nil {
		return model.Job{}, time.Time{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End, loc)
	if err != nil {
		return model.Job{}, time.Time{}, fmt.Errorf("parsing end time: %w", err)
	}
	name := strings.TrimSpace(project)
	if name == "" {
		name = strings.TrimSpace(event.Subject)
	}
	return model.Job{
		ProjectName: name,
		OnSite:      timecalc.ClockString(start),
		OffSite:     timecalc.ClockString(end.In(loc)),
		ExternalID:  event.ID,
	}, start, nil
}

// findByExternalID returns the day and job index of an imported job.
func findByExternalID(w *model.Week, externalID string) (int, int, bool) {
	for d := range w.Days {
		for j, job := range w.Days[d].Jobs {
			if job.ExternalID == externalID {
				return d, j, true
			}
		}
	}
	return 0, 0, false
}

// SyncEvents merges events into w. Events outside w's week are ignored and
// re-running with the same events changes nothing. With DryRun, w is left
// untouched and the counters describe what would happen.
func SyncEvents(w *model.Week, events []CalendarEvent, opts SyncOptions) SyncResult {
	var result SyncResult
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	loc := opts.location()

	target := w
	if opts.DryRun {
		c := w.Clone()
		target = &c
	}
	target.Normalize()

	for _, event := range events {
		if reason := skipReason(event); reason != "" {
			logger.Debug("calendar event ignored", "event_id", event.ID, "reason", reason)
			result.Ignored++
			continue
		}

		job, start, err := MapEventToJob(event, loc, opts.Project)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		day, ok := timecalc.DayIndex(*target, start)
		if !ok {
			logger.Debug("calendar event outside week", "event_id", event.ID, "start", start)
			result.Ignored++
			continue
		}

		if d, j, found := findByExternalID(target, event.ID); found {
			if d == day && target.Days[d].Jobs[j] == job {
				fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", event.Subject)
				result.Skipped++
				continue
			}
			if d == day {
				target.Days[d].Jobs[j] = job
			} else {
				target.Days[d].RemoveJob(j)
				target.Days[day].AddJob(job)
			}
			fmt.Fprintf(out, "  ↑ Updated:  %s %s (%s–%s)\n", model.Weekdays[day], event.Subject, job.OnSite, job.OffSite)
			result.Updated++
			continue
		}

		target.Days[day].AddJob(job)
		fmt.Fprintf(out, "  ✓ Imported: %s %s (%s–%s)\n", model.Weekdays[day], event.Subject, job.OnSite, job.OffSite)
		result.Imported++
	}

	logger.Info("calendar sync finished",
		"imported", result.Imported, "updated", result.Updated, "skipped", result.Skipped,
		"ignored", result.Ignored, "errors", result.Errors, "dry_run", opts.DryRun)
	return result
}
