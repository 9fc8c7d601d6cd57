package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Tiliavir/timesheet/internal/api"
	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/msgraph"
	"github.com/Tiliavir/timesheet/internal/summary"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

func writeJSONOut(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func clockRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return dashIfEmpty(start) + "–" + dashIfEmpty(end)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func jobLines(jobs []model.Job) string {
	var lines []string
	for i, j := range jobs {
		if j.IsBlank() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, dashIfEmpty(j.ProjectName), clockRange(j.OnSite, j.OffSite)))
	}
	return strings.Join(lines, "\n")
}

func weatherLines(ws []model.WeatherDelay) string {
	lines := make([]string, len(ws))
	for i, d := range ws {
		lines[i] = strings.TrimSpace(d.Type + " " + clockRange(d.Start, d.Finish))
	}
	return strings.Join(lines, "\n")
}

func lunchCell(d model.Day) string {
	var parts []string
	if d.LunchTaken {
		parts = append(parts, "taken")
	}
	if d.LunchPenaltyClaimed {
		parts = append(parts, "penalty")
	}
	if d.LunchTime != "" {
		parts = append(parts, d.LunchTime)
	}
	return strings.Join(parts, ", ")
}

// renderWeek prints the day table of w followed by its allowance and request totals.
func renderWeek(out io.Writer, w model.Week) {
	v := api.NewWeekView(w)

	fmt.Fprintf(out, "Name: %s   Class: %s   Week ending: %s\n",
		dashIfEmpty(w.Meta.EmployeeName), dashIfEmpty(w.Meta.ClassName), dashIfEmpty(w.Meta.WeekEndingDate))

	t := newTable(out)
	t.AppendHeader(table.Row{"Day", "Date", "Depot", "Lunch", "Jobs", "Weather", "Remarks", "Hours"})
	for i, name := range model.Weekdays {
		d := w.Day(i)
		date := ""
		if dt, ok := w.DayDate(i); ok {
			date = dt.Format(model.DateLayout)
		}
		t.AppendRow(table.Row{
			name, date, clockRange(d.DepotStart, d.DepotFinish), lunchCell(d),
			jobLines(d.Jobs), weatherLines(d.Weather), d.Remarks, v.DayHours[i],
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Weekly total", v.WeeklyTotal})
	t.Render()

	fmt.Fprintf(out, "Spray allowance: %s h   Wet hours: %s h\n", v.SprayAllowanceHours, v.WetHours)
	for _, r := range []struct {
		label string
		req   model.Request
	}{{"Payout", w.PayoutRequest}, {"Hold", w.HoldRequest}} {
		if r.req == (model.Request{}) {
			continue
		}
		fmt.Fprintf(out, "%s request: %s, total %s, RDO %s\n",
			r.label, dashIfEmpty(r.req.Type), dashIfEmpty(r.req.TotalHours), dashIfEmpty(r.req.RDOHours))
	}
	if w.SignatureImage != "" {
		fmt.Fprintln(out, "Signed.")
	}
}

// renderSummary prints one grouping as a table, or as CSV when csv is set.
func renderSummary(out io.Writer, title string, rows []summary.Row, csv bool) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{title, "Minutes", "Hours"})
	total := 0
	for _, r := range rows {
		t.AppendRow(table.Row{r.Key, r.Minutes, r.Hours})
		total += r.Minutes
	}
	if csv {
		t.RenderCSV()
		return
	}
	t.AppendFooter(table.Row{"Total", total, timecalc.FormatHours(total)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderHistory(out io.Writer, items []api.HistoryItem) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Employee", "Week Ending", "Saved", "Hours"})
	for _, it := range items {
		saved := ""
		if it.SavedAt != nil {
			saved = it.SavedAt.Local().Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{it.ID, dashIfEmpty(it.Employee), dashIfEmpty(it.WeekEnding), saved, it.Hours})
	}
	t.Render()
}

func renderEmployee(out io.Writer, name string, weeks []summary.WeekDetail) {
	if len(weeks) == 0 {
		fmt.Fprintf(out, "No saved weeks for %s.\n", name)
		return
	}
	for _, wk := range weeks {
		fmt.Fprintf(out, "%s – week ending %s – %s h\n", name, dashIfEmpty(wk.WeekEnding), wk.Hours)
		t := newTable(out)
		t.AppendHeader(table.Row{"Day", "Date", "Jobs", "Weather", "Remarks", "Hours"})
		for _, d := range wk.Days {
			var jobs []string
			for _, j := range d.Jobs {
				jobs = append(jobs, fmt.Sprintf("%s %s (%s h)", j.Name, clockRange(j.OnSite, j.OffSite), j.Hours))
			}
			t.AppendRow(table.Row{d.Weekday, d.Date, strings.Join(jobs, "\n"), weatherLines(d.Weather), d.Remarks, d.Hours})
		}
		t.Render()
	}
}

func renderProject(out io.Writer, report summary.ProjectReport) {
	title := report.Project
	if report.Client != "" {
		title += " (" + report.Client + ")"
	}
	fmt.Fprintln(out, title)
	t := newTable(out)
	t.AppendHeader(table.Row{"Date", "Day", "Employee", "Time", "Hours"})
	for _, r := range report.Rows {
		t.AppendRow(table.Row{r.Date, r.Weekday, r.Employee, r.Range, r.Hours})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", report.TotalHours})
	t.Render()
}

func printSyncResult(out io.Writer, r msgraph.SyncResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", r.Imported)
	fmt.Fprintf(out, "  %d skipped\n", r.Skipped)
	fmt.Fprintf(out, "  %d updated\n", r.Updated)
	fmt.Fprintf(out, "  %d ignored\n", r.Ignored)
	if r.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", r.Errors)
	}
}
