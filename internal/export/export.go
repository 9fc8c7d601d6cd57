// Package export renders one week as the row-oriented timesheet table and
// writes it as CSV, XLSX or PDF.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

var allowanceHeader = []string{"Day", "Start", "Finish", "Hours", "Unit No", "Appr By"}

// WeeklyTotal returns the formatted weekly total of w.
func WeeklyTotal(w model.Week) string {
	return timecalc.FormatHours(timecalc.WeekTotalMinutes(w))
}

// MaxJobs returns the largest job count over the week's days.
func MaxJobs(w model.Week) int {
	n := 0
	for i := range model.Weekdays {
		n = max(n, len(w.Day(i).Jobs))
	}
	return n
}

// Rows lays out w as the export table. weeklyTotal is rendered verbatim in
// the last row.
func Rows(w model.Week, weeklyTotal string) [][]string {
	var rows [][]string
	rows = append(rows,
		[]string{"Name", w.Meta.EmployeeName},
		[]string{"Class", w.Meta.ClassName},
		[]string{"Week Ending", w.Meta.WeekEndingDate},
		[]string{},
	)

	maxJobs := MaxJobs(w)
	header := []string{"Day", "Depot Start", "Depot Finish", "Lunch", "Lunch Penalty", "Lunch Time"}
	for j := 1; j <= maxJobs; j++ {
		header = append(header, fmt.Sprintf("Job%d Name", j), fmt.Sprintf("Job%d On", j), fmt.Sprintf("Job%d Off", j))
	}
	header = append(header, "Remarks", "Approved By", "Total Hours")
	rows = append(rows, header)

	for i, name := range model.Weekdays {
		d := w.Day(i)
		row := []string{name, d.DepotStart, d.DepotFinish, yesNo(d.LunchTaken), yesNo(d.LunchPenaltyClaimed), d.LunchTime}
		for j := 0; j < maxJobs; j++ {
			if j < len(d.Jobs) {
				job := d.Jobs[j]
				row = append(row, job.ProjectName, job.OnSite, job.OffSite)
			} else {
				row = append(row, "", "", "")
			}
		}
		row = append(row, d.Remarks, d.ApprovedBy, timecalc.FormatHours(timecalc.DayTotalMinutes(d)))
		rows = append(rows, row)
	}

	rows = append(rows, []string{})
	rows = appendAllowance(rows, "Spray Allowance", w.SprayAllowance)
	rows = append(rows, []string{})
	rows = appendAllowance(rows, "Wet Hours", w.WetHours)
	rows = append(rows, []string{})
	rows = append(rows, []string{"Weekly Total", weeklyTotal})
	return rows
}

func appendAllowance(rows [][]string, title string, table []model.AllowanceRow) [][]string {
	rows = append(rows, []string{title}, append([]string(nil), allowanceHeader...))
	for i, name := range model.Weekdays {
		r := model.Allowance(table, i)
		mins := timecalc.IntervalMinutes(r.Start, r.Finish)
		rows = append(rows, []string{name, r.Start, r.Finish, timecalc.FormatHours(mins), r.UnitNo, r.ApprovedBy})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// CSV renders the export table as comma-separated text without a trailing newline.
func CSV(w model.Week, weeklyTotal string) string {
	rows := Rows(w, weeklyTotal)
	lines := make([]string, len(rows))
	for i, row := range rows {
		fields := make([]string, len(row))
		for j, v := range row {
			fields[j] = csvEscape(v)
		}
		lines[i] = strings.Join(fields, ",")
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes the CSV export of w followed by a newline.
func WriteCSV(out io.Writer, w model.Week) error {
	_, err := fmt.Fprintln(out, CSV(w, WeeklyTotal(w)))
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FileName returns the download name for w, e.g. "timesheet_2026-03-01.csv".
func FileName(w model.Week, ext string) string {
	name := w.Meta.WeekEndingDate
	if name == "" {
		name = "week"
	}
	return "timesheet_" + name + "." + ext
}
