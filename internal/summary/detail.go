package summary

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

// JobDetail is one job line of a day breakdown.
type JobDetail struct {
	Name    string `json:"name"`
	OnSite  string `json:"onSite"`
	OffSite string `json:"offSite"`
	Minutes int    `json:"minutes"`
	Hours   string `json:"hours"`
}

// DayDetail is a non-empty day of a saved week.
type DayDetail struct {
	Index        int                  `json:"index"`
	Weekday      string               `json:"weekday"`
	Date         string               `json:"date"`
	TotalMinutes int                  `json:"totalMinutes"`
	Hours        string               `json:"hours"`
	Jobs         []JobDetail          `json:"jobs"`
	Weather      []model.WeatherDelay `json:"weather"`
	Remarks      string               `json:"remarks"`
}

// WeekDetail is one saved week of an employee.
type WeekDetail struct {
	ID           string      `json:"id"`
	WeekEnding   string      `json:"weekEnding"`
	TotalMinutes int         `json:"totalMinutes"`
	Hours        string      `json:"hours"`
	Days         []DayDetail `json:"days"`
}

// EmployeeDetail returns the saved weeks of one employee in history order.
// UnnamedEmployee selects weeks with a blank name. Only non-empty days are
// listed, latest weekday first.
func EmployeeDetail(history []model.Week, name string) []WeekDetail {
	var out []WeekDetail
	for _, wk := range history {
		if EmployeeKey(wk) != name {
			continue
		}
		total := timecalc.WeekTotalMinutes(wk)
		wd := WeekDetail{
			ID:           wk.ID,
			WeekEnding:   wk.Meta.WeekEndingDate,
			TotalMinutes: total,
			Hours:        timecalc.FormatHours(total),
			Days:         []DayDetail{},
		}
		for i := len(wk.Days) - 1; i >= 0; i-- {
			d := wk.Days[i]
			if d.IsEmpty() {
				continue
			}
			wd.Days = append(wd.Days, dayDetail(wk, i, d))
		}
		out = append(out, wd)
	}
	return out
}

func dayDetail(wk model.Week, i int, d model.Day) DayDetail {
	mins := timecalc.DayTotalMinutes(d)
	dd := DayDetail{
		Index:        i,
		Weekday:      weekdayName(i),
		Date:         dayDate(wk, i),
		TotalMinutes: mins,
		Hours:        timecalc.FormatHours(mins),
		Jobs:         make([]JobDetail, 0, len(d.Jobs)),
		Weather:      d.Weather,
		Remarks:      d.Remarks,
	}
	for _, j := range d.Jobs {
		jm := timecalc.IntervalMinutes(j.OnSite, j.OffSite)
		name := j.ProjectName
		if name == "" {
			name = "(No name)"
		}
		dd.Jobs = append(dd.Jobs, JobDetail{
			Name:    name,
			OnSite:  j.OnSite,
			OffSite: j.OffSite,
			Minutes: jm,
			Hours:   timecalc.FormatHours(jm),
		})
	}
	return dd
}

// ProjectRow is one job booked against a project.
type ProjectRow struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Employee string `json:"employee"`
	Range    string `json:"range"`
	Minutes  int    `json:"minutes"`
	Hours    string `json:"hours"`

	sortDate time.Time
}

// ProjectReport lists every job of one project across history.
type ProjectReport struct {
	Project    string       `json:"project"`
	Client     string       `json:"client,omitempty"`
	Rows       []ProjectRow `json:"rows"`
	TotalHours string       `json:"totalHours"`
}

// ProjectDetail collects the jobs whose trimmed name equals project, newest
// date first with undated rows last. TotalHours adds the rendered hour values
// of the rows, so it matches what a reader would get summing the column.
func ProjectDetail(history []model.Week, project string, projects []model.Project) ProjectReport {
	want := strings.TrimSpace(project)
	report := ProjectReport{Project: project, Rows: []ProjectRow{}}
	for _, p := range projects {
		if strings.TrimSpace(p.Name) == want {
			report.Client = p.Client
			break
		}
	}

	for _, wk := range history {
		for i, d := range wk.Days {
			for _, j := range d.Jobs {
				if strings.TrimSpace(j.ProjectName) != want {
					continue
				}
				mins := timecalc.IntervalMinutes(j.OnSite, j.OffSite)
				row := ProjectRow{
					Weekday:  weekdayName(i),
					Employee: EmployeeKey(wk),
					Range:    dash(j.OnSite) + " → " + dash(j.OffSite),
					Minutes:  mins,
					Hours:    timecalc.FormatHours(mins),
				}
				if t, ok := wk.DayDate(i); ok {
					row.Date = t.Format(model.DateLayout)
					row.sortDate = t
				}
				report.Rows = append(report.Rows, row)
			}
		}
	}

	sort.SliceStable(report.Rows, func(a, b int) bool {
		ra, rb := report.Rows[a], report.Rows[b]
		if ra.sortDate.IsZero() || rb.sortDate.IsZero() {
			return !ra.sortDate.IsZero() && rb.sortDate.IsZero()
		}
		return ra.sortDate.After(rb.sortDate)
	})

	total := decimal.Zero
	for _, r := range report.Rows {
		h, err := decimal.NewFromString(r.Hours)
		if err != nil {
			continue
		}
		total = total.Add(h)
	}
	report.TotalHours = total.StringFixed(2)
	return report
}

func weekdayName(i int) string {
	if i < 0 || i >= len(model.Weekdays) {
		return ""
	}
	return model.Weekdays[i]
}

func dayDate(wk model.Week, i int) string {
	t, ok := wk.DayDate(i)
	if !ok {
		return ""
	}
	return t.Format(model.DateLayout)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
