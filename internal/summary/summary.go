// Package summary folds saved weeks into per-employee, per-project and
// per-date totals, and builds the employee and project detail views.
package summary

import (
	"sort"
	"strings"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

// Placeholder keys for blank values.
const (
	UnnamedEmployee = "(Unnamed)"
	NoDate          = "(No date)"
	NoProject       = "(No project)"
)

// Dimension names one of the three groupings.
type Dimension string

const (
	ByEmployee Dimension = "employee"
	ByProject  Dimension = "project"
	ByDate     Dimension = "date"
)

// Row is one grouped total.
type Row struct {
	Key     string `json:"key"`
	Minutes int    `json:"minutes"`
	Hours   string `json:"hours"`
}

// Summaries holds the three independent groupings, each sorted by minutes
// descending with ties in first-encountered order.
type Summaries struct {
	ByEmployee []Row `json:"byEmployee"`
	ByProject  []Row `json:"byProject"`
	ByDate     []Row `json:"byDate"`
}

// By returns the rows of dimension d. ok is false for an unknown dimension.
func (s Summaries) By(d Dimension) ([]Row, bool) {
	switch d {
	case ByEmployee:
		return s.ByEmployee, true
	case ByProject:
		return s.ByProject, true
	case ByDate:
		return s.ByDate, true
	}
	return nil, false
}

// accumulator keeps totals per key together with the order keys were first seen.
type accumulator struct {
	totals map[string]int
	order  []string
}

func newAccumulator() *accumulator {
	return &accumulator{totals: map[string]int{}}
}

func (a *accumulator) add(key string, minutes int) {
	if _, seen := a.totals[key]; !seen {
		a.order = append(a.order, key)
	}
	a.totals[key] += minutes
}

func (a *accumulator) rows() []Row {
	rows := make([]Row, 0, len(a.order))
	for _, k := range a.order {
		m := a.totals[k]
		rows = append(rows, Row{Key: k, Minutes: m, Hours: timecalc.FormatHours(m)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Minutes > rows[j].Minutes
	})
	return rows
}

// EmployeeKey returns the grouping key for a week's employee.
func EmployeeKey(w model.Week) string {
	if w.Meta.EmployeeName == "" {
		return UnnamedEmployee
	}
	return w.Meta.EmployeeName
}

// DateKey returns the grouping key for a week's ending date.
func DateKey(w model.Week) string {
	if w.Meta.WeekEndingDate == "" {
		return NoDate
	}
	return w.Meta.WeekEndingDate
}

// ProjectKey returns the trimmed project name of j.
func ProjectKey(j model.Job) string {
	name := strings.TrimSpace(j.ProjectName)
	if name == "" {
		return NoProject
	}
	return name
}

// Summarize groups history. Employee and date totals use the daily rules
// (job/depot maximum, lunch deduction); project totals are the raw sum of
// each job's own interval.
func Summarize(history []model.Week) Summaries {
	byEmployee := newAccumulator()
	byProject := newAccumulator()
	byDate := newAccumulator()

	for _, wk := range history {
		weekTotal := timecalc.WeekTotalMinutes(wk)
		byEmployee.add(EmployeeKey(wk), weekTotal)
		byDate.add(DateKey(wk), weekTotal)

		for _, d := range wk.Days {
			for _, j := range d.Jobs {
				byProject.add(ProjectKey(j), timecalc.IntervalMinutes(j.OnSite, j.OffSite))
			}
		}
	}

	return Summaries{
		ByEmployee: byEmployee.rows(),
		ByProject:  byProject.rows(),
		ByDate:     byDate.rows(),
	}
}

// WithClients appends " — <client>" to project keys that have a client in
// the catalogue. Matching uses trimmed names.
func WithClients(rows []Row, projects []model.Project) []Row {
	clients := make(map[string]string, len(projects))
	for _, p := range projects {
		if p.Client != "" {
			clients[strings.TrimSpace(p.Name)] = p.Client
		}
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r
		if c, ok := clients[strings.TrimSpace(r.Key)]; ok {
			out[i].Key = r.Key + " — " + c
		}
	}
	return out
}
