package model

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of Meta.WeekEndingDate.
const DateLayout = "2006-01-02"

// Weekdays lists the fixed day order of a Week. Index 6 is the week ending Sunday.
var Weekdays = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Job is a single on-site interval for a project.
type Job struct {
	ProjectName string `json:"unitJobName"`
	OnSite      string `json:"onSite"`
	OffSite     string `json:"offSite"`
	// ExternalID is set for jobs imported from a calendar.
	ExternalID string `json:"externalId,omitempty"`
}

// WeatherDelay is descriptive only and never counted in any total.
type WeatherDelay struct {
	Type       string `json:"type"`
	Start      string `json:"start"`
	Finish     string `json:"finish"`
	ApprovedBy string `json:"approval"`
}

// AllowanceRow is one weekday of the spray allowance or wet hours table.
type AllowanceRow struct {
	Start      string `json:"start"`
	Finish     string `json:"finish"`
	UnitNo     string `json:"unitNo"`
	ApprovedBy string `json:"apprBy"`
}

// Day holds everything recorded for one weekday.
type Day struct {
	DepotStart          string         `json:"depotStart"`
	DepotFinish         string         `json:"depotFinish"`
	LunchTaken          bool           `json:"lunch"`
	LunchPenaltyClaimed bool           `json:"lunchPenalty"`
	LunchTime           string         `json:"lunchTime"`
	Jobs                []Job          `json:"jobs"`
	Weather             []WeatherDelay `json:"weather"`
	Remarks             string         `json:"remarks"`
	ApprovedBy          string         `json:"approvedBy"`
}

// Meta identifies whose week it is.
type Meta struct {
	EmployeeName   string `json:"name"`
	ClassName      string `json:"className"`
	WeekEndingDate string `json:"weekEnding"`
}

// Request is a payout or hold request block.
type Request struct {
	Type       string `json:"type"`
	TotalHours string `json:"totalHours"`
	RDOHours   string `json:"rdoHours"`
}

// Week is the canonical timesheet record. Days, SprayAllowance and WetHours
// always hold seven elements in Weekdays order.
type Week struct {
	// ID and SavedAt are stamped when the week is appended to history.
	ID             string         `json:"id,omitempty"`
	SavedAt        *time.Time     `json:"savedAt,omitempty"`
	Meta           Meta           `json:"meta"`
	Days           []Day          `json:"days"`
	SprayAllowance []AllowanceRow `json:"sprayAllowance"`
	WetHours       []AllowanceRow `json:"wetHours"`
	PayoutRequest  Request        `json:"payoutRequest"`
	HoldRequest    Request        `json:"holdRequest"`
	SignatureImage string         `json:"signatureDataUrl"`
}

// Project is an entry of the project catalogue.
type Project struct {
	Name   string `json:"name"`
	Client string `json:"client"`
}

func NewJob() Job                   { return Job{} }
func NewWeatherDelay() WeatherDelay { return WeatherDelay{} }
func NewAllowanceRow() AllowanceRow { return AllowanceRow{} }

// NewDay returns a blank day with one empty job.
func NewDay() Day {
	return Day{
		Jobs:    []Job{NewJob()},
		Weather: []WeatherDelay{},
	}
}

// NewWeek returns a blank week ending on the Sunday on or after now.
func NewWeek(now time.Time) Week {
	w := Week{
		Meta:           Meta{WeekEndingDate: WeekEnding(now).Format(DateLayout)},
		Days:           make([]Day, len(Weekdays)),
		SprayAllowance: make([]AllowanceRow, len(Weekdays)),
		WetHours:       make([]AllowanceRow, len(Weekdays)),
	}
	for i := range w.Days {
		w.Days[i] = NewDay()
	}
	return w
}

// WeekEnding returns the current or next Sunday for t.
func WeekEnding(t time.Time) time.Time {
	offset := (7 - int(t.Weekday())) % 7
	d := t.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// Day returns the day at index i, or a zero Day when the week is short.
func (w Week) Day(i int) Day {
	if i < 0 || i >= len(w.Days) {
		return Day{}
	}
	return w.Days[i]
}

// Normalize pads Days and both allowance tables to seven entries. Padded
// days are blank days.
func (w *Week) Normalize() {
	for len(w.Days) < len(Weekdays) {
		w.Days = append(w.Days, NewDay())
	}
	for len(w.SprayAllowance) < len(Weekdays) {
		w.SprayAllowance = append(w.SprayAllowance, NewAllowanceRow())
	}
	for len(w.WetHours) < len(Weekdays) {
		w.WetHours = append(w.WetHours, NewAllowanceRow())
	}
}

// Allowance returns row i of rows, or a zero row when rows is short.
func Allowance(rows []AllowanceRow, i int) AllowanceRow {
	if i < 0 || i >= len(rows) {
		return AllowanceRow{}
	}
	return rows[i]
}

// DayDate returns the calendar date of day i. ok is false when the week
// ending date is blank or unparseable.
func (w Week) DayDate(i int) (time.Time, bool) {
	sunday, err := time.Parse(DateLayout, strings.TrimSpace(w.Meta.WeekEndingDate))
	if err != nil {
		return time.Time{}, false
	}
	return sunday.AddDate(0, 0, i-(len(Weekdays)-1)), true
}

// Clone returns a deep copy, so snapshots never share slices with the
// working week.
func (w Week) Clone() Week {
	c := w
	if w.SavedAt != nil {
		t := *w.SavedAt
		c.SavedAt = &t
	}
	if w.Days != nil {
		c.Days = make([]Day, len(w.Days))
		for i, d := range w.Days {
			c.Days[i] = d.clone()
		}
	}
	c.SprayAllowance = append([]AllowanceRow(nil), w.SprayAllowance...)
	c.WetHours = append([]AllowanceRow(nil), w.WetHours...)
	return c
}

func (d Day) clone() Day {
	c := d
	if d.Jobs != nil {
		c.Jobs = append([]Job{}, d.Jobs...)
	}
	if d.Weather != nil {
		c.Weather = append([]WeatherDelay{}, d.Weather...)
	}
	return c
}

// IsEmpty reports whether nothing worth listing was recorded for the day.
func (d Day) IsEmpty() bool {
	for _, j := range d.Jobs {
		if j.ProjectName != "" || j.OnSite != "" || j.OffSite != "" {
			return false
		}
	}
	if d.DepotStart != "" || d.DepotFinish != "" {
		return false
	}
	if len(d.Weather) > 0 {
		return false
	}
	return strings.TrimSpace(d.Remarks) == ""
}

// AddJob appends job, filling the day's untouched default job first.
func (d *Day) AddJob(job Job) {
	if len(d.Jobs) == 1 && d.Jobs[0].IsBlank() {
		d.Jobs[0] = job
		return
	}
	d.Jobs = append(d.Jobs, job)
}

// RemoveJob deletes the job at index i and reports whether i was in range.
// A day always keeps at least one job.
func (d *Day) RemoveJob(i int) bool {
	if i < 0 || i >= len(d.Jobs) {
		return false
	}
	d.Jobs = append(d.Jobs[:i], d.Jobs[i+1:]...)
	if len(d.Jobs) == 0 {
		d.Jobs = []Job{NewJob()}
	}
	return true
}

// IsBlank reports whether a job has no field set.
func (j Job) IsBlank() bool {
	return j.ProjectName == "" && j.OnSite == "" && j.OffSite == "" && j.ExternalID == ""
}

// ParseWeekday maps "mon", "Monday" or "1".."7" to a day index.
func ParseWeekday(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(Weekdays) {
			return 0, false
		}
		return n - 1, true
	}
	for i, name := range Weekdays {
		lower := strings.ToLower(name)
		if s == lower || (len(s) >= 3 && strings.HasPrefix(lower, s)) {
			return i, true
		}
	}
	return 0, false
}
