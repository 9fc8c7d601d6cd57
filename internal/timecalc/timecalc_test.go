package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00", 0, true},
		{"07:30", 450, true},
		{"23:45", 1425, true},
		{"25:99", 1599, true},
		{"7:5", 425, true},
		{" 08:15", 495, true},
		{"10:00:59", 600, true},
		{"", 0, false},
		{"0900", 0, false},
		{"ab:cd", 0, false},
		{"09:", 540, true},
		{":30", 30, true},
		{":", 0, true},
		{" : 15", 15, true},
	}
	for _, tt := range tests {
		got, ok := timecalc.ParseClock(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseClock(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIntervalMinutes(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"07:00", "15:30", 510},
		{"22:30", "01:15", 165},
		{"09:00", "09:00", 0},
		{"", "09:00", 0},
		{"09:00", "", 0},
		{"junk", "09:00", 0},
		{"00:00", "23:45", 1425},
		{"23:45", "00:00", 15},
		{"25:10", "26:00", 50},
		{"25:70", "26:00", 1430},
		{"07:", "08:30", 90},
		{":30", "01:00", 30},
	}
	for _, tt := range tests {
		got := timecalc.IntervalMinutes(tt.start, tt.end)
		if got != tt.want {
			t.Errorf("IntervalMinutes(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIntervalMinutesSameTimeIsZero(t *testing.T) {
	for _, c := range timecalc.ClockOptions() {
		if got := timecalc.IntervalMinutes(c, c); got != 0 {
			t.Errorf("IntervalMinutes(%q, %q) = %d, want 0", c, c, got)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0.00"},
		{-45, "0.00"},
		{1, "0.02"},
		{15, "0.25"},
		{30, "0.50"},
		{59, "0.98"},
		{60, "1.00"},
		{495, "8.25"},
		{510, "8.50"},
		{2400, "40.00"},
		{1599, "26.65"},
	}
	for _, tt := range tests {
		got := timecalc.FormatHours(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatHours(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestClockOptions(t *testing.T) {
	opts := timecalc.ClockOptions()
	if len(opts) != 96 {
		t.Fatalf("ClockOptions len = %d, want 96", len(opts))
	}
	if opts[0] != "00:00" || opts[1] != "00:15" || opts[95] != "23:45" {
		t.Errorf("ClockOptions bounds = %q, %q, %q", opts[0], opts[1], opts[95])
	}
}

func TestDayTotalMinutes(t *testing.T) {
	tests := []struct {
		name string
		day  model.Day
		want int
	}{
		{
			name: "jobs only",
			day:  model.Day{Jobs: []model.Job{{OnSite: "07:00", OffSite: "15:30"}}},
			want: 510,
		},
		{
			name: "larger of jobs and depot, less lunch",
			day: model.Day{
				DepotStart:  "06:00",
				DepotFinish: "14:00",
				LunchTaken:  true,
				Jobs: []model.Job{
					{OnSite: "06:30", OffSite: "11:00"},
					{OnSite: "11:00", OffSite: "15:00"},
				},
			},
			want: 480,
		},
		{
			name: "depot wins over short jobs",
			day: model.Day{
				DepotStart:  "05:30",
				DepotFinish: "16:00",
				Jobs:        []model.Job{{OnSite: "07:00", OffSite: "09:00"}},
			},
			want: 630,
		},
		{
			name: "lunch alone never goes negative",
			day:  model.Day{LunchTaken: true, Jobs: []model.Job{model.NewJob()}},
			want: 0,
		},
		{
			name: "short day with lunch clamps to zero",
			day:  model.Day{LunchTaken: true, Jobs: []model.Job{{OnSite: "08:00", OffSite: "08:15"}}},
			want: 0,
		},
		{
			name: "penalty and lunch time do not count",
			day: model.Day{
				LunchPenaltyClaimed: true,
				LunchTime:           "12:00",
				Jobs:                []model.Job{{OnSite: "08:00", OffSite: "16:00"}},
			},
			want: 480,
		},
		{
			name: "weather is ignored",
			day: model.Day{
				Jobs:    []model.Job{{OnSite: "08:00", OffSite: "12:00"}},
				Weather: []model.WeatherDelay{{Type: "Rain", Start: "09:00", Finish: "11:00"}},
			},
			want: 240,
		},
		{
			name: "overnight job",
			day:  model.Day{Jobs: []model.Job{{OnSite: "22:00", OffSite: "06:00"}}},
			want: 480,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timecalc.DayTotalMinutes(tt.day)
			if got != tt.want {
				t.Errorf("DayTotalMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayTotalMinutesNeverNegative(t *testing.T) {
	clocks := []string{"", "00:00", "00:10", "12:00", "23:45", "bad"}
	for _, s := range clocks {
		for _, e := range clocks {
			for _, lunch := range []bool{false, true} {
				day := model.Day{
					DepotStart:  s,
					DepotFinish: e,
					LunchTaken:  lunch,
					Jobs:        []model.Job{{OnSite: e, OffSite: s}},
				}
				if got := timecalc.DayTotalMinutes(day); got < 0 {
					t.Errorf("DayTotalMinutes(%+v) = %d, want >= 0", day, got)
				}
			}
		}
	}
}

func TestDefaultWeekRoundTrip(t *testing.T) {
	w := model.NewWeek(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC))
	w.Days[0].Jobs[0] = model.Job{OnSite: "07:00", OffSite: "15:30"}

	got := timecalc.DayTotalMinutes(w.Days[0])
	if got != 510 {
		t.Fatalf("DayTotalMinutes = %d, want 510", got)
	}
	if s := timecalc.FormatHours(got); s != "8.50" {
		t.Errorf("FormatHours = %q, want %q", s, "8.50")
	}
	if total := timecalc.WeekTotalMinutes(w); total != 510 {
		t.Errorf("WeekTotalMinutes = %d, want 510", total)
	}
}

func TestAllowanceTotalMinutes(t *testing.T) {
	rows := []model.AllowanceRow{
		{Start: "07:00", Finish: "08:00"},
		{Start: "23:00", Finish: "00:30"},
		{},
	}
	if got := timecalc.AllowanceTotalMinutes(rows); got != 150 {
		t.Errorf("AllowanceTotalMinutes = %d, want 150", got)
	}
}

func TestWeekRange(t *testing.T) {
	w := model.Week{Meta: model.Meta{WeekEndingDate: "2026-03-01"}}
	monday, sunday, ok := timecalc.WeekRange(w, time.UTC)
	if !ok {
		t.Fatal("WeekRange: expected ok")
	}

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}

	if _, _, ok := timecalc.WeekRange(model.Week{}, time.UTC); ok {
		t.Error("WeekRange: expected !ok for a week without date")
	}
}

func TestDayIndex(t *testing.T) {
	w := model.Week{Meta: model.Meta{WeekEndingDate: "2026-03-01"}}

	i, ok := timecalc.DayIndex(w, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	if !ok || i != 4 {
		t.Errorf("DayIndex friday = %d, %v; want 4, true", i, ok)
	}
	if _, ok := timecalc.DayIndex(w, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)); ok {
		t.Error("DayIndex: expected date after the week to be outside")
	}
}
