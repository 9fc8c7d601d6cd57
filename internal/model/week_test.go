package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timesheet/internal/model"
)

func TestNewWeekShape(t *testing.T) {
	// 2026-02-27 is a Friday.
	w := model.NewWeek(time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-03-01", w.Meta.WeekEndingDate)
	require.Len(t, w.Days, 7)
	assert.Len(t, w.SprayAllowance, 7)
	assert.Len(t, w.WetHours, 7)
	for i, d := range w.Days {
		require.Len(t, d.Jobs, 1, "day %d", i)
		assert.True(t, d.Jobs[0].IsBlank())
		assert.Empty(t, d.Weather)
		assert.True(t, d.IsEmpty())
	}
	assert.Empty(t, w.ID)
	assert.Nil(t, w.SavedAt)
}

func TestWeekEnding(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday", time.Date(2026, 2, 23, 8, 0, 0, 0, time.UTC), "2026-03-01"},
		{"saturday", time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC), "2026-03-01"},
		{"sunday is its own week ending", time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC), "2026-03-01"},
		{"across year end", time.Date(2025, 12, 30, 12, 0, 0, 0, time.UTC), "2026-01-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.WeekEnding(tt.in).Format(model.DateLayout)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayDate(t *testing.T) {
	w := model.Week{Meta: model.Meta{WeekEndingDate: "2026-03-01"}}

	monday, ok := w.DayDate(0)
	require.True(t, ok)
	assert.Equal(t, "2026-02-23", monday.Format(model.DateLayout))

	sunday, ok := w.DayDate(6)
	require.True(t, ok)
	assert.Equal(t, "2026-03-01", sunday.Format(model.DateLayout))

	w.Meta.WeekEndingDate = ""
	_, ok = w.DayDate(0)
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	w := model.NewWeek(time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC))
	w.Days[0].Jobs[0] = model.Job{ProjectName: "Fencing", OnSite: "07:00", OffSite: "15:30"}
	w.Days[0].Weather = append(w.Days[0].Weather, model.WeatherDelay{Type: "Rain"})

	c := w.Clone()
	c.Days[0].Jobs[0].ProjectName = "Changed"
	c.Days[0].Weather[0].Type = "Hail"
	c.SprayAllowance[0].UnitNo = "U1"

	assert.Equal(t, "Fencing", w.Days[0].Jobs[0].ProjectName)
	assert.Equal(t, "Rain", w.Days[0].Weather[0].Type)
	assert.Empty(t, w.SprayAllowance[0].UnitNo)
}

func TestWeekDayOutOfRange(t *testing.T) {
	w := model.Week{Days: []model.Day{{Remarks: "only"}}}
	assert.Equal(t, "only", w.Day(0).Remarks)
	assert.Equal(t, model.Day{}, w.Day(3))
	assert.Equal(t, model.AllowanceRow{}, model.Allowance(nil, 2))
}

func TestDayIsEmpty(t *testing.T) {
	assert.True(t, model.NewDay().IsEmpty())
	assert.False(t, model.Day{DepotStart: "06:00"}.IsEmpty())
	assert.False(t, model.Day{Jobs: []model.Job{{ProjectName: "X"}}}.IsEmpty())
	assert.False(t, model.Day{Weather: []model.WeatherDelay{{}}}.IsEmpty())
	assert.True(t, model.Day{Remarks: "   "}.IsEmpty())
	// Lunch flags alone are not listed.
	assert.True(t, model.Day{LunchTaken: true}.IsEmpty())
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"mon", 0, true},
		{"Monday", 0, true},
		{"1", 0, true},
		{"sun", 6, true},
		{"7", 6, true},
		{"thu", 3, true},
		{"8", 0, false},
		{"0", 0, false},
		{"mo", 0, false},
		{"", 0, false},
		{"funday", 0, false},
	}
	for _, tt := range tests {
		got, ok := model.ParseWeekday(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseWeekday(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDayAddJobFillsBlankDefault(t *testing.T) {
	d := model.NewDay()
	d.AddJob(model.Job{ProjectName: "Fencing", OnSite: "07:00", OffSite: "11:00"})
	require.Len(t, d.Jobs, 1)
	assert.Equal(t, "Fencing", d.Jobs[0].ProjectName)

	d.AddJob(model.Job{ProjectName: "Paving"})
	require.Len(t, d.Jobs, 2)
	assert.Equal(t, "Paving", d.Jobs[1].ProjectName)
}

func TestDayRemoveJob(t *testing.T) {
	d := model.Day{Jobs: []model.Job{{ProjectName: "A"}, {ProjectName: "B"}, {ProjectName: "C"}}}

	require.True(t, d.RemoveJob(1))
	assert.Equal(t, []model.Job{{ProjectName: "A"}, {ProjectName: "C"}}, d.Jobs)

	for _, i := range []int{-1, 2} {
		assert.False(t, d.RemoveJob(i), "index %d", i)
	}
	assert.Len(t, d.Jobs, 2)
}

func TestDayRemoveLastJobKeepsBlank(t *testing.T) {
	d := model.Day{Jobs: []model.Job{{ProjectName: "Only"}}}
	require.True(t, d.RemoveJob(0))
	require.Len(t, d.Jobs, 1)
	assert.True(t, d.Jobs[0].IsBlank())
}
