package cmd

import (
	"testing"
	"time"

	"github.com/Tiliavir/timesheet/internal/model"
)

func TestRemoveJob(t *testing.T) {
	d := model.NewDay()
	d.Jobs = []model.Job{{ProjectName: "A"}, {ProjectName: "B"}, {ProjectName: "C"}}

	if err := removeJob(&d, 2); err != nil {
		t.Fatalf("removeJob: %v", err)
	}
	if len(d.Jobs) != 2 || d.Jobs[0].ProjectName != "A" || d.Jobs[1].ProjectName != "C" {
		t.Errorf("Jobs = %+v, want A, C", d.Jobs)
	}

	for _, n := range []int{0, 3, -1} {
		if err := removeJob(&d, n); err == nil {
			t.Errorf("removeJob(%d) succeeded, want error", n)
		}
	}
}

func TestCheckClock(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"07:30", false},
		{"23:59", false},
		{"7.30", true},
		{"25:00", true},
		{"noon", true},
	}
	for _, tt := range tests {
		err := checkClock("on", tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkClock(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestAllowanceTable(t *testing.T) {
	w := model.NewWeek(time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC))

	rows, title, err := allowanceTable(&w, "Spray")
	if err != nil {
		t.Fatalf("allowanceTable(spray): %v", err)
	}
	if title != "Spray allowance" {
		t.Errorf("title = %q", title)
	}
	rows[2].UnitNo = "U7"
	if w.SprayAllowance[2].UnitNo != "U7" {
		t.Error("spray rows do not alias the week's table")
	}

	if _, title, err := allowanceTable(&w, "wet"); err != nil || title != "Wet hours" {
		t.Errorf("allowanceTable(wet) = %q, %v", title, err)
	}
	if _, _, err := allowanceTable(&w, "snow"); err == nil {
		t.Error("allowanceTable(snow) succeeded, want error")
	}
}

func TestWeekdayArg(t *testing.T) {
	if i, err := weekdayArg("wed"); err != nil || i != 2 {
		t.Errorf("weekdayArg(wed) = %d, %v; want 2", i, err)
	}
	if _, err := weekdayArg("someday"); err == nil {
		t.Error("weekdayArg(someday) succeeded, want error")
	}
}
