package timecalc

import (
	"time"

	"github.com/Tiliavir/timesheet/internal/model"
)

// WeekRange returns 00:00 of the Monday and 23:59:59 of the Sunday of week,
// in loc. ok is false when the week has no usable week ending date.
func WeekRange(week model.Week, loc *time.Location) (time.Time, time.Time, bool) {
	monday, ok := week.DayDate(0)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	sunday, _ := week.DayDate(len(model.Weekdays) - 1)
	from := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
	return from, EndOfDay(time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, loc)), true
}

// DayIndex returns the position of t's calendar date within week.
func DayIndex(week model.Week, t time.Time) (int, bool) {
	for i := range model.Weekdays {
		d, ok := week.DayDate(i)
		if !ok {
			return 0, false
		}
		if d.Year() == t.Year() && d.Month() == t.Month() && d.Day() == t.Day() {
			return i, true
		}
	}
	return 0, false
}

// ClockString formats t as an "HH:MM" clock value.
func ClockString(t time.Time) string {
	return t.Format("15:04")
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
