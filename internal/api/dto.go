package api

import (
	"time"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WeekView is a week together with its computed totals.
type WeekView struct {
	Week                model.Week `json:"week"`
	DayHours            []string   `json:"dayHours"`
	WeeklyTotal         string     `json:"weeklyTotal"`
	SprayAllowanceHours string     `json:"sprayAllowanceHours"`
	WetHours            string     `json:"wetHours"`
}

func NewWeekView(w model.Week) WeekView {
	v := WeekView{
		Week:                w,
		DayHours:            make([]string, len(model.Weekdays)),
		WeeklyTotal:         timecalc.FormatHours(timecalc.WeekTotalMinutes(w)),
		SprayAllowanceHours: timecalc.FormatHours(timecalc.AllowanceTotalMinutes(w.SprayAllowance)),
		WetHours:            timecalc.FormatHours(timecalc.AllowanceTotalMinutes(w.WetHours)),
	}
	for i := range model.Weekdays {
		v.DayHours[i] = timecalc.FormatHours(timecalc.DayTotalMinutes(w.Day(i)))
	}
	return v
}

// HistoryItem is one line of the saved-week listing.
type HistoryItem struct {
	ID         string     `json:"id"`
	Employee   string     `json:"employee"`
	WeekEnding string     `json:"weekEnding"`
	SavedAt    *time.Time `json:"savedAt,omitempty"`
	Hours      string     `json:"hours"`
}

func NewHistoryItems(history []model.Week) []HistoryItem {
	items := make([]HistoryItem, len(history))
	for i, w := range history {
		items[i] = HistoryItem{
			ID:         w.ID,
			Employee:   w.Meta.EmployeeName,
			WeekEnding: w.Meta.WeekEndingDate,
			SavedAt:    w.SavedAt,
			Hours:      timecalc.FormatHours(timecalc.WeekTotalMinutes(w)),
		}
	}
	return items
}
