package timecalc

import "github.com/Tiliavir/timesheet/internal/model"

// LunchDeductionMinutes is removed from a day's total when lunch was taken.
const LunchDeductionMinutes = 30

// SumJobMinutes adds up the on-site intervals of jobs.
func SumJobMinutes(jobs []model.Job) int {
	total := 0
	for _, j := range jobs {
		total += IntervalMinutes(j.OnSite, j.OffSite)
	}
	return total
}

// DayTotalMinutes returns the worked minutes of a day: the larger of the
// summed job intervals and the depot span, less lunch, never negative.
// Lunch penalty and lunch time are descriptive and do not count.
func DayTotalMinutes(day model.Day) int {
	jobMins := SumJobMinutes(day.Jobs)
	depotMins := IntervalMinutes(day.DepotStart, day.DepotFinish)
	total := max(jobMins, depotMins)
	if day.LunchTaken {
		total -= LunchDeductionMinutes
	}
	return max(0, total)
}

// WeekTotalMinutes sums DayTotalMinutes over the week.
func WeekTotalMinutes(week model.Week) int {
	total := 0
	for _, d := range week.Days {
		total += DayTotalMinutes(d)
	}
	return total
}

// AllowanceTotalMinutes sums the intervals of an allowance table. It is
// informational and never part of the work total.
func AllowanceTotalMinutes(rows []model.AllowanceRow) int {
	total := 0
	for _, r := range rows {
		total += IntervalMinutes(r.Start, r.Finish)
	}
	return total
}
