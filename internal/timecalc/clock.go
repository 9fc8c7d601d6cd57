package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// minutesPerDay is added to the end of an interval that crosses midnight.
const minutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" clock string into minutes since midnight.
// ok is false for empty or non-numeric input. A blank component counts as
// zero (":30" is 30, "07:" is 420) and components are not range checked:
// "25:99" yields 1599.
func ParseClock(s string) (minutes int, ok bool) {
	if s == "" {
		return 0, false
	}
	// Anything after a second colon is ignored.
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, ok := clockComponent(parts[0])
	if !ok {
		return 0, false
	}
	m, ok := clockComponent(parts[1])
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

func clockComponent(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// IntervalMinutes returns the minutes from start to end. An end earlier than
// start is taken to cross midnight exactly once. Either endpoint absent gives 0.
func IntervalMinutes(start, end string) int {
	s, ok := ParseClock(start)
	if !ok {
		return 0
	}
	e, ok := ParseClock(end)
	if !ok {
		return 0
	}
	if e < s {
		e += minutesPerDay
	}
	return max(0, e-s)
}

// FormatHours renders minutes as decimal hours, e.g. 510 -> "8.50".
// The fraction is the rounded percentage of the remaining hour.
func FormatHours(minutes int) string {
	safe := max(0, minutes)
	h := safe / 60
	m := safe % 60
	frac := int(math.Round(float64(m) / 60 * 100))
	return fmt.Sprintf("%d.%02d", h, frac)
}

// ClockOptions returns the quarter-hour values offered by time pickers.
func ClockOptions() []string {
	out := make([]string, 0, 96)
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 15, 30, 45} {
			out = append(out, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return out
}
