package search

import (
	"fmt"
	"math"
)

// FormatHour renders a timetable hour as "HH:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatDuration renders fractional hours as "2h 6m".
func FormatDuration(hours float64) string {
	minutes := int(math.Round(hours * 60))
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func FormatStops(stops int) string {
	switch {
	case stops <= 0:
		return "Non-stop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
