package appointment

import (
	"math"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60
	// The school bills driving time in 45-minute lesson hours.
	minutesPerLessonHour = 45
)

// LessonHours converts a wall-clock range into lesson hours, rounded to two
// decimals. An end time earlier than the start time is taken to be on the
// next calendar day, so overnight lessons work. Identical start and end
// yield 0, which callers must reject.
//
// Inputs are expected to be pre-validated HH:MM strings; this function has
// no failure mode of its own.
func LessonHours(startTime, endTime string) float64 {
	elapsed := clockMinutes(endTime) - clockMinutes(startTime)
	if elapsed < 0 {
		elapsed += minutesPerDay
	}
	return round2(float64(elapsed) / minutesPerLessonHour)
}

func clockMinutes(hhmm string) int {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0
	}
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
