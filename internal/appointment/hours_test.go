package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLessonHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "single lesson", start: "09:00", end: "09:45", want: 1.00},
		{name: "double lesson", start: "09:00", end: "10:30", want: 2.00},
		{name: "uneven range rounds", start: "09:00", end: "10:00", want: 1.33},
		{name: "overnight wrap", start: "23:30", end: "00:15", want: 1.00},
		{name: "wrap just before midnight", start: "23:00", end: "00:30", want: 2.00},
		{name: "zero duration", start: "09:00", end: "09:00", want: 0},
		{name: "unpadded hour", start: "9:00", end: "9:45", want: 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LessonHours(tt.start, tt.end), 0.001)
		})
	}
}
