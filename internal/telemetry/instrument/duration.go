package instrument

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// maxSeconds keeps the hundredths count within int64.
const maxSeconds = 9e16

// FormatDuration renders d as hours, minutes and seconds, e.g. "1h 1m 1.00s".
//
// d is rounded to hundredths of a second. Zero hours and minutes are
// omitted, and seconds are omitted when they are zero and a higher unit is
// shown. Negative durations format as zero.
func FormatDuration(d time.Duration) string {
	return FormatSeconds(d.Seconds())
}

// FormatSeconds is FormatDuration for a number of seconds.
func FormatSeconds(seconds float64) string {
	switch {
	case math.IsNaN(seconds) || seconds < 0:
		seconds = 0
	case seconds > maxSeconds:
		seconds = maxSeconds
	}
	centis := int64(math.Round(seconds * 100))

	hours := centis / 360000
	centis %= 360000
	minutes := centis / 6000
	centis %= 6000

	var parts []string
	if hours > 0 {
		parts = append(parts, strconv.FormatInt(hours, 10)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.FormatInt(minutes, 10)+"m")
	}
	if centis > 0 || (hours == 0 && minutes == 0) {
		parts = append(parts, strconv.FormatFloat(float64(centis)/100, 'f', 2, 64)+"s")
	}
	return strings.Join(parts, " ")
}
