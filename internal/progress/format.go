package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// BarWidth is the number of cells in a rendered progress bar.
const BarWidth = 20

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count using base-1024 units, rounded to two
// decimal places. Zero renders as "0 B".
func FormatSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "0 B"
	}
	i := int(math.Floor(math.Log(float64(sizeBytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	if i == 0 {
		// Byte counts are exact integers, no decimal.
		return fmt.Sprintf("%d B", sizeBytes)
	}
	s := math.Round(float64(sizeBytes)/math.Pow(1024, float64(i))*100) / 100
	return fmt.Sprintf("%s %s", trimFloat(s), sizeUnits[i])
}

// trimFloat formats a rounded value without trailing zeros but always keeps
// at least one decimal for whole numbers ("1.0 KB").
func trimFloat(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// FormatClock renders a duration as zero-padded MM:SS. Negative, infinite or
// NaN durations render as the "--:--" placeholder.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return "--:--"
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Bar renders a fixed-width progress bar for a percentage in [0, 100].
func Bar(percentage float64) string {
	filled := int(percentage / 100 * BarWidth)
	if filled > BarWidth {
		filled = BarWidth
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("[%s%s] %.1f%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", BarWidth-filled),
		percentage)
}

// FormatDuration renders an elapsed wall-clock duration with one decimal,
// used in transition status messages ("12.3s").
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
