package progress

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want string
	}{
		{"zero", 0, "0 B"},
		{"bytes render without a decimal", 512, "512 B"},
		{"single byte", 1, "1 B"},
		{"just below a kilobyte", 1023, "1023 B"},
		{"exact kilobyte", 1024, "1.0 KB"},
		{"partial kilobyte", 1536, "1.5 KB"},
		{"megabytes", 10 * 1024 * 1024, "10.0 MB"},
		{"fractional megabytes", 25*1024*1024 + 512*1024, "25.5 MB"},
		{"gigabytes", 4 * 1024 * 1024 * 1024, "4.0 GB"},
		{"beyond gigabytes stays in GB", 2 * 1024 * 1024 * 1024 * 1024, "2048.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.size))
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00"},
		{"seconds only", 42, "00:42"},
		{"minutes and seconds", 90, "01:30"},
		{"over an hour keeps minutes", 3700, "61:40"},
		{"negative", -1, "--:--"},
		{"positive infinity", math.Inf(1), "--:--"},
		{"negative infinity", math.Inf(-1), "--:--"},
		{"not a number", math.NaN(), "--:--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.seconds))
		})
	}
}

func TestBar(t *testing.T) {
	empty := Bar(0)
	assert.Equal(t, "["+strings.Repeat("░", BarWidth)+"] 0.0%", empty)

	full := Bar(100)
	assert.Equal(t, "["+strings.Repeat("█", BarWidth)+"] 100.0%", full)

	partial := Bar(42)
	assert.Equal(t, 8, strings.Count(partial, "█"))
	assert.Equal(t, BarWidth-8, strings.Count(partial, "░"))
	assert.Contains(t, partial, "42.0%")

	over := Bar(150)
	assert.Equal(t, BarWidth, strings.Count(over, "█"))
}
