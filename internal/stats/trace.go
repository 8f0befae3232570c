package stats

import (
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// TraceWindow is the smoothing window, in samples, for SpeedTrace.
const TraceWindow = 3

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(len(sparkChars)-1, idx))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// SpeedTrace renders per-second WPM samples as a smoothed sparkline no wider
// than width; longer traces keep their most recent samples.
func SpeedTrace(samples []int, width int) string {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s)
	}
	values = MovingAverage(values, TraceWindow)
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	return Sparkline(values)
}
