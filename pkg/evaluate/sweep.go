package evaluate

import "math"

// MaxSweepThresholds caps the number of thresholds a sweep may produce.
const MaxSweepThresholds = 10_000

// SweepThresholds generates threshold values from minimum (inclusive) to maximum
// (exclusive) with the given step. Values are computed as minimum + i*step so
// rounding does not accumulate. A non-positive or non-finite step, non-finite
// bounds, or a sweep longer than MaxSweepThresholds yield no thresholds.
func SweepThresholds(minimum, maximum, step float64) []float64 {
	if !isFinite(minimum) || !isFinite(maximum) || !isFinite(step) {
		return nil
	}

	if step <= 0 || maximum <= minimum {
		return nil
	}

	span := math.Ceil((maximum - minimum) / step)
	if span > MaxSweepThresholds {
		return nil
	}

	count := int(span)
	thresholds := make([]float64, 0, count)

	for i := range count {
		t := minimum + float64(i)*step
		if t >= maximum {
			break
		}

		thresholds = append(thresholds, t)
	}

	return thresholds
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
