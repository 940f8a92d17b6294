// Package evaluate computes regression and binary-classification evaluation metrics.
//
// Every function is a pure computation over caller-supplied vectors. Inputs are
// not validated: vectors must be non-empty and of equal length. Degenerate
// inputs follow IEEE arithmetic rather than returning errors, so an empty
// vector or a zero-count denominator yields NaN or Inf and mismatched lengths
// fail with a runtime panic.
package evaluate

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MSE returns the mean of squared element-wise differences between predicted and actual.
// Empty input yields NaN.
func MSE(predicted, actual []float64) float64 {
	diff := make([]float64, len(predicted))
	floats.SubTo(diff, predicted, actual)

	return floats.Dot(diff, diff) / float64(len(diff))
}

// RMSE returns the square root of [MSE].
func RMSE(predicted, actual []float64) float64 {
	return math.Sqrt(MSE(predicted, actual))
}
