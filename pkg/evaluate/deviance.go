package evaluate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/vector"
)

// Deviance returns the mean binomial deviance of probabilities against actual labels:
//
//	-2 * mean(y*log(p+tiny) + (1-y)*log(1-p+tiny))
//
// actual is coerced with [vector.ToBooleanMask]. tiny defaults to [DefaultTiny]
// and is added inside both logarithms. Probabilities outside [0, 1] yield NaN.
func Deviance(prob []float64, actual vector.Vector, opts ...Option) float64 {
	o := newOptions(opts)

	return deviance(prob, vector.ToBooleanMask(actual, o.positive), o.tiny)
}

func deviance(prob []float64, actual vector.Boolean, tiny float64) float64 {
	terms := make([]float64, len(actual))

	for i, positive := range actual {
		y := 0.0
		if positive {
			y = 1
		}

		p := prob[i]
		terms[i] = y*math.Log(p+tiny) + (1-y)*math.Log(1-p+tiny)
	}

	return -2 * stat.Mean(terms, nil)
}
