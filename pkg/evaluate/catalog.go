package evaluate

import (
	"github.com/Sumatoshi-tech/evalmetrics/pkg/metrics"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/vector"
)

// --- Input Data Types ---.

// RegressionInput is the input of the regression metrics.
type RegressionInput struct {
	Predicted []float64
	Actual    []float64
}

// ProbabilisticInput is the input of the deviance metric.
type ProbabilisticInput struct {
	Probabilities []float64
	Actual        vector.Boolean
	// Tiny is added inside both logarithms. Zero means no floor, so a
	// confidently wrong sample yields +Inf.
	Tiny float64
}

// NewProbabilisticInput reduces actual to a mask with positive as the positive
// category and applies the [DefaultTiny] floor.
func NewProbabilisticInput(prob []float64, actual vector.Vector, positive string) ProbabilisticInput {
	return ProbabilisticInput{
		Probabilities: prob,
		Actual:        vector.ToBooleanMask(actual, positive),
		Tiny:          DefaultTiny,
	}
}

// --- Metric Implementations ---.

// ScalarMetric is a metric whose output is a single real number.
type ScalarMetric[In any] struct {
	metrics.MetricMeta

	compute func(In) float64
}

// Compute calculates the metric value.
func (m *ScalarMetric[In]) Compute(input In) float64 {
	return m.compute(input)
}

// NewMSEMetric creates the mean squared error metric.
func NewMSEMetric() *ScalarMetric[RegressionInput] {
	return &ScalarMetric[RegressionInput]{
		MetricMeta: metrics.MetricMeta{
			MetricName:        NameMSE,
			MetricDisplayName: "Mean Squared Error",
			MetricDescription: "Mean of squared differences between predicted and actual values. " +
				"Non-negative; lower is better. NaN for empty input.",
			MetricType: metrics.TypeRegression,
		},
		compute: func(in RegressionInput) float64 { return MSE(in.Predicted, in.Actual) },
	}
}

// NewRMSEMetric creates the root mean squared error metric.
func NewRMSEMetric() *ScalarMetric[RegressionInput] {
	return &ScalarMetric[RegressionInput]{
		MetricMeta: metrics.MetricMeta{
			MetricName:        NameRMSE,
			MetricDisplayName: "Root Mean Squared Error",
			MetricDescription: "Square root of the mean squared error, in the units of the target. " +
				"Non-negative; lower is better.",
			MetricType: metrics.TypeRegression,
		},
		compute: func(in RegressionInput) float64 { return RMSE(in.Predicted, in.Actual) },
	}
}

// NewDevianceMetric creates the binomial deviance metric.
func NewDevianceMetric() *ScalarMetric[ProbabilisticInput] {
	return &ScalarMetric[ProbabilisticInput]{
		MetricMeta: metrics.MetricMeta{
			MetricName:        NameDeviance,
			MetricDisplayName: "Binomial Deviance",
			MetricDescription: "Twice the negative mean Bernoulli log-likelihood of the predicted probabilities. " +
				"Non-negative; lower means better calibrated predictions.",
			MetricType: metrics.TypeProbabilistic,
		},
		compute: func(in ProbabilisticInput) float64 { return deviance(in.Probabilities, in.Actual, in.Tiny) },
	}
}

func newConfusionMetric(name, display, description string, fn func(ConfusionMatrix) float64) *ScalarMetric[ConfusionMatrix] {
	return &ScalarMetric[ConfusionMatrix]{
		MetricMeta: metrics.MetricMeta{
			MetricName:        name,
			MetricDisplayName: display,
			MetricDescription: description,
			MetricType:        metrics.TypeClassification,
		},
		compute: fn,
	}
}

// NewAccuracyMetric creates the accuracy metric.
func NewAccuracyMetric() *ScalarMetric[ConfusionMatrix] {
	return newConfusionMetric(NameAccuracy, "Accuracy",
		"Share of samples whose predicted class matches the actual class. In [0, 1].",
		ConfusionMatrix.Accuracy)
}

// NewRecallMetric creates the recall metric.
func NewRecallMetric() *ScalarMetric[ConfusionMatrix] {
	return newConfusionMetric(NameRecall, "Recall",
		"Share of actual positives predicted positive (sensitivity). NaN when there are no actual positives.",
		ConfusionMatrix.Recall)
}

// NewSpecificityMetric creates the specificity metric.
func NewSpecificityMetric() *ScalarMetric[ConfusionMatrix] {
	return newConfusionMetric(NameSpecificity, "Specificity",
		"Share of actual negatives predicted negative. NaN when there are no actual negatives.",
		ConfusionMatrix.Specificity)
}

// NewPrecisionMetric creates the precision metric.
func NewPrecisionMetric() *ScalarMetric[ConfusionMatrix] {
	return newConfusionMetric(NamePrecision, "Precision",
		"Share of predicted positives that are actually positive. NaN when nothing is predicted positive.",
		ConfusionMatrix.Precision)
}

// NewF1Metric creates the F1 score metric.
func NewF1Metric() *ScalarMetric[ConfusionMatrix] {
	return newConfusionMetric(NameF1Score, "F1 Score",
		"Harmonic mean of precision and recall. NaN when either is undefined.",
		ConfusionMatrix.F1)
}

// NewCatalog returns a registry holding every evaluation metric.
func NewCatalog() *metrics.Registry {
	r := metrics.NewRegistry()

	metrics.Register(r, NewMSEMetric())
	metrics.Register(r, NewRMSEMetric())
	metrics.Register(r, NewDevianceMetric())
	metrics.Register(r, NewAccuracyMetric())
	metrics.Register(r, NewRecallMetric())
	metrics.Register(r, NewSpecificityMetric())
	metrics.Register(r, NewPrecisionMetric())
	metrics.Register(r, NewF1Metric())

	return r
}
