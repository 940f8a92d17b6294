package evaluate

import "github.com/Sumatoshi-tech/evalmetrics/pkg/vector"

// Metric names, in report column order.
const (
	NameThreshold   = "threshold"
	NameAccuracy    = "accuracy"
	NameRecall      = "recall"
	NameSpecificity = "specificity"
	NamePrecision   = "precision"
	NameF1Score     = "f1_score"
	NameDeviance    = "deviance"
	NameMSE         = "mse"
	NameRMSE        = "rmse"
)

// HardMetricNames lists the metrics derived from a confusion matrix, in order.
var HardMetricNames = []string{NameAccuracy, NameRecall, NameSpecificity, NamePrecision, NameF1Score}

// ScoredMetricNames lists the metrics reported for thresholded scores, in order.
var ScoredMetricNames = append(append([]string(nil), HardMetricNames...), NameDeviance)

// NamedValue is one metric in an ordered report.
type NamedValue struct {
	Name  string
	Value float64
}

// Metrics are the confusion-matrix-derived scores of a hard-label evaluation.
type Metrics struct {
	Accuracy    float64         `json:"accuracy"    yaml:"accuracy"`
	Recall      float64         `json:"recall"      yaml:"recall"`
	Specificity float64         `json:"specificity" yaml:"specificity"`
	Precision   float64         `json:"precision"   yaml:"precision"`
	F1Score     float64         `json:"f1_score"    yaml:"f1_score"`
	Confusion   ConfusionMatrix `json:"confusion"   yaml:"confusion"`
}

// Values returns the metrics in [HardMetricNames] order.
func (m Metrics) Values() []NamedValue {
	return []NamedValue{
		{Name: NameAccuracy, Value: m.Accuracy},
		{Name: NameRecall, Value: m.Recall},
		{Name: NameSpecificity, Value: m.Specificity},
		{Name: NamePrecision, Value: m.Precision},
		{Name: NameF1Score, Value: m.F1Score},
	}
}

// ScoredMetrics are hard-label metrics at one threshold plus the deviance of the raw scores.
type ScoredMetrics struct {
	Metrics `yaml:",inline"`

	Deviance float64 `json:"deviance" yaml:"deviance"`
}

// Values returns the metrics in [ScoredMetricNames] order.
func (s ScoredMetrics) Values() []NamedValue {
	return append(s.Metrics.Values(), NamedValue{Name: NameDeviance, Value: s.Deviance})
}

// EvaluateHard scores hard predictions against actual labels.
//
// Both vectors are coerced independently with [vector.ToBooleanMask]. Ratios
// with a zero denominator are NaN rather than an error.
func EvaluateHard(predicted, actual vector.Vector, opts ...Option) Metrics {
	o := newOptions(opts)

	return evaluateMasks(
		vector.ToBooleanMask(predicted, o.positive),
		vector.ToBooleanMask(actual, o.positive),
	)
}

func evaluateMasks(predicted, actual vector.Boolean) Metrics {
	cm := NewConfusionMatrix(predicted, actual)

	return Metrics{
		Accuracy:    cm.Accuracy(),
		Recall:      cm.Recall(),
		Specificity: cm.Specificity(),
		Precision:   cm.Precision(),
		F1Score:     cm.F1(),
		Confusion:   cm,
	}
}
