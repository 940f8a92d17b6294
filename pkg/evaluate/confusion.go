package evaluate

import "github.com/Sumatoshi-tech/evalmetrics/pkg/vector"

// ConfusionMatrix is the 2x2 partition of samples by predicted and actual class.
// Every sample falls into exactly one cell.
type ConfusionMatrix struct {
	TruePositives  int `json:"true_positives"  yaml:"true_positives"`
	TrueNegatives  int `json:"true_negatives"  yaml:"true_negatives"`
	FalsePositives int `json:"false_positives" yaml:"false_positives"`
	FalseNegatives int `json:"false_negatives" yaml:"false_negatives"`
}

// NewConfusionMatrix counts the cells from aligned boolean predictions and actuals.
func NewConfusionMatrix(predicted, actual vector.Boolean) ConfusionMatrix {
	notPredicted := vector.Not(predicted)
	notActual := vector.Not(actual)

	return ConfusionMatrix{
		TruePositives:  countBoth(predicted, actual),
		TrueNegatives:  countBoth(notPredicted, notActual),
		FalsePositives: countBoth(predicted, notActual),
		FalseNegatives: countBoth(notPredicted, actual),
	}
}

// countBoth sums the element-wise AND of two masks over the length of b.
func countBoth(a, b vector.Boolean) int {
	n := 0

	for i := range b {
		if a[i] && b[i] {
			n++
		}
	}

	return n
}

// Total returns the number of samples.
func (cm ConfusionMatrix) Total() int {
	return cm.TruePositives + cm.TrueNegatives + cm.FalsePositives + cm.FalseNegatives
}

// Positives returns the number of actually positive samples.
func (cm ConfusionMatrix) Positives() int { return cm.TruePositives + cm.FalseNegatives }

// Negatives returns the number of actually negative samples.
func (cm ConfusionMatrix) Negatives() int { return cm.TrueNegatives + cm.FalsePositives }

// PredictedPositives returns the number of samples predicted positive.
func (cm ConfusionMatrix) PredictedPositives() int { return cm.TruePositives + cm.FalsePositives }

// PredictedNegatives returns the number of samples predicted negative.
func (cm ConfusionMatrix) PredictedNegatives() int { return cm.TrueNegatives + cm.FalseNegatives }

// Accuracy returns (tp + tn) / total. NaN when there are no samples.
func (cm ConfusionMatrix) Accuracy() float64 {
	return ratio(cm.TruePositives+cm.TrueNegatives, cm.Total())
}

// Recall returns tp / positives. NaN when there are no actual positives.
func (cm ConfusionMatrix) Recall() float64 {
	return ratio(cm.TruePositives, cm.Positives())
}

// Specificity returns tn / negatives. NaN when there are no actual negatives.
func (cm ConfusionMatrix) Specificity() float64 {
	return ratio(cm.TrueNegatives, cm.Negatives())
}

// Precision returns tp / predicted positives. NaN when nothing is predicted positive.
func (cm ConfusionMatrix) Precision() float64 {
	return ratio(cm.TruePositives, cm.PredictedPositives())
}

// F1 returns the harmonic mean of precision and recall.
// NaN propagates from either input, and 0/0 when both are zero.
func (cm ConfusionMatrix) F1() float64 {
	precision := cm.Precision()
	recall := cm.Recall()

	return 2 * precision * recall / (precision + recall)
}

// ratio divides without guarding the denominator: 0/0 is NaN.
func ratio(num, den int) float64 {
	return float64(num) / float64(den)
}
