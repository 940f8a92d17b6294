package evaluate

import "github.com/Sumatoshi-tech/evalmetrics/pkg/vector"

// ReportKind identifies which branch of [Evaluate] produced a report.
type ReportKind int

// Report kinds.
const (
	// ReportHard holds hard-label metrics; the predictions carried no scores.
	ReportHard ReportKind = iota
	// ReportScored holds metrics at a single threshold plus deviance.
	ReportScored
	// ReportTable holds one row of scored metrics per threshold.
	ReportTable
)

// String returns the lowercase kind name.
func (k ReportKind) String() string {
	switch k {
	case ReportHard:
		return "hard"
	case ReportScored:
		return "scored"
	case ReportTable:
		return "table"
	default:
		return "unknown"
	}
}

// Report is the result of [Evaluate]. Exactly one of Hard, Scored or Table is set,
// as indicated by Kind.
type Report struct {
	Kind   ReportKind
	Hard   *Metrics
	Scored *ScoredMetrics
	Table  *ThresholdTable
}

// Evaluate scores predictions against actual labels.
//
// Integer, boolean and categorical predictions are already hard labels and are
// scored with [EvaluateHard] alone. Numeric predictions are treated as
// probabilities: with a single threshold (the default, or [WithThreshold]) they
// are binarized at it and the deviance of the raw probabilities is added; with
// [WithThresholds] every threshold yields one row of a [ThresholdTable].
func Evaluate(predictions, actual vector.Vector, opts ...Option) Report {
	o := newOptions(opts)
	actualMask := vector.ToBooleanMask(actual, o.positive)

	scores, ok := predictions.(vector.Numeric)
	if !ok {
		hard := evaluateMasks(vector.ToBooleanMask(predictions, o.positive), actualMask)

		return Report{Kind: ReportHard, Hard: &hard}
	}

	if !o.sweep {
		single := evaluateAt(scores, actualMask, o.thresholds[0], o.tiny)

		return Report{Kind: ReportScored, Scored: &single}
	}

	rows := make([]ThresholdRow, 0, len(o.thresholds))
	for _, threshold := range o.thresholds {
		rows = append(rows, ThresholdRow{
			Threshold:     threshold,
			ScoredMetrics: evaluateAt(scores, actualMask, threshold, o.tiny),
		})
	}

	table := NewThresholdTable(rows)

	return Report{Kind: ReportTable, Table: &table}
}

// EvaluateAt scores probabilities at a single threshold and adds their deviance.
func EvaluateAt(scores vector.Numeric, actual vector.Vector, threshold float64, opts ...Option) ScoredMetrics {
	o := newOptions(opts)

	return evaluateAt(scores, vector.ToBooleanMask(actual, o.positive), threshold, o.tiny)
}

func evaluateAt(scores vector.Numeric, actual vector.Boolean, threshold, tiny float64) ScoredMetrics {
	return ScoredMetrics{
		Metrics:  evaluateMasks(vector.Binarize(scores, threshold), actual),
		Deviance: deviance(scores, actual, tiny),
	}
}

// Values returns the named metrics of a hard or scored report, nil for a table.
func (r Report) Values() []NamedValue {
	switch r.Kind {
	case ReportHard:
		return r.Hard.Values()
	case ReportScored:
		return r.Scored.Values()
	default:
		return nil
	}
}
