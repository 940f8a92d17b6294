package observability

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricEvaluationsTotal   = "evalmetrics.evaluations.total"
	metricEvaluationDuration = "evalmetrics.evaluation.duration.seconds"
	metricSamples            = "evalmetrics.samples"
	metricDegenerateTotal    = "evalmetrics.degenerate.total"

	attrOp     = "op"
	attrBranch = "branch"
	attrMetric = "metric"
)

// durationBucketBoundaries covers 10µs to 1s; evaluations are in-memory passes
// over a few vectors.
var durationBucketBoundaries = []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// sampleBucketBoundaries covers single-digit test vectors up to ten million samples.
var sampleBucketBoundaries = []float64{10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000}

// EvalMetrics holds the OTel instruments recorded around metric computations.
type EvalMetrics struct {
	evaluationsTotal   metric.Int64Counter
	evaluationDuration metric.Float64Histogram
	samples            metric.Int64Histogram
	degenerateTotal    metric.Int64Counter
}

// Evaluation describes one completed metric computation.
type Evaluation struct {
	// Op is the command or API that ran (e.g. "evaluate", "regress").
	Op string

	// Branch is the evaluation path taken (e.g. "hard", "scored", "table").
	Branch string

	// Samples is the vector length.
	Samples int

	// Duration is the wall time of the computation.
	Duration time.Duration

	// Values are the resulting metric values. NaN and Inf are counted as degenerate.
	Values []MetricValue
}

// MetricValue is one named metric result. Names may repeat, e.g. across the
// rows of a threshold table.
type MetricValue struct {
	Name  string
	Value float64
}

// NewEvalMetrics creates evaluation metric instruments from the given meter.
func NewEvalMetrics(mt metric.Meter) (*EvalMetrics, error) {
	evalTotal, err := mt.Int64Counter(metricEvaluationsTotal,
		metric.WithDescription("Total number of metric evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEvaluationsTotal, err)
	}

	evalDuration, err := mt.Float64Histogram(metricEvaluationDuration,
		metric.WithDescription("Evaluation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricEvaluationDuration, err)
	}

	samples, err := mt.Int64Histogram(metricSamples,
		metric.WithDescription("Number of samples per evaluation"),
		metric.WithUnit("{sample}"),
		metric.WithExplicitBucketBoundaries(sampleBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSamples, err)
	}

	degenerate, err := mt.Int64Counter(metricDegenerateTotal,
		metric.WithDescription("Metric values that came out NaN or infinite"),
		metric.WithUnit("{value}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDegenerateTotal, err)
	}

	return &EvalMetrics{
		evaluationsTotal:   evalTotal,
		evaluationDuration: evalDuration,
		samples:            samples,
		degenerateTotal:    degenerate,
	}, nil
}

// RecordEvaluation records a completed evaluation and returns how many of its
// values were degenerate. Safe to call on a nil receiver (no-op, still counts).
func (em *EvalMetrics) RecordEvaluation(ctx context.Context, ev Evaluation) int {
	degenerate := 0

	for _, mv := range ev.Values {
		if !math.IsNaN(mv.Value) && !math.IsInf(mv.Value, 0) {
			continue
		}

		degenerate++

		if em != nil {
			em.degenerateTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String(attrOp, ev.Op),
				attribute.String(attrMetric, mv.Name),
			))
		}
	}

	if em == nil {
		return degenerate
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOp, ev.Op),
		attribute.String(attrBranch, ev.Branch),
	)

	em.evaluationsTotal.Add(ctx, 1, attrs)
	em.evaluationDuration.Record(ctx, ev.Duration.Seconds(), attrs)
	em.samples.Record(ctx, int64(ev.Samples), attrs)

	return degenerate
}
