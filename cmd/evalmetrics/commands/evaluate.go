package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
)

const opEvaluate = "evaluate"

// ErrMissingVectors is returned when a required vector flag is empty.
var ErrMissingVectors = errors.New("both --predictions and --actual are required")

// EvaluateCommand holds the flags of the evaluate command.
type EvaluateCommand struct {
	predictions     string
	actual          string
	predictionsKind string
	actualKind      string
	positive        string
	thresholds      []float64
	sweep           string
	format          string
	threshold       float64

	initFn observabilityInit
}

// NewEvaluateCommand creates the evaluate command.
func NewEvaluateCommand() *cobra.Command {
	return newEvaluateCommandWithDeps(observability.Init)
}

func newEvaluateCommandWithDeps(initFn observabilityInit) *cobra.Command {
	ec := &EvaluateCommand{initFn: initFn}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score binary predictions against actual labels",
		Long: `Score binary predictions against actual labels.

Integer, boolean and categorical predictions are hard labels and yield
accuracy, recall, specificity, precision and F1. Numeric predictions are
probabilities: they are binarized at a threshold and the deviance of the raw
probabilities is added. Several thresholds produce one row per threshold.`,
		Example: `  evalmetrics evaluate --predictions 0.9,0.4,0.2,0.8 --actual 1,0,0,1
  evalmetrics evaluate --predictions y,n,n --actual y,y,n --positive y
  evalmetrics evaluate --predictions 0.9,0.4,0.2,0.8 --actual 1,0,0,1 --sweep 0.1:1:0.1`,
		Args: cobra.NoArgs,
		RunE: ec.run,
	}

	cmd.Flags().StringVarP(&ec.predictions, "predictions", "p", "", "Comma-separated predictions or probabilities")
	cmd.Flags().StringVarP(&ec.actual, "actual", "a", "", "Comma-separated actual labels")
	cmd.Flags().StringVar(&ec.predictionsKind, "predictions-kind", KindAuto,
		"Predictions kind: auto, numeric, integer, boolean, categorical")
	cmd.Flags().StringVar(&ec.actualKind, "actual-kind", KindAuto,
		"Actual labels kind: auto, numeric, integer, boolean, categorical")
	cmd.Flags().StringVar(&ec.positive, "positive", "", "Positive category for categorical labels (default from config)")
	cmd.Flags().Float64Var(&ec.threshold, "threshold", evaluate.DefaultThreshold, "Single decision threshold")
	cmd.Flags().Float64SliceVar(&ec.thresholds, "thresholds", nil, "Decision thresholds, one table row each")
	cmd.Flags().StringVar(&ec.sweep, "sweep", "", "Threshold sweep as min:max:step over [min, max)")
	addFormatFlag(cmd, &ec.format)

	cmd.MarkFlagsMutuallyExclusive("threshold", "thresholds", "sweep")

	return cmd
}

func (ec *EvaluateCommand) run(cmd *cobra.Command, _ []string) error {
	if ec.predictions == "" || ec.actual == "" {
		return ErrMissingVectors
	}

	predictions, err := ParseVector(ec.predictions, ec.predictionsKind)
	if err != nil {
		return fmt.Errorf("predictions: %w", err)
	}

	actual, err := ParseVector(ec.actual, ec.actualKind)
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}

	s, err := openSession(cmd, ec.initFn, ec.format)
	if err != nil {
		return err
	}

	defer s.close(cmd.Context())

	positive := ec.positive
	if positive == "" {
		positive = s.cfg.Evaluation.PositiveCategory
	}

	err = checkPair(predictions, actual, positive)
	if err != nil {
		return err
	}

	thresholdOpt, err := ec.thresholdOption(cmd, s)
	if err != nil {
		return err
	}

	opts := []evaluate.Option{
		evaluate.WithPositiveCategory(positive),
		evaluate.WithTiny(s.cfg.Evaluation.Tiny),
		thresholdOpt,
	}

	s.logger.DebugContext(cmd.Context(), "evaluating",
		"predictions_kind", predictions.Kind().String(), "actual_kind", actual.Kind().String(),
		"samples", predictions.Len())

	var report evaluate.Report

	s.observe(cmd.Context(), opEvaluate, predictions.Len(),
		func(_ context.Context) (string, []evaluate.NamedValue) {
			report = evaluate.Evaluate(predictions, actual, opts...)

			return report.Kind.String(), reportValues(report)
		})

	return s.renderer.RenderReport(s.out, report, predictions.Len())
}

// thresholdOption resolves --threshold, --thresholds and --sweep, falling back
// to the configured thresholds.
func (ec *EvaluateCommand) thresholdOption(cmd *cobra.Command, s *session) (evaluate.Option, error) {
	switch {
	case cmd.Flags().Changed("sweep"):
		thresholds, err := ParseSweep(ec.sweep)
		if err != nil {
			return nil, err
		}

		return evaluate.WithThresholds(thresholds...), nil
	case cmd.Flags().Changed("thresholds"):
		err := validateThresholds(ec.thresholds)
		if err != nil {
			return nil, err
		}

		return evaluate.WithThresholds(ec.thresholds...), nil
	case cmd.Flags().Changed("threshold"):
		err := validateThresholds([]float64{ec.threshold})
		if err != nil {
			return nil, err
		}

		return evaluate.WithThreshold(ec.threshold), nil
	}

	configured := s.cfg.Evaluation.Thresholds
	if len(configured) == 1 {
		return evaluate.WithThreshold(configured[0]), nil
	}

	return evaluate.WithThresholds(configured...), nil
}

// reportValues flattens a report for telemetry. Table rows contribute every
// column except the threshold.
func reportValues(report evaluate.Report) []evaluate.NamedValue {
	if report.Kind != evaluate.ReportTable {
		return report.Values()
	}

	var values []evaluate.NamedValue

	for _, row := range report.Table.Rows() {
		values = append(values, row.ScoredMetrics.Values()...)
	}

	return values
}
