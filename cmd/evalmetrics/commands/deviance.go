package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/config"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/renderer"
)

const (
	opDeviance     = "deviance"
	branchDeviance = "probabilistic"
)

type devianceFlags struct {
	probabilities string
	actual        string
	actualKind    string
	positive      string
	format        string
	tiny          float64
}

// NewDevianceCommand creates the deviance command.
func NewDevianceCommand() *cobra.Command {
	return newDevianceCommandWithDeps(observability.Init)
}

func newDevianceCommandWithDeps(initFn observabilityInit) *cobra.Command {
	var flags devianceFlags

	cmd := &cobra.Command{
		Use:     "deviance",
		Short:   "Compute the mean binomial deviance of probabilities",
		Example: "  evalmetrics deviance --probabilities 0.9,0.4,0.2,0.8 --actual 1,0,0,1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeviance(cmd, initFn, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.probabilities, "probabilities", "p", "", "Comma-separated probabilities")
	cmd.Flags().StringVarP(&flags.actual, "actual", "a", "", "Comma-separated actual labels")
	cmd.Flags().StringVar(&flags.actualKind, "actual-kind", KindAuto,
		"Actual labels kind: auto, numeric, integer, boolean, categorical")
	cmd.Flags().StringVar(&flags.positive, "positive", "", "Positive category for categorical labels (default from config)")
	cmd.Flags().Float64Var(&flags.tiny, "tiny", config.DefaultTiny, "Additive floor inside the logarithms (default from config)")
	addFormatFlag(cmd, &flags.format)

	return cmd
}

func runDeviance(cmd *cobra.Command, initFn observabilityInit, flags devianceFlags) error {
	probabilities, err := parseNumeric(splitValues(flags.probabilities))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotProbabilities, err)
	}

	actual, err := ParseVector(flags.actual, flags.actualKind)
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}

	s, err := openSession(cmd, initFn, flags.format)
	if err != nil {
		return err
	}

	defer s.close(cmd.Context())

	positive := flags.positive
	if positive == "" {
		positive = s.cfg.Evaluation.PositiveCategory
	}

	err = checkPair(probabilities, actual, positive)
	if err != nil {
		return err
	}

	tiny := s.cfg.Evaluation.Tiny
	if cmd.Flags().Changed("tiny") {
		if flags.tiny < 0 {
			return fmt.Errorf("%w: %g", config.ErrInvalidTiny, flags.tiny)
		}

		tiny = flags.tiny
	}

	var values []evaluate.NamedValue

	s.observe(cmd.Context(), opDeviance, len(probabilities),
		func(_ context.Context) (string, []evaluate.NamedValue) {
			dev := evaluate.Deviance(probabilities, actual,
				evaluate.WithPositiveCategory(positive), evaluate.WithTiny(tiny))
			values = []evaluate.NamedValue{{Name: evaluate.NameDeviance, Value: dev}}

			return branchDeviance, values
		})

	return s.renderer.RenderValues(s.out, renderer.KindDeviance, len(probabilities), values)
}
