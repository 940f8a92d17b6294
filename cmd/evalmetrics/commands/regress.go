package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/renderer"
)

const (
	opRegress        = "regress"
	branchRegression = "regression"
)

// NewRegressCommand creates the regress command.
func NewRegressCommand() *cobra.Command {
	return newRegressCommandWithDeps(observability.Init)
}

func newRegressCommandWithDeps(initFn observabilityInit) *cobra.Command {
	var predicted, actual, format string

	cmd := &cobra.Command{
		Use:     "regress",
		Short:   "Compute MSE and RMSE of numeric predictions",
		Example: "  evalmetrics regress --predicted 2.5,0,2,8 --actual 3,-0.5,2,7",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegress(cmd, initFn, predicted, actual, format)
		},
	}

	cmd.Flags().StringVarP(&predicted, "predicted", "p", "", "Comma-separated predicted values")
	cmd.Flags().StringVarP(&actual, "actual", "a", "", "Comma-separated actual values")
	addFormatFlag(cmd, &format)

	return cmd
}

func runRegress(cmd *cobra.Command, initFn observabilityInit, rawPredicted, rawActual, format string) error {
	predicted, err := parseNumeric(splitValues(rawPredicted))
	if err != nil {
		return fmt.Errorf("predicted: %w", err)
	}

	actual, err := parseNumeric(splitValues(rawActual))
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}

	err = checkPair(predicted, actual, "")
	if err != nil {
		return err
	}

	s, err := openSession(cmd, initFn, format)
	if err != nil {
		return err
	}

	defer s.close(cmd.Context())

	var values []evaluate.NamedValue

	s.observe(cmd.Context(), opRegress, len(predicted),
		func(_ context.Context) (string, []evaluate.NamedValue) {
			values = []evaluate.NamedValue{
				{Name: evaluate.NameMSE, Value: evaluate.MSE(predicted, actual)},
				{Name: evaluate.NameRMSE, Value: evaluate.RMSE(predicted, actual)},
			}

			return branchRegression, values
		})

	return s.renderer.RenderValues(s.out, renderer.KindRegression, len(predicted), values)
}
