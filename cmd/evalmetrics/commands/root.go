// Package commands implements the evalmetrics CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
)

// NewRootCommand creates the evalmetrics command tree with its global flags.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(observability.Init)
}

func newRootCommandWithDeps(initFn observabilityInit) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "evalmetrics",
		Short: "Evaluation metrics for binary classifiers and regression models",
		Long: `evalmetrics scores model predictions against actual outcomes.

Commands:
  evaluate  Accuracy, recall, specificity, precision, F1 and deviance
  regress   Mean squared error and its root
  deviance  Mean binomial deviance of probabilities
  metrics   List the metric catalog`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(FlagConfig, "", "config file (default: .evalmetrics.yaml in ., ./config or $HOME)")
	rootCmd.PersistentFlags().BoolP(FlagVerbose, "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP(FlagQuiet, "q", false, "suppress output")
	rootCmd.PersistentFlags().Bool(FlagNoColor, false, "disable colored output")

	rootCmd.AddCommand(
		newEvaluateCommandWithDeps(initFn),
		newRegressCommandWithDeps(initFn),
		newDevianceCommandWithDeps(initFn),
		newMetricsCommandWithDeps(initFn),
		NewVersionCommand(),
	)

	return rootCmd
}
