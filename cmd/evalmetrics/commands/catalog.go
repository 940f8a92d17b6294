package commands

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/metrics"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
)

// NewMetricsCommand creates the metrics command, which lists the metric catalog.
func NewMetricsCommand() *cobra.Command {
	return newMetricsCommandWithDeps(observability.Init)
}

func newMetricsCommandWithDeps(initFn observabilityInit) *cobra.Command {
	var (
		format     string
		metricType string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the available metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, initFn, format)
			if err != nil {
				return err
			}

			defer s.close(cmd.Context())

			metas := evaluate.NewCatalog().Describe()
			if metricType != "" {
				metas = slices.DeleteFunc(metas, func(m metrics.MetricMeta) bool {
					return m.MetricType != metricType
				})
			}

			return s.renderer.RenderCatalog(s.out, metas)
		},
	}

	cmd.Flags().StringVar(&metricType, "type", "",
		"Only list metrics of this type: regression, classification, probabilistic")
	addFormatFlag(cmd, &format)

	return cmd
}
