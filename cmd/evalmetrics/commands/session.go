package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/config"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/renderer"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/version"
)

// Global flag names, registered on the root command.
const (
	FlagConfig  = "config"
	FlagVerbose = "verbose"
	FlagQuiet   = "quiet"
	FlagNoColor = "no-color"

	flagFormat = "format"
)

const spanPrefix = "evalmetrics."

// observabilityInit builds telemetry providers. Tests substitute a stub.
type observabilityInit func(observability.Config) (observability.Providers, error)

// session carries the resolved configuration and telemetry of one command run.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *observability.EvalMetrics
	renderer *renderer.Renderer
	out      io.Writer
	shutdown func(context.Context) error
}

// openSession loads configuration, starts telemetry and prepares the renderer.
// format overrides output.format when non-empty.
func openSession(cmd *cobra.Command, initFn observabilityInit, format string) (*session, error) {
	cfg, err := config.LoadConfig(globalString(cmd, FlagConfig))
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = cfg.Output.Format
	}

	noColor := cfg.Output.NoColor || globalBool(cmd, FlagNoColor) || color.NoColor

	rnd, err := renderer.New(format, !noColor)
	if err != nil {
		return nil, err
	}

	obsCfg, err := observabilityConfig(cmd, cfg)
	if err != nil {
		return nil, err
	}

	providers, err := initFn(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	s := &session{
		cfg:      cfg,
		logger:   providers.Logger,
		tracer:   providers.Tracer,
		renderer: rnd,
		out:      cmd.OutOrStdout(),
		shutdown: providers.Shutdown,
	}

	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(spanPrefix)
	}

	meter := providers.Meter
	if meter == nil {
		meter = noopmetric.NewMeterProvider().Meter(spanPrefix)
	}

	s.metrics, err = observability.NewEvalMetrics(meter)
	if err != nil {
		s.close(cmd.Context())

		return nil, fmt.Errorf("create evaluation metrics: %w", err)
	}

	return s, nil
}

func observabilityConfig(cmd *cobra.Command, cfg *config.Config) (observability.Config, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Command = cmd.Name()
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogOutput = cmd.ErrOrStderr()
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return obsCfg, err
	}

	switch {
	case globalBool(cmd, FlagQuiet):
		level = slog.LevelError
	case globalBool(cmd, FlagVerbose):
		level = slog.LevelDebug
		obsCfg.DebugTrace = true
	}

	obsCfg.LogLevel = level

	return obsCfg, nil
}

// close flushes telemetry. Failures are logged, not returned.
func (s *session) close(ctx context.Context) {
	if s.shutdown == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	err := s.shutdown(ctx)
	if err != nil {
		s.logger.Warn("observability shutdown failed", "error", err)
	}
}

// observe runs compute inside a span and records its outcome. Degenerate
// values are reported as a warning.
func (s *session) observe(
	ctx context.Context, op string, samples int,
	compute func(ctx context.Context) (branch string, values []evaluate.NamedValue),
) {
	ctx, span := s.tracer.Start(ctx, spanPrefix+op,
		trace.WithAttributes(
			attribute.String("evalmetrics.op", op),
			attribute.Int("evalmetrics.samples", samples),
		),
	)
	defer span.End()

	start := time.Now()
	branch, values := compute(ctx)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.String("evalmetrics.branch", branch))

	recorded := make([]observability.MetricValue, len(values))
	for i, nv := range values {
		recorded[i] = observability.MetricValue{Name: nv.Name, Value: nv.Value}
	}

	degenerate := s.metrics.RecordEvaluation(ctx, observability.Evaluation{
		Op:       op,
		Branch:   branch,
		Samples:  samples,
		Duration: elapsed,
		Values:   recorded,
	})

	s.logger.DebugContext(ctx, "evaluation complete",
		"op", op, "branch", branch, "samples", samples, "duration", elapsed)

	if degenerate > 0 {
		span.SetAttributes(attribute.Int("evalmetrics.degenerate", degenerate))
		s.logger.WarnContext(ctx, "metric values are NaN or infinite",
			"op", op, "branch", branch, "count", degenerate)
	}
}

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, flagFormat, "", "Output format: text, json, yaml (default from config)")
}

func globalString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}

	return v
}

func globalBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}

	return v
}
