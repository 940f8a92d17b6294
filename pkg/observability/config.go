// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for the evalmetrics command line.
package observability

import (
	"io"
	"log/slog"
)

const (
	defaultServiceName = "evalmetrics"

	// defaultShutdownTimeoutSec bounds the final telemetry flush.
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	ServiceName    string
	ServiceVersion string

	// Environment tags telemetry with a deployment environment such as "ci".
	Environment string

	// Command is the evalmetrics subcommand being run, e.g. "evaluate".
	Command string

	// OTLPEndpoint is the OTLP gRPC collector address. Empty disables OTLP export.
	OTLPEndpoint string

	// MetricsFile receives the Prometheus text exposition on shutdown.
	// Empty disables the textfile dump.
	MetricsFile string

	// SampleRatio in (0, 1] samples that share of root spans.
	// Zero samples every root span unless OTEL_TRACES_SAMPLER says otherwise.
	SampleRatio float64

	LogLevel slog.Level

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int

	OTLPInsecure bool

	// DebugTrace samples every span regardless of ratio or environment.
	DebugTrace bool

	LogJSON bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

// identity lists the attributes every log record and the telemetry resource carry.
func (c Config) identity() []slog.Attr {
	attrs := []slog.Attr{slog.String(attrService, c.ServiceName)}

	if c.Command != "" {
		attrs = append(attrs, slog.String(attrCommand, c.Command))
	}

	if c.Environment != "" {
		attrs = append(attrs, slog.String(attrEnv, c.Environment))
	}

	return attrs
}
