package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "evalmetrics.yaml")

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	// No config file present: defaults only.
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5}, cfg.Evaluation.Thresholds)
	assert.Empty(t, cfg.Evaluation.PositiveCategory)
	assert.InDelta(t, 1e-32, cfg.Evaluation.Tiny, 1e-40)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.False(t, cfg.Output.NoColor)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.JSON)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.Empty(t, cfg.Telemetry.MetricsFile)
	assert.Empty(t, cfg.Telemetry.Environment)
	assert.Zero(t, cfg.Telemetry.SampleRatio)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
evaluation:
  thresholds: [0.25, 0.5, 0.75]
  positive_category: "yes"
  tiny: 0.000001

output:
  format: json
  no_color: true

logging:
  level: debug
  json: true

telemetry:
  otlp_endpoint: "localhost:4317"
  otlp_insecure: true
  metrics_file: "/tmp/evalmetrics.prom"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.25, 0.5, 0.75}, cfg.Evaluation.Thresholds)
	assert.Equal(t, "yes", cfg.Evaluation.PositiveCategory)
	assert.InDelta(t, 1e-6, cfg.Evaluation.Tiny, 1e-12)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.NoColor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.Equal(t, "/tmp/evalmetrics.prom", cfg.Telemetry.MetricsFile)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("EVALMETRICS_OUTPUT_FORMAT", "yaml")
	t.Setenv("EVALMETRICS_LOGGING_LEVEL", "warn")
	t.Setenv("EVALMETRICS_EVALUATION_POSITIVE_CATEGORY", "spam")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.FormatYAML, cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "spam", cfg.Evaluation.PositiveCategory)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "threshold above one",
			content: "evaluation:\n  thresholds: [0.5, 1.5]\n",
			wantErr: config.ErrInvalidThreshold,
		},
		{
			name:    "negative tiny",
			content: "evaluation:\n  tiny: -1\n",
			wantErr: config.ErrInvalidTiny,
		},
		{
			name:    "unknown format",
			content: "output:\n  format: xml\n",
			wantErr: config.ErrInvalidFormat,
		},
		{
			name:    "unknown log level",
			content: "logging:\n  level: verbose\n",
			wantErr: config.ErrInvalidLogLevel,
		},
		{
			name:    "sample ratio above one",
			content: "telemetry:\n  sample_ratio: 2\n",
			wantErr: config.ErrInvalidRatio,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Evaluation: config.EvaluationConfig{Thresholds: config.DefaultThresholds(), Tiny: config.DefaultTiny},
		Output:     config.OutputConfig{Format: config.FormatText},
		Logging:    config.LoggingConfig{Level: "INFO"},
	}
	require.NoError(t, cfg.Validate())

	cfg.Evaluation.Thresholds = nil
	require.ErrorIs(t, cfg.Validate(), config.ErrNoThresholds)
}

func TestValidateThreshold(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.ValidateThreshold(0))
	require.NoError(t, config.ValidateThreshold(1))
	require.ErrorIs(t, config.ValidateThreshold(-0.1), config.ErrInvalidThreshold)
	require.ErrorIs(t, config.ValidateThreshold(1.01), config.ErrInvalidThreshold)
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{config.FormatText, config.FormatJSON, config.FormatYAML} {
		require.NoError(t, config.ValidateFormat(format))
	}

	require.ErrorIs(t, config.ValidateFormat("xml"), config.ErrInvalidFormat)
	require.ErrorIs(t, config.ValidateFormat("JSON"), config.ErrInvalidFormat)
}

func TestLoadConfigTelemetry(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, "telemetry:\n  environment: ci\n  sample_ratio: 0.25\n"))
	require.NoError(t, err)

	assert.Equal(t, "ci", cfg.Telemetry.Environment)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 0)
}
