package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/config"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/observability"
)

// stubObservability records the config it was initialized with and collects
// spans and logs in memory.
type stubObservability struct {
	mu       sync.Mutex
	cfg      observability.Config
	logs     bytes.Buffer
	spans    *tracetest.InMemoryExporter
	shutdown bool
}

func (so *stubObservability) init(cfg observability.Config) (observability.Providers, error) {
	so.mu.Lock()
	defer so.mu.Unlock()

	so.cfg = cfg
	so.spans = tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(so.spans))

	return observability.Providers{
		Tracer: tp.Tracer("test"),
		Logger: slog.New(slog.NewTextHandler(&so.logs, &slog.HandlerOptions{Level: cfg.LogLevel})),
		Shutdown: func(_ context.Context) error {
			so.mu.Lock()
			so.shutdown = true
			so.mu.Unlock()

			return nil
		},
	}, nil
}

func execute(t *testing.T, args ...string) (string, *stubObservability, error) {
	t.Helper()

	stub := &stubObservability{}
	root := newRootCommandWithDeps(stub.init)

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stub, err
}

func decodeJSON(t *testing.T, out string) map[string]any {
	t.Helper()

	var doc map[string]any

	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)

	return doc
}

func metricsOf(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()

	values, ok := doc["metrics"].(map[string]any)
	require.True(t, ok, "metrics missing: %v", doc)

	return values
}

func TestEvaluate_ScoredReport(t *testing.T) {
	t.Parallel()

	out, stub, err := execute(t, "evaluate",
		"--predictions", "0.9,0.4,0.2,0.8", "--actual", "1,0,0,1", "--format", "json")
	require.NoError(t, err)

	doc := decodeJSON(t, out)
	assert.Equal(t, "scored", doc["kind"])
	assert.InDelta(t, 4.0, doc["samples"], 0)

	values := metricsOf(t, doc)
	assert.InDelta(t, 1.0, values["accuracy"], 1e-12)
	assert.InDelta(t, 0.531237, values["deviance"], 1e-6)

	assert.True(t, stub.shutdown, "providers.Shutdown must be called on exit")
}

func TestEvaluate_HardReport(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "evaluate", "-p", "1,0,0,0", "-a", "1,1,0,0", "--format", "json")
	require.NoError(t, err)

	doc := decodeJSON(t, out)
	assert.Equal(t, "hard", doc["kind"])

	values := metricsOf(t, doc)
	assert.InDelta(t, 0.75, values["accuracy"], 1e-12)
	assert.NotContains(t, values, "deviance")
}

func TestEvaluate_CategoricalWithPositive(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "evaluate",
		"-p", "y,n,n,n", "-a", "y,y,n,n", "--positive", "y", "--format", "json")
	require.NoError(t, err)

	values := metricsOf(t, decodeJSON(t, out))
	assert.InDelta(t, 0.5, values["recall"], 1e-12)
	assert.InDelta(t, 1.0, values["precision"], 1e-12)
}

func TestEvaluate_ThresholdTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantRows int
	}{
		{name: "thresholds", args: []string{"--thresholds", "0.3,0.5,0.85"}, wantRows: 3},
		{name: "sweep", args: []string{"--sweep", "0:1:0.25"}, wantRows: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"evaluate", "-p", "0.9,0.4,0.2,0.8", "-a", "1,0,0,1", "--format", "json"}, tt.args...)

			out, _, err := execute(t, args...)
			require.NoError(t, err)

			doc := decodeJSON(t, out)
			assert.Equal(t, "table", doc["kind"])

			rows, ok := doc["rows"].([]any)
			require.True(t, ok)
			assert.Len(t, rows, tt.wantRows)
		})
	}
}

func TestEvaluate_ConfigThresholds(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "evalmetrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("evaluation:\n  thresholds: [0.25, 0.75]\noutput:\n  format: yaml\n"), 0o600))

	out, _, err := execute(t, "--config", path, "evaluate", "-p", "0.9,0.4,0.2,0.8", "-a", "1,0,0,1")
	require.NoError(t, err)

	assert.Contains(t, out, "kind: table")
	assert.Contains(t, out, "threshold: 0.25")
	assert.Contains(t, out, "threshold: 0.75")
}

func TestEvaluate_InputErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "missing vectors", args: []string{"-p", "1,0"}, wantErr: ErrMissingVectors},
		{name: "length mismatch", args: []string{"-p", "1,0,1", "-a", "1,0"}, wantErr: ErrLengthMismatch},
		{name: "categorical without positive", args: []string{"-p", "y,n", "-a", "y,n"}, wantErr: ErrMissingPositive},
		{name: "unknown kind", args: []string{"-p", "1,0", "-a", "1,0", "--actual-kind", "tensor"}, wantErr: ErrUnknownKind},
		{name: "threshold out of range", args: []string{"-p", "0.1,0.9", "-a", "0,1", "--threshold", "1.5"}, wantErr: config.ErrInvalidThreshold},
		{name: "bad sweep", args: []string{"-p", "0.1,0.9", "-a", "0,1", "--sweep", "0.9:0.1:0.1"}, wantErr: ErrInvalidSweep},
		{name: "nan sweep step", args: []string{"-p", "0.1,0.9", "-a", "0,1", "--sweep", "0:1:NaN"}, wantErr: ErrInvalidSweep},
		{name: "dense sweep", args: []string{"-p", "0.1,0.9", "-a", "0,1", "--sweep", "0:1:1e-300"}, wantErr: ErrInvalidSweep},
		{name: "bad format", args: []string{"-p", "1,0", "-a", "1,0", "--format", "xml"}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, append([]string{"evaluate"}, tt.args...)...)
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEvaluate_ThresholdFlagsAreExclusive(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "evaluate", "-p", "0.1,0.9", "-a", "0,1", "--threshold", "0.4", "--sweep", "0:1:0.5")
	require.Error(t, err)
}

func TestEvaluate_WarnsOnDegenerateValues(t *testing.T) {
	t.Parallel()

	out, stub, err := execute(t, "evaluate", "-p", "0,0", "-a", "0,0", "--format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"recall": "NaN"`)
	assert.Contains(t, stub.logs.String(), "metric values are NaN or infinite")
	assert.Contains(t, stub.logs.String(), "count=3")
}

func TestEvaluate_RecordsSpan(t *testing.T) {
	t.Parallel()

	_, stub, err := execute(t, "evaluate", "-p", "0.9,0.1", "-a", "1,0")
	require.NoError(t, err)

	spans := stub.spans.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "evalmetrics.evaluate", spans[0].Name)
}

func TestGlobalFlags_SetLogLevel(t *testing.T) {
	t.Parallel()

	_, stub, err := execute(t, "--verbose", "metrics")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, stub.cfg.LogLevel)
	assert.True(t, stub.cfg.DebugTrace)
	assert.Equal(t, "metrics", stub.cfg.Command)
	assert.NotEmpty(t, stub.cfg.ServiceVersion)

	_, stub, err = execute(t, "-q", "metrics")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, stub.cfg.LogLevel)
}

func TestSession_MapsTelemetryConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "evalmetrics.yaml")
	content := "telemetry:\n  environment: ci\n  sample_ratio: 0.25\n  metrics_file: /tmp/evalmetrics.prom\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, stub, err := execute(t, "--config", path, "regress", "--predicted", "1,2", "--actual", "1,2")
	require.NoError(t, err)

	assert.Equal(t, "regress", stub.cfg.Command)
	assert.Equal(t, "ci", stub.cfg.Environment)
	assert.InDelta(t, 0.25, stub.cfg.SampleRatio, 0)
	assert.Equal(t, "/tmp/evalmetrics.prom", stub.cfg.MetricsFile)
}

func TestRegress(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "regress", "--predicted", "2.5,0,2,8", "--actual", "3,-0.5,2,7", "--format", "json")
	require.NoError(t, err)

	doc := decodeJSON(t, out)
	assert.Equal(t, "regression", doc["kind"])

	values := metricsOf(t, doc)
	assert.InDelta(t, 0.375, values["mse"], 1e-12)
	assert.InDelta(t, 0.6123724356957945, values["rmse"], 1e-12)
}

func TestRegress_RejectsNonNumeric(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "regress", "--predicted", "a,b", "--actual", "1,2")
	require.ErrorIs(t, err, ErrInvalidValue)

	_, _, err = execute(t, "regress", "--predicted", "1", "--actual", "1,2")
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestDeviance(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "deviance", "--probabilities", "0.9,0.4,0.2,0.8", "--actual", "1,0,0,1", "--format", "json")
	require.NoError(t, err)

	values := metricsOf(t, decodeJSON(t, out))
	assert.InDelta(t, 0.531237, values["deviance"], 1e-6)

	_, _, err = execute(t, "deviance", "-p", "0.5", "-a", "1", "--tiny", "-1")
	require.ErrorIs(t, err, config.ErrInvalidTiny)

	_, _, err = execute(t, "deviance", "-p", "high,low", "-a", "1,0")
	require.ErrorIs(t, err, ErrNotProbabilities)
}

func TestMetricsCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "f1_score")
	assert.Contains(t, out, "rmse")

	out, _, err = execute(t, "metrics", "--type", "regression", "--format", "json")
	require.NoError(t, err)

	var entries []map[string]string

	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)

	for _, entry := range entries {
		assert.Equal(t, "regression", entry["type"])
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "evalmetrics ")
	assert.Contains(t, out, "commit:")
}
