package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
)

// NewPrometheusReader creates an OTel metric reader backed by a fresh Prometheus
// registry. Attach the exporter to a MeterProvider with sdkmetric.WithReader;
// the registry then gathers every instrument created from that provider.
// Each call creates an independent registry to avoid collector conflicts.
func NewPrometheusReader() (*promexporter.Exporter, *prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return exporter, registry, nil
}

// WriteTextfile writes the gathered metrics in Prometheus text exposition format,
// suitable for the node_exporter textfile collector. The file is replaced atomically.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	err := prometheus.WriteToTextfile(path, gatherer)
	if err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}
