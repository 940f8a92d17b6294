// Package metrics provides interfaces for defining self-contained, reusable evaluation metrics.
//
// Each metric is a computation unit that:
//   - Declares its input requirements
//   - Computes a typed output
//   - Provides metadata for documentation and reporting
//
// This design lets the CLI list, describe and render metrics without knowing
// their concrete input types.
package metrics

import (
	"cmp"
	"slices"
)

// Metric categories.
const (
	TypeRegression     = "regression"
	TypeClassification = "classification"
	TypeProbabilistic  = "probabilistic"
)

// Metric is the core interface that all metrics must implement.
// Each metric is a self-contained computation with metadata.
type Metric[In, Out any] interface {
	// Name returns the machine-readable identifier (snake_case, unique).
	Name() string

	// DisplayName returns a human-readable name for UI/reports.
	DisplayName() string

	// Description returns detailed documentation including:
	// - What the metric measures.
	// - How to interpret the value.
	// - Any degenerate cases (NaN, Inf).
	Description() string

	// Type returns the metric category (e.g., "regression", "classification").
	Type() string

	// Compute calculates the metric value from input data.
	Compute(input In) Out
}

// Describer is the metadata half of [Metric], satisfied by every registered metric.
type Describer interface {
	Name() string
	DisplayName() string
	Description() string
	Type() string
}

// MetricMeta holds the common metadata for a metric.
// Embed this in metric implementations to satisfy metadata methods.
type MetricMeta struct {
	MetricName        string
	MetricDisplayName string
	MetricDescription string
	MetricType        string
}

// Name returns the machine-readable identifier.
func (m MetricMeta) Name() string { return m.MetricName }

// DisplayName returns a human-readable name for UI/reports.
func (m MetricMeta) DisplayName() string { return m.MetricDisplayName }

// Description returns detailed documentation.
func (m MetricMeta) Description() string { return m.MetricDescription }

// Type returns the metric category.
func (m MetricMeta) Type() string { return m.MetricType }

// Registry holds a collection of metrics that can be computed together.
type Registry struct {
	metrics map[string]Describer
}

// NewRegistry creates an empty metric registry.
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]Describer)}
}

// Register adds a metric to the registry. A metric with the same name is replaced.
func Register[In, Out any](r *Registry, m Metric[In, Out]) {
	r.metrics[m.Name()] = m
}

// Get retrieves a metric by name.
func (r *Registry) Get(name string) (Describer, bool) {
	m, ok := r.metrics[name]

	return m, ok
}

// Lookup retrieves a metric by name and asserts its concrete Metric type.
func Lookup[In, Out any](r *Registry, name string) (Metric[In, Out], bool) {
	m, ok := r.metrics[name]
	if !ok {
		return nil, false
	}

	typed, ok := m.(Metric[In, Out])

	return typed, ok
}

// Names returns all registered metric names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.metrics))

	for name := range r.metrics {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Describe returns the metadata of every registered metric, ordered by type then name.
func (r *Registry) Describe() []MetricMeta {
	out := make([]MetricMeta, 0, len(r.metrics))

	for _, m := range r.metrics {
		out = append(out, MetricMeta{
			MetricName:        m.Name(),
			MetricDisplayName: m.DisplayName(),
			MetricDescription: m.Description(),
			MetricType:        m.Type(),
		})
	}

	slices.SortFunc(out, func(a, b MetricMeta) int {
		return cmp.Or(
			cmp.Compare(a.MetricType, b.MetricType),
			cmp.Compare(a.MetricName, b.MetricName),
		)
	})

	return out
}
