// Package renderer writes evaluation results as text tables, JSON or YAML.
package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/config"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/metrics"
)

// Document kinds for results that are not an [evaluate.Report].
const (
	KindRegression = "regression"
	KindDeviance   = "deviance"
)

// Renderer writes results in one output format.
type Renderer struct {
	format string
	color  bool
}

// New creates a renderer for one of the config output formats. Color applies
// to text output only.
func New(format string, color bool) (*Renderer, error) {
	err := config.ValidateFormat(format)
	if err != nil {
		return nil, err
	}

	return &Renderer{format: format, color: color}, nil
}

// Format returns the output format.
func (r *Renderer) Format() string { return r.format }

// RenderReport writes the result of [evaluate.Evaluate] over samples observations.
func (r *Renderer) RenderReport(w io.Writer, report evaluate.Report, samples int) error {
	if r.format == config.FormatText {
		return r.writeText(w, r.reportText(report, samples))
	}

	return r.encode(w, reportDocument(report, samples))
}

// RenderValues writes a flat list of named metric values under a document kind.
func (r *Renderer) RenderValues(w io.Writer, kind string, samples int, values []evaluate.NamedValue) error {
	if r.format == config.FormatText {
		return r.writeText(w, r.valuesText(kind, samples, values))
	}

	return r.encode(w, document{Kind: kind, Samples: samples, Metrics: orderedValues(values)})
}

// RenderCatalog writes the metadata of every metric in the catalog.
func (r *Renderer) RenderCatalog(w io.Writer, metas []metrics.MetricMeta) error {
	if r.format == config.FormatText {
		return r.writeText(w, catalogText(metas))
	}

	entries := make([]catalogEntry, 0, len(metas))
	for _, meta := range metas {
		entries = append(entries, catalogEntry{
			Name:        meta.MetricName,
			DisplayName: meta.MetricDisplayName,
			Type:        meta.MetricType,
			Description: meta.MetricDescription,
		})
	}

	return r.encode(w, entries)
}

func (r *Renderer) writeText(w io.Writer, text string) error {
	_, err := io.WriteString(w, text+"\n")
	if err != nil {
		return fmt.Errorf("write text output: %w", err)
	}

	return nil
}

func (r *Renderer) encode(w io.Writer, v any) error {
	if r.format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		closeErr := enc.Close()
		if closeErr != nil {
			return fmt.Errorf("flush yaml: %w", closeErr)
		}

		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)

	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}
