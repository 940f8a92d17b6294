package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
)

const (
	jsonIndent = "  "
	yamlIndent = 2
)

// --- Output Data Types ---.

// document is the structured form shared by the JSON and YAML encoders.
type document struct {
	Kind      string                    `json:"kind"                yaml:"kind"`
	Samples   int                       `json:"samples"             yaml:"samples"`
	Metrics   orderedValues             `json:"metrics,omitempty"   yaml:"metrics,omitempty"`
	Confusion *evaluate.ConfusionMatrix `json:"confusion,omitempty" yaml:"confusion,omitempty"`
	Rows      []orderedValues           `json:"rows,omitempty"      yaml:"rows,omitempty"`
}

type catalogEntry struct {
	Name        string `json:"name"         yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Type        string `json:"type"         yaml:"type"`
	Description string `json:"description"  yaml:"description"`
}

func reportDocument(report evaluate.Report, samples int) document {
	doc := document{Kind: report.Kind.String(), Samples: samples}

	switch report.Kind {
	case evaluate.ReportHard:
		doc.Metrics = orderedValues(report.Hard.Values())
		doc.Confusion = &report.Hard.Confusion
	case evaluate.ReportScored:
		doc.Metrics = orderedValues(report.Scored.Values())
		doc.Confusion = &report.Scored.Confusion
	case evaluate.ReportTable:
		rows := report.Table.Rows()

		doc.Rows = make([]orderedValues, 0, len(rows))
		for _, row := range rows {
			doc.Rows = append(doc.Rows, orderedValues(row.Values()))
		}
	}

	return doc
}

// orderedValues encodes as a mapping that keeps metric order.
type orderedValues []evaluate.NamedValue

// MarshalJSON writes the values as an object. NaN and infinities become the
// strings "NaN", "+Inf" and "-Inf".
func (o orderedValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, nv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(nv.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal metric name: %w", err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(appendJSONFloat(nil, nv.Value))
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML returns an ordered mapping node. YAML represents NaN and
// infinities natively as .nan and .inf.
func (o orderedValues) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, nv := range o {
		var value yaml.Node

		err := value.Encode(nv.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", nv.Name, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: nv.Name},
			&value,
		)
	}

	return node, nil
}

func appendJSONFloat(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, `"NaN"`...)
	case math.IsInf(v, 1):
		return append(dst, `"+Inf"`...)
	case math.IsInf(v, -1):
		return append(dst, `"-Inf"`...)
	default:
		return strconv.AppendFloat(dst, v, 'g', -1, 64)
	}
}
