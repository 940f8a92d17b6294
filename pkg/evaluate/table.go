package evaluate

import (
	"math"
	"slices"
)

// TableColumns are the columns of a [ThresholdTable], in order.
var TableColumns = append([]string{NameThreshold}, ScoredMetricNames...)

// ThresholdRow holds the scored metrics at one decision threshold.
type ThresholdRow struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`

	ScoredMetrics `yaml:",inline"`
}

// Values returns the row in [TableColumns] order.
func (r ThresholdRow) Values() []NamedValue {
	return append([]NamedValue{{Name: NameThreshold, Value: r.Threshold}}, r.ScoredMetrics.Values()...)
}

// ThresholdTable is an immutable sequence of per-threshold results in input order.
type ThresholdTable struct {
	rows []ThresholdRow
}

// NewThresholdTable assembles a table from rows. The slice is copied.
func NewThresholdTable(rows []ThresholdRow) ThresholdTable {
	return ThresholdTable{rows: slices.Clone(rows)}
}

// Len returns the number of rows.
func (t ThresholdTable) Len() int { return len(t.rows) }

// Row returns the i-th row.
func (t ThresholdTable) Row(i int) ThresholdRow { return t.rows[i] }

// Rows returns a copy of all rows.
func (t ThresholdTable) Rows() []ThresholdRow { return slices.Clone(t.rows) }

// Column returns the named column, or nil and false for an unknown name.
func (t ThresholdTable) Column(name string) ([]float64, bool) {
	idx := slices.Index(TableColumns, name)
	if idx < 0 {
		return nil, false
	}

	col := make([]float64, len(t.rows))
	for i, row := range t.rows {
		col[i] = row.Values()[idx].Value
	}

	return col, true
}

// Best returns the row with the greatest finite value in the named column.
// Rows whose value is NaN or infinite are skipped. For deviance the lowest
// value wins. ok is false when the column is unknown or no row qualifies.
func (t ThresholdTable) Best(name string) (best ThresholdRow, ok bool) {
	col, known := t.Column(name)
	if !known {
		return ThresholdRow{}, false
	}

	lowerIsBetter := name == NameDeviance
	bestIdx := -1

	for i, v := range col {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		if bestIdx < 0 || (lowerIsBetter && v < col[bestIdx]) || (!lowerIsBetter && v > col[bestIdx]) {
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return ThresholdRow{}, false
	}

	return t.rows[bestIdx], true
}
