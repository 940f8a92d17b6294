// Package vector defines the aligned input sequences consumed by the evaluation metrics.
//
// A Vector is a sealed tagged union over the element kind. The kind is resolved
// once at the API boundary so metric code never inspects its inputs ad hoc.
// All vectors passed together are assumed to have equal length; alignment is by
// position and is not validated here.
package vector

import (
	"slices"
	"strconv"
)

// Kind identifies the element type of a Vector.
type Kind int

// Element kinds.
const (
	KindNumeric Kind = iota
	KindInteger
	KindBoolean
	KindCategorical
)

var kindNames = [...]string{
	KindNumeric:     "numeric",
	KindInteger:     "integer",
	KindBoolean:     "boolean",
	KindCategorical: "categorical",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// Vector is an ordered, fixed-length sequence of numeric, boolean, or categorical elements.
type Vector interface {
	// Kind returns the element kind.
	Kind() Kind

	// Len returns the number of elements.
	Len() int

	sealed()
}

// Numeric is a vector of real values. Used as probabilities when passed as predictions.
type Numeric []float64

// Integer is a vector of integer values, typically 0/1 hard labels.
type Integer []int

// Boolean is a vector of truth values.
type Boolean []bool

// Categorical is a vector of labelled values drawn from a finite set of levels.
type Categorical struct {
	Values []string
	Levels []string
}

// NewCategorical wraps values, deriving the levels as the sorted set of distinct values.
func NewCategorical(values []string) Categorical {
	levels := slices.Clone(values)
	slices.Sort(levels)

	return Categorical{
		Values: values,
		Levels: slices.Compact(levels),
	}
}

// Kind implements Vector.
func (Numeric) Kind() Kind { return KindNumeric }

// Len implements Vector.
func (v Numeric) Len() int { return len(v) }

func (Numeric) sealed() {}

// Kind implements Vector.
func (Integer) Kind() Kind { return KindInteger }

// Len implements Vector.
func (v Integer) Len() int { return len(v) }

func (Integer) sealed() {}

// Kind implements Vector.
func (Boolean) Kind() Kind { return KindBoolean }

// Len implements Vector.
func (v Boolean) Len() int { return len(v) }

func (Boolean) sealed() {}

// Kind implements Vector.
func (Categorical) Kind() Kind { return KindCategorical }

// Len implements Vector.
func (c Categorical) Len() int { return len(c.Values) }

func (Categorical) sealed() {}

// HasLevel reports whether label is one of the declared levels.
func (c Categorical) HasLevel(label string) bool {
	return slices.Contains(c.Levels, label)
}

// IsHard reports whether v already holds discrete class labels rather than scores.
func IsHard(v Vector) bool {
	switch v.Kind() {
	case KindInteger, KindBoolean, KindCategorical:
		return true
	default:
		return false
	}
}
