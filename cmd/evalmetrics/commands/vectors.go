package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/config"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/vector"
)

// Vector kinds accepted by the --*-kind flags.
const (
	KindAuto        = "auto"
	KindNumeric     = "numeric"
	KindInteger     = "integer"
	KindBoolean     = "boolean"
	KindCategorical = "categorical"
)

const (
	valueSeparator = ","
	sweepSeparator = ":"
	sweepParts     = 3
)

var knownKinds = []string{KindAuto, KindNumeric, KindInteger, KindBoolean, KindCategorical}

// Input validation errors.
var (
	ErrEmptyVector      = errors.New("vector is empty")
	ErrLengthMismatch   = errors.New("vectors differ in length")
	ErrUnknownKind      = errors.New("unknown vector kind")
	ErrInvalidValue     = errors.New("invalid vector value")
	ErrMissingPositive  = errors.New("categorical vector requires a positive category (use --positive)")
	ErrInvalidSweep     = errors.New("sweep must be min:max:step with 0 <= min < max <= 1 and step > 0")
	ErrNotProbabilities = errors.New("probabilities must be numeric")
)

// ParseVector parses a comma-separated list of values as the given kind.
// KindAuto picks the narrowest kind every value parses as: integer, then
// numeric, then boolean, falling back to categorical.
func ParseVector(raw, kind string) (vector.Vector, error) {
	fields := splitValues(raw)
	if len(fields) == 0 {
		return nil, ErrEmptyVector
	}

	switch kind {
	case KindNumeric:
		return parseNumeric(fields)
	case KindInteger:
		return parseInteger(fields)
	case KindBoolean:
		return parseBoolean(fields)
	case KindCategorical:
		return vector.NewCategorical(fields), nil
	case KindAuto:
		return detectVector(fields), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownKind, kind, strings.Join(knownKinds, ", "))
	}
}

func splitValues(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	fields := strings.Split(raw, valueSeparator)
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}

	return fields
}

func detectVector(fields []string) vector.Vector {
	if ints, err := parseInteger(fields); err == nil {
		return ints
	}

	if nums, err := parseNumeric(fields); err == nil {
		return nums
	}

	if bools, err := parseBoolean(fields); err == nil {
		return bools
	}

	return vector.NewCategorical(fields)
}

func parseNumeric(fields []string) (vector.Numeric, error) {
	out := make(vector.Numeric, len(fields))

	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d is not a number", ErrInvalidValue, field, i)
		}

		out[i] = v
	}

	return out, nil
}

func parseInteger(fields []string) (vector.Integer, error) {
	out := make(vector.Integer, len(fields))

	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d is not an integer", ErrInvalidValue, field, i)
		}

		out[i] = v
	}

	return out, nil
}

func parseBoolean(fields []string) (vector.Boolean, error) {
	out := make(vector.Boolean, len(fields))

	for i, field := range fields {
		v, err := strconv.ParseBool(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d is not a boolean", ErrInvalidValue, field, i)
		}

		out[i] = v
	}

	return out, nil
}

// checkPair rejects empty or misaligned vectors and categorical vectors that
// cannot be reduced to a mask without a positive category.
func checkPair(predicted, actual vector.Vector, positive string) error {
	if predicted.Len() == 0 || actual.Len() == 0 {
		return ErrEmptyVector
	}

	if predicted.Len() != actual.Len() {
		return fmt.Errorf("%w: %d predictions, %d actual", ErrLengthMismatch, predicted.Len(), actual.Len())
	}

	if positive != "" {
		return nil
	}

	if predicted.Kind() == vector.KindCategorical || actual.Kind() == vector.KindCategorical {
		return ErrMissingPositive
	}

	return nil
}

// ParseSweep parses "min:max:step" into thresholds over [min, max).
func ParseSweep(raw string) ([]float64, error) {
	parts := strings.Split(raw, sweepSeparator)
	if len(parts) != sweepParts {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSweep, raw)
	}

	bounds := make([]float64, sweepParts)

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSweep, raw)
		}

		bounds[i] = v
	}

	minimum, maximum, step := bounds[0], bounds[1], bounds[2]
	if minimum < 0 || maximum > 1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSweep, raw)
	}

	thresholds := evaluate.SweepThresholds(minimum, maximum, step)
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSweep, raw)
	}

	return thresholds, nil
}

func validateThresholds(thresholds []float64) error {
	if len(thresholds) == 0 {
		return config.ErrNoThresholds
	}

	for _, threshold := range thresholds {
		err := config.ValidateThreshold(threshold)
		if err != nil {
			return err
		}
	}

	return nil
}
