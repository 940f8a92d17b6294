package evaluate

// DefaultThreshold is the decision threshold used when none is supplied.
const DefaultThreshold = 0.5

// DefaultTiny is the additive floor applied inside the deviance logarithms.
const DefaultTiny = 1e-32

// Option configures a classification evaluation.
type Option func(*options)

type options struct {
	positive   string
	tiny       float64
	thresholds []float64
	sweep      bool
}

func newOptions(opts []Option) options {
	o := options{
		tiny:       DefaultTiny,
		thresholds: []float64{DefaultThreshold},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithPositiveCategory names the label counted as positive in categorical vectors.
// It has no effect on numeric, integer or boolean vectors.
func WithPositiveCategory(label string) Option {
	return func(o *options) {
		o.positive = label
	}
}

// WithTiny overrides the deviance log floor.
func WithTiny(tiny float64) Option {
	return func(o *options) {
		o.tiny = tiny
	}
}

// WithThreshold evaluates scores at a single decision threshold.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.thresholds = []float64{threshold}
		o.sweep = false
	}
}

// WithThresholds evaluates scores at every threshold and produces a table,
// even when only one threshold is given.
func WithThresholds(thresholds ...float64) Option {
	return func(o *options) {
		o.thresholds = append([]float64(nil), thresholds...)
		o.sweep = true
	}
}
