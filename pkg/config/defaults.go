package config

// Evaluation defaults.
const (
	DefaultThreshold        = 0.5
	DefaultPositiveCategory = ""
	DefaultTiny             = 1e-32
)

// Output defaults.
const (
	DefaultOutputFormat = FormatText
	DefaultNoColor      = false
)

// Logging defaults.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false
)

// Telemetry defaults.
const (
	DefaultOTLPEndpoint = ""
	DefaultOTLPInsecure = false
	DefaultMetricsFile  = ""
	DefaultEnvironment  = ""
	// DefaultSampleRatio of zero leaves trace sampling to the SDK default.
	DefaultSampleRatio = 0.0
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultThresholds returns the thresholds used when none are configured.
func DefaultThresholds() []float64 {
	return []float64{DefaultThreshold}
}
