// Package config provides configuration loading and validation for evalmetrics.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
	ErrNoThresholds     = errors.New("at least one threshold is required")
	ErrInvalidTiny      = errors.New("tiny must be non-negative")
	ErrInvalidFormat    = errors.New("unknown output format")
	ErrInvalidLogLevel  = errors.New("unknown log level")
	ErrInvalidRatio     = errors.New("sample ratio must be within [0, 1]")
)

// EnvPrefix is the prefix of environment variables overriding configuration keys.
const EnvPrefix = "EVALMETRICS"

var (
	knownFormats   = []string{FormatText, FormatJSON, FormatYAML}
	knownLogLevels = []string{"debug", "info", "warn", "error"}
)

// Config holds all configuration for evalmetrics.
type Config struct {
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Output     OutputConfig     `mapstructure:"output"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// EvaluationConfig holds the defaults applied to classification evaluations.
type EvaluationConfig struct {
	PositiveCategory string    `mapstructure:"positive_category"`
	Thresholds       []float64 `mapstructure:"thresholds"`
	Tiny             float64   `mapstructure:"tiny"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds metric and trace export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	MetricsFile  string  `mapstructure:"metrics_file"`
	Environment  string  `mapstructure:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for .evalmetrics.yaml in the working directory,
// ./config and the home directory; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".evalmetrics")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		// Only a searched-for file may be absent.
		var notFoundErr viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Evaluation defaults.
	viperCfg.SetDefault("evaluation.thresholds", DefaultThresholds())
	viperCfg.SetDefault("evaluation.positive_category", DefaultPositiveCategory)
	viperCfg.SetDefault("evaluation.tiny", DefaultTiny)

	// Output defaults.
	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.no_color", DefaultNoColor)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.json", DefaultLogJSON)

	// Telemetry defaults.
	viperCfg.SetDefault("telemetry.otlp_endpoint", DefaultOTLPEndpoint)
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("telemetry.metrics_file", DefaultMetricsFile)
	viperCfg.SetDefault("telemetry.environment", DefaultEnvironment)
	viperCfg.SetDefault("telemetry.sample_ratio", DefaultSampleRatio)
}

// Validate checks the configuration for out-of-range or unknown values.
func (c *Config) Validate() error {
	if len(c.Evaluation.Thresholds) == 0 {
		return ErrNoThresholds
	}

	for _, threshold := range c.Evaluation.Thresholds {
		err := ValidateThreshold(threshold)
		if err != nil {
			return err
		}
	}

	if c.Evaluation.Tiny < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidTiny, c.Evaluation.Tiny)
	}

	err := ValidateFormat(c.Output.Format)
	if err != nil {
		return err
	}

	if !slices.Contains(knownLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	ratio := c.Telemetry.SampleRatio
	if !(ratio >= 0 && ratio <= 1) {
		return fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}

	return nil
}

// ValidateFormat reports whether format is one of text, json or yaml.
func ValidateFormat(format string) error {
	if !slices.Contains(knownFormats, format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	return nil
}

// ValidateThreshold reports whether threshold lies in [0, 1].
func ValidateThreshold(threshold float64) error {
	if !(threshold >= 0 && threshold <= 1) {
		return fmt.Errorf("%w: %g", ErrInvalidThreshold, threshold)
	}

	return nil
}
