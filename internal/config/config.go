// Package config provides Viper-based hierarchical configuration management.
// Detection keyword lists and thresholds are configuration data, not code,
// so they can be tuned and tested independently of the scanner.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DetectionConfig drives the column candidate scanner. Keyword matching is
// case-insensitive; keywords shorter than four characters must match a whole
// header token, longer ones match as substrings.
type DetectionConfig struct {
	// SampleSize caps how many non-empty values per column are inspected.
	SampleSize int `mapstructure:"sample_size" yaml:"sample_size"`
	// DateThreshold is the fraction of sampled values that must parse as
	// dates for a column to qualify as a date candidate by value alone.
	// The comparison is strict: parsed/sampled must exceed it.
	DateThreshold float64 `mapstructure:"date_threshold" yaml:"date_threshold"`
	// ProjectCardinalityRatio is the maximum distinct/row ratio for a
	// textual column to count as a low-to-moderate cardinality label column.
	ProjectCardinalityRatio float64 `mapstructure:"project_cardinality_ratio" yaml:"project_cardinality_ratio"`

	DateKeywords    []string `mapstructure:"date_keywords" yaml:"date_keywords"`
	ProjectKeywords []string `mapstructure:"project_keywords" yaml:"project_keywords"`
	CashInKeywords  []string `mapstructure:"cash_in_keywords" yaml:"cash_in_keywords"`
	CashOutKeywords []string `mapstructure:"cash_out_keywords" yaml:"cash_out_keywords"`
	TotalKeywords   []string `mapstructure:"total_keywords" yaml:"total_keywords"`
}

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	} `mapstructure:"csv" yaml:"csv"`

	Detection DetectionConfig `mapstructure:"detection" yaml:"detection"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then CASHFLOW_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cashflow-insight")
	v.AddConfigPath(".cashflow-insight")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CASHFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultDetection returns the built-in detection configuration.
func DefaultDetection() DetectionConfig {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return config.Detection
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "2006-01-02")

	v.SetDefault("detection.sample_size", 50)
	v.SetDefault("detection.date_threshold", 0.5)
	v.SetDefault("detection.project_cardinality_ratio", 0.5)
	v.SetDefault("detection.date_keywords", []string{
		"date", "month", "period", "day",
	})
	v.SetDefault("detection.project_keywords", []string{
		"project", "category", "name", "client", "customer",
	})
	v.SetDefault("detection.cash_in_keywords", []string{
		"in", "cash in", "income", "revenue", "receipt", "credit", "inflow", "deposit", "sales",
	})
	v.SetDefault("detection.cash_out_keywords", []string{
		"out", "cash out", "expense", "cost", "payment", "debit", "outflow", "withdrawal", "spending",
	})
	v.SetDefault("detection.total_keywords", []string{
		"total", "subtotal", "sum",
	})
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	d := config.Detection
	if d.SampleSize < 1 {
		return fmt.Errorf("detection.sample_size must be positive, got: %d", d.SampleSize)
	}
	if d.DateThreshold < 0.0 || d.DateThreshold >= 1.0 {
		return fmt.Errorf("detection.date_threshold must be in [0.0, 1.0), got: %f", d.DateThreshold)
	}
	if d.ProjectCardinalityRatio <= 0.0 || d.ProjectCardinalityRatio > 1.0 {
		return fmt.Errorf("detection.project_cardinality_ratio must be in (0.0, 1.0], got: %f", d.ProjectCardinalityRatio)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
