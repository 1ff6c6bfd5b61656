// ABOUTME: Configuration for the gcbench workload driver
// ABOUTME: Viper loading with validator tags and a YAML default writer

// Package config loads gcbench settings from a file, GCBENCH_* environment
// variables and built-in defaults.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (GCBENCH_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the complete gcbench configuration.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Heap configures the collector under test
	Heap HeapConfig `mapstructure:"heap" yaml:"heap"`

	// Workload shapes the synthetic interpreter workload
	Workload WorkloadConfig `mapstructure:"workload" yaml:"workload"`

	// Metrics contains Prometheus endpoint settings
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format is text or json
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output is stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// HeapConfig configures the collector.
type HeapConfig struct {
	// Threshold is the number of allocations between automatic collections.
	// Default: 32
	Threshold int `mapstructure:"threshold" validate:"gte=1" yaml:"threshold"`

	// Prepass enables pruning of never-aliased garbage before marking.
	// Default: true
	Prepass bool `mapstructure:"prepass" yaml:"prepass"`
}

// WorkloadConfig shapes the synthetic workload.
type WorkloadConfig struct {
	// Steps is the number of mutator operations to run
	Steps int `mapstructure:"steps" validate:"gte=1" yaml:"steps"`

	// Seed makes runs reproducible
	Seed int64 `mapstructure:"seed" yaml:"seed"`

	// MaxRoots caps how many values the driver keeps rooted at once
	MaxRoots int `mapstructure:"max_roots" validate:"gte=1" yaml:"max_roots"`

	// ListLength is the maximum length of lists built per step
	ListLength int `mapstructure:"list_length" validate:"gte=1" yaml:"list_length"`

	// CycleRatio is the probability that a built list is closed into a cycle
	CycleRatio float64 `mapstructure:"cycle_ratio" validate:"gte=0,lte=1" yaml:"cycle_ratio"`

	// CollectEvery forces an explicit collection every N steps; 0 relies
	// on the heap threshold only
	CollectEvery int `mapstructure:"collect_every" validate:"gte=0" yaml:"collect_every"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled serves /metrics while the workload runs
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Addr is the listen address, e.g. ":9090"
	Addr string `mapstructure:"addr" validate:"required_if=Enabled true" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			Output: "stderr",
		},
		Heap: HeapConfig{
			Threshold: 32,
			Prepass:   true,
		},
		Workload: WorkloadConfig{
			Steps:        10000,
			Seed:         1,
			MaxRoots:     64,
			ListLength:   16,
			CycleRatio:   0.25,
			CollectEvery: 0,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load reads configuration from configPath (optional), the environment
// and defaults, then validates it.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("GCBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)

	v.SetDefault("heap.threshold", d.Heap.Threshold)
	v.SetDefault("heap.prepass", d.Heap.Prepass)

	v.SetDefault("workload.steps", d.Workload.Steps)
	v.SetDefault("workload.seed", d.Workload.Seed)
	v.SetDefault("workload.max_roots", d.Workload.MaxRoots)
	v.SetDefault("workload.list_length", d.Workload.ListLength)
	v.SetDefault("workload.cycle_ratio", d.Workload.CycleRatio)
	v.SetDefault("workload.collect_every", d.Workload.CollectEvery)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// WriteDefault writes the default configuration as YAML to path. Existing
// files are only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
