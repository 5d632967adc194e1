package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tendermint/ics07/ibc/host"
	"github.com/tendermint/ics07/libs/log"
	tmmath "github.com/tendermint/ics07/libs/math"
	"github.com/tendermint/ics07/light"
)

// NOTE: Most of the structs & relevant comments + the
// default configuration options were used to manually
// generate the config.toml. Please reflect any changes
// made here in the defaultConfigTemplate constant in
// config/toml.go
// NOTE: libs/cli must know to look in the config dir!
var (
	DefaultICS07Dir  = ".ics07"
	defaultConfigDir = "config"

	defaultConfigFileName = "config.toml"
	defaultConfigFilePath = filepath.Join(defaultConfigDir, defaultConfigFileName)
)

// Config defines the top level configuration of the ics07 tool.
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	Evidence        *EvidenceConfig        `mapstructure:"evidence"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		Evidence:        DefaultEvidenceConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration that can be used for testing.
func TestConfig() *Config {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.Instrumentation.Namespace = "ics07_test"
	return cfg
}

// SetRoot sets the RootDir for all Config structs.
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// ConfigFile returns the full path to config.toml.
func (cfg *Config) ConfigFile() string {
	return rootify(defaultConfigFilePath, cfg.RootDir)
}

// MetricsFile returns the full path of the instrumentation metrics file.
func (cfg *Config) MetricsFile() string {
	return rootify(cfg.Instrumentation.MetricsFile, cfg.RootDir)
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.Evidence.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [evidence] section: %w", err)
	}
	if err := cfg.Instrumentation.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [instrumentation] section: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration of the tool.
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Output level for logging
	LogLevel string `mapstructure:"log-level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log-format"`
}

// DefaultBaseConfig returns a default base configuration.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		LogLevel:  "info",
		LogFormat: log.LogFormatPlain,
	}
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg BaseConfig) ValidateBasic() error {
	switch strings.ToLower(cfg.LogFormat) {
	case log.LogFormatPlain, log.LogFormatText, log.LogFormatJSON:
	default:
		return errors.New("unknown log format (must be 'plain', 'text' or 'json')")
	}
	if cfg.LogLevel == "" {
		return errors.New("log-level can't be empty")
	}
	return nil
}

//-----------------------------------------------------------------------------
// EvidenceConfig

// EvidenceConfig defines how misbehaviour evidence is built and checked.
type EvidenceConfig struct {
	// Fraction of the total voting power a commit must exceed, e.g. "2/3".
	CommitThreshold string `mapstructure:"commit-threshold"`

	// Client id used by the build command when none is given.
	ClientID string `mapstructure:"client-id"`
}

// DefaultEvidenceConfig returns a default evidence configuration.
func DefaultEvidenceConfig() *EvidenceConfig {
	return &EvidenceConfig{
		CommitThreshold: light.DefaultCommitThreshold.String(),
		ClientID:        "07-tendermint-0",
	}
}

// Threshold parses CommitThreshold.
func (cfg *EvidenceConfig) Threshold() (tmmath.Fraction, error) {
	fr, err := tmmath.ParseFraction(cfg.CommitThreshold)
	if err != nil {
		return tmmath.Fraction{}, fmt.Errorf("commit-threshold: %w", err)
	}
	if err := light.ValidateTrustLevel(fr); err != nil {
		return tmmath.Fraction{}, fmt.Errorf("commit-threshold: %w", err)
	}
	return fr, nil
}

// ValidateBasic performs basic validation.
func (cfg *EvidenceConfig) ValidateBasic() error {
	if _, err := cfg.Threshold(); err != nil {
		return err
	}
	if cfg.ClientID != "" {
		if _, err := host.ParseClientID(cfg.ClientID); err != nil {
			return fmt.Errorf("client-id: %w", err)
		}
	}
	return nil
}

//-----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting.
type InstrumentationConfig struct {
	// When true, evidence metrics are collected and, once a command
	// finishes, written to MetricsFile in the Prometheus text format.
	Prometheus bool `mapstructure:"prometheus"`

	// Instrumentation namespace.
	Namespace string `mapstructure:"namespace"`

	// Path of the metrics file, relative to the home directory unless
	// absolute. Point a node_exporter textfile collector at its directory.
	MetricsFile string `mapstructure:"metrics-file"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting.
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:  false,
		Namespace:   "ics07",
		MetricsFile: "data/ics07.prom",
	}
}

// ValidateBasic performs basic validation.
func (cfg *InstrumentationConfig) ValidateBasic() error {
	if cfg.Prometheus && cfg.Namespace == "" {
		return errors.New("namespace can't be empty when prometheus is enabled")
	}
	if cfg.Prometheus && cfg.MetricsFile == "" {
		return errors.New("metrics-file can't be empty when prometheus is enabled")
	}
	return nil
}

//-----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
