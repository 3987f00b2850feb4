package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/memfs-dev/memfs/internal/util"
)

// Bytes per MB
const MB = 1024 * 1024

// CLI verbosity levels accepted in overrides; mapped onto internal log
// levels by Merge.
const (
	ErrorVerbose = 1
	WarnVerbose  = 2
	InfoVerbose  = 3
	DebugVerbose = 4
	TraceVerbose = 5
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultMaxFileSize caps a single file's content
	DefaultMaxFileSize = 64 * MB

	// DefaultMaxNameLen caps a single path component, matching common
	// on-disk filesystem limits so staged trees materialize cleanly
	DefaultMaxNameLen = 255

	// DefaultExecTimeout is the staged-execution timeout in seconds;
	// 0 disables the timeout
	DefaultExecTimeout = 30.0

	// DefaultLogLvl is the initial log level
	DefaultLogLvl = util.InfoLevel
)

// Config contains runtime configuration values for the in-memory filesystem
// and its execution collaborator.
type Config struct {
	MaxFileSize int           // Maximum content size in bytes for a single file (Default 64MB)
	MaxNameLen  int           // Maximum length of a single path component (Default 255)
	ExecTimeout float64       // Timeout in seconds for staged executions; 0 means none (Default 30)
	TempDir     string        // Staging directory for executions; empty means the system default
	LogLvl      util.LogLevel // Log level (Default info)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions. LogLvl takes the CLI verbosity scale 1 (error) to 5 (trace).
type ConfigOverride struct {
	MaxFileSize *int     `yaml:"max_file_size,omitempty" json:"max_file_size,omitempty"`
	MaxNameLen  *int     `yaml:"max_name_len,omitempty" json:"max_name_len,omitempty"`
	ExecTimeout *float64 `yaml:"exec_timeout,omitempty" json:"exec_timeout,omitempty"`
	TempDir     *string  `yaml:"temp_dir,omitempty" json:"temp_dir,omitempty"`
	LogLvl      *int     `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MaxFileSize: DefaultMaxFileSize,
		MaxNameLen:  DefaultMaxNameLen,
		ExecTimeout: DefaultExecTimeout,
		TempDir:     "",
		LogLvl:      DefaultLogLvl,
	}
}

// NewConfig creates a Config from defaults with the override, if any,
// applied on top.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.MaxFileSize != nil {
		c.MaxFileSize = *override.MaxFileSize
	}
	if override.MaxNameLen != nil {
		c.MaxNameLen = *override.MaxNameLen
	}
	if override.ExecTimeout != nil {
		c.ExecTimeout = *override.ExecTimeout
	}
	if override.TempDir != nil {
		c.TempDir = *override.TempDir
	}
	if override.LogLvl != nil {
		c.LogLvl = verboseToLevel(*override.LogLvl)
	}
}

// verboseToLevel clamps a CLI verbosity value into range and maps it onto
// the internal log level scale.
func verboseToLevel(verbose int) util.LogLevel {
	if verbose < ErrorVerbose {
		verbose = ErrorVerbose
	}
	if verbose > TraceVerbose {
		verbose = TraceVerbose
	}
	levels := [...]util.LogLevel{
		util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel,
	}
	return levels[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
