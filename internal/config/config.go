package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/harrison/filekit/internal/logger"
	"github.com/harrison/filekit/internal/units"
)

// EnvConfigPath overrides the default configuration file location
const EnvConfigPath = "FILEKIT_CONFIG"

// Report formats understood by fit
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// FitConfig holds defaults for the fit tool
type FitConfig struct {
	// DiskSize is the default disk capacity, e.g. "4.7g". Empty means the
	// size must be given on the command line.
	DiskSize string `yaml:"disk_size"`

	// Format selects the report rendering (text, yaml)
	Format string `yaml:"format"`
}

// DatesConfig holds defaults for mvd and mvtodate
type DatesConfig struct {
	// Format is the strftime pattern used for directory names
	Format string `yaml:"format"`
}

// ShuffleConfig holds defaults for the shuffle tool
type ShuffleConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Config represents filekit configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	Fit     FitConfig     `yaml:"fit"`
	Dates   DatesConfig   `yaml:"dates"`
	Shuffle ShuffleConfig `yaml:"shuffle"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Fit: FitConfig{
			Format: FormatText,
		},
		Dates: DatesConfig{
			Format: "%Y%m",
		},
	}
}

// DefaultPath returns the configuration file location: $FILEKIT_CONFIG if
// set, otherwise filekit/config.yaml under the XDG config home.
func DefaultPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, "filekit", "config.yaml")
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Keys missing from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel, diskSize, format, dateFormat *string, verbose *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if diskSize != nil {
		c.Fit.DiskSize = *diskSize
	}
	if format != nil {
		c.Fit.Format = *format
	}
	if dateFormat != nil {
		c.Dates.Format = *dateFormat
	}
	if verbose != nil {
		c.Shuffle.Verbose = *verbose
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Fit.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("invalid fit.format %q, must be one of: text, yaml", c.Fit.Format)
	}

	if c.Fit.DiskSize != "" {
		size, err := units.ParseSize(c.Fit.DiskSize)
		if err != nil {
			return fmt.Errorf("invalid fit.disk_size: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("fit.disk_size must be > 0, got %q", c.Fit.DiskSize)
		}
	}

	if c.Dates.Format == "" {
		return fmt.Errorf("dates.format cannot be empty")
	}

	return nil
}
