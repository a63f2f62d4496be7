// Package config loads and validates CLI configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-coverletter/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidFormat   = errors.New("invalid output format")
)

// Field length limits: these values end up in file names and API
// requests, so keep them bounded.
const (
	MaxNameLength    = 100  // Client name
	MaxCompanyLength = 100  // Company name
	MaxAddressLength = 200  // One address line
	MaxDateLength    = 30   // "2025-12-31" or "December 31, 2025"
	MaxAPIKeyLength  = 2048 // CloudConvert keys are long JWTs
)

// Config holds all configuration for letter generation.
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
}

// ClientConfig carries default client details, overridable per run by
// CLI flags.
type ClientConfig struct {
	Name     string `yaml:"name"`
	Company  string `yaml:"company"`
	Address1 string `yaml:"address1"`
	Address2 string `yaml:"address2"` // Optional second address line
	Date     string `yaml:"date"`     // Literal date, "auto", or "auto:FORMAT"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Format string `yaml:"format"` // "docx" or "pdf" (default: "docx")
	Dir    string `yaml:"dir"`    // Default output directory (empty = CWD)
}

// ConvertConfig defines remote conversion options. Durations are
// Go duration strings ("1s", "5m"); empty means library default.
type ConvertConfig struct {
	APIKey       string `yaml:"apiKey"`       // CloudConvert credential
	PollInterval string `yaml:"pollInterval"` // Delay between status checks
	PollTimeout  string `yaml:"pollTimeout"`  // Max wait for a job
}

// PollIntervalDuration returns the parsed poll interval, or zero when
// unset. Validate has already rejected malformed values.
func (c ConvertConfig) PollIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// PollTimeoutDuration returns the parsed poll timeout, or zero when
// unset.
func (c ConvertConfig) PollTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollTimeout)
	return d
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "docx"},
	}
}

// Validate checks field lengths and enumerations. Required-field
// presence is the generator's concern; the config file may legitimately
// leave everything blank for flags to fill in.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"client.name", c.Client.Name, MaxNameLength},
		{"client.company", c.Client.Company, MaxCompanyLength},
		{"client.address1", c.Client.Address1, MaxAddressLength},
		{"client.address2", c.Client.Address2, MaxAddressLength},
		{"client.date", c.Client.Date, MaxDateLength},
		{"convert.apiKey", c.Convert.APIKey, MaxAPIKeyLength},
	}
	for _, check := range checks {
		if len(check.value) > check.max {
			return fmt.Errorf("%w: %s (%d > %d)", ErrFieldTooLong, check.name, len(check.value), check.max)
		}
	}

	switch c.Output.Format {
	case "", "docx", "pdf":
	default:
		return fmt.Errorf("%w: %q (must be docx or pdf)", ErrInvalidFormat, c.Output.Format)
	}

	for _, d := range []struct{ name, value string }{
		{"convert.pollInterval", c.Convert.PollInterval},
		{"convert.pollTimeout", c.Convert.PollTimeout},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigParse, d.name, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A string containing a path separator is treated as a file path;
// anything else is a config name searched in standard locations.
// Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name, trying .yaml
// then .yml, first in the current directory and then in
// ~/.config/go-coverletter/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-coverletter", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
