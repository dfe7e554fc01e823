// Package config loads the optional nforeport YAML configuration file.
// Flags always override config values; a missing default config is not
// an error, only a missing explicitly-requested one is.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ChenC2022/Automatic-content-processing-flow/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxFormatLength = 10 // "md", "html", "pdf", "all"
)

// Config holds all configuration for report generation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Format string       `yaml:"format"`  // "md", "html", "pdf", "all" (empty = md)
	Open   bool         `yaml:"open"`    // open HTML result after generation
	PDF    PDFConfig    `yaml:"pdf"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default scan directory (empty = current directory)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultPath string `yaml:"defaultPath"` // Default output path (empty = derived from report title)
}

// PDFConfig defines PDF rendering options.
type PDFConfig struct {
	Timeout string `yaml:"timeout"` // Go duration string, e.g. "90s" (empty = library default)
}

// DefaultConfig returns a config with zero values, meaning built-in
// defaults apply everywhere.
func DefaultConfig() *Config {
	return &Config{}
}

// Load resolves and parses the configuration.
//
// When explicitPath is non-empty the file must exist. Otherwise the
// search path is tried in order and absence everywhere yields
// DefaultConfig without error.
func Load(explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		for _, candidate := range SearchPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is operator-supplied by design
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SearchPaths returns the default config locations, most specific first.
func SearchPaths() []string {
	paths := []string{"nforeport.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nforeport", "config.yaml"))
	}
	return paths
}

// Validate checks field values and lengths.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultPath", c.Output.DefaultPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("format", c.Format, MaxFormatLength); err != nil {
		return err
	}

	switch c.Format {
	case "", "md", "html", "pdf", "all":
	default:
		return fmt.Errorf("%w: %q (must be md, html, pdf, or all)", ErrInvalidFormat, c.Format)
	}

	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, c.PDF.Timeout)
		}
	}
	return nil
}

// Timeout returns the parsed PDF timeout, or zero when unset. Call only
// after Validate.
func (c *Config) Timeout() time.Duration {
	if c.PDF.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.PDF.Timeout)
	return d
}

func validateFieldLength(name, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", ErrFieldTooLong, name, len(value), maxLength)
	}
	return nil
}
