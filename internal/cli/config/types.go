// Package config provides configuration management for the LeapSPL CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// Config holds all CLI configuration options.
type Config struct {
	Catalog      CatalogConfig `koanf:"catalog"`
	Suggest      SuggestConfig `koanf:"suggest"`
	Splice       SpliceConfig  `koanf:"splice"`
	Serve        ServeConfig   `koanf:"serve"`
	Verbose      bool          `koanf:"verbose"`
	LogLevel     string        `koanf:"log_level"`
	OutputFormat string        `koanf:"output"`

	// BaseDir anchors relative paths: the config file's directory, or the
	// working directory when no file was found.
	BaseDir string `koanf:"-"`
}

// CatalogConfig selects where field descriptors come from. A file and a
// database table may both be configured; the file takes precedence for
// fields defined in both.
type CatalogConfig struct {
	File     string        `koanf:"file"`
	Driver   string        `koanf:"driver"`
	DSN      string        `koanf:"dsn"`
	Table    string        `koanf:"table"`
	Values   int           `koanf:"values"` // distinct values per string column, 0 for none
	Watch    bool          `koanf:"watch"`
	Debounce time.Duration `koanf:"debounce"`
}

// HasDatabase reports whether a database source is configured.
func (c CatalogConfig) HasDatabase() bool {
	return c.Driver != "" || c.DSN != "" || c.Table != ""
}

// SuggestConfig tunes the synthesizer.
type SuggestConfig struct {
	MaxFields int            `koanf:"max_fields"`
	Weights   map[string]int `koanf:"weights"` // tag name -> weight
}

// SpliceConfig overrides splice policies per token category.
type SpliceConfig struct {
	Policies map[string]string `koanf:"policies"` // category name -> policy name
}

// ServeConfig holds HTTP server options.
type ServeConfig struct {
	Addr            string        `koanf:"addr"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Default configuration values.
const (
	DefaultAddr            = "127.0.0.1:7070"
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultDebounce        = 100 * time.Millisecond
	DefaultMaxFields       = suggest.DefaultMaxFields
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Catalog:      CatalogConfig{Debounce: DefaultDebounce},
		Suggest:      SuggestConfig{MaxFields: DefaultMaxFields},
		Serve:        ServeConfig{Addr: DefaultAddr, CORSOrigins: []string{"*"}, ShutdownTimeout: DefaultShutdownTimeout},
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
	}
}
