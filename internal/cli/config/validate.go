package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapspl/internal/catalog"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// OutputFormats lists the accepted values of the output key.
var OutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Suggest.MaxFields < 0 {
		errs = append(errs, fmt.Errorf("suggest.max_fields must not be negative, got %d", c.Suggest.MaxFields))
	}
	if _, err := c.Weights(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Policies(); err != nil {
		errs = append(errs, err)
	}
	if c.Catalog.HasDatabase() {
		if _, err := catalog.ParseDialect(c.Catalog.Driver); err != nil {
			errs = append(errs, fmt.Errorf("catalog.driver: %w", err))
		}
		if c.Catalog.Table == "" {
			errs = append(errs, fmt.Errorf("catalog.table is required when catalog.driver is set"))
		}
	}
	if c.Catalog.Values < 0 {
		errs = append(errs, fmt.Errorf("catalog.values must not be negative, got %d", c.Catalog.Values))
	}
	if c.Catalog.Watch && c.Catalog.File == "" {
		errs = append(errs, fmt.Errorf("catalog.watch requires catalog.file"))
	}
	if !validOutput(c.OutputFormat) {
		errs = append(errs, fmt.Errorf("unknown output format %q (want one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", ")))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validOutput(format string) bool {
	if format == "" {
		return true
	}
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// categoryName accepts both snake and kebab spellings of a category.
func categoryName(s string) (token.Category, bool) {
	return token.Lookup(strings.ReplaceAll(strings.ToLower(s), "-", "_"))
}
