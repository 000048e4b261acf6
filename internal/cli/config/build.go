package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapspl/internal/catalog"
	"github.com/leapstack-labs/leapspl/pkg/completion"
	"github.com/leapstack-labs/leapspl/pkg/suggest"
	"github.com/leapstack-labs/leapspl/pkg/token"
)

// Weights returns the default ranking with suggest.weights applied.
func (c *Config) Weights() (suggest.Weights, error) {
	overrides := make(map[suggest.Tag]int, len(c.Suggest.Weights))
	for name, w := range c.Suggest.Weights {
		tag, err := suggest.ParseTag(name)
		if err != nil {
			return nil, fmt.Errorf("suggest.weights: %w", err)
		}
		overrides[tag] = w
	}
	return suggest.DefaultWeights().With(overrides), nil
}

// Policies returns the splice.policies overrides keyed by category.
func (c *Config) Policies() (map[token.Category]suggest.Policy, error) {
	out := make(map[token.Category]suggest.Policy, len(c.Splice.Policies))
	for name, p := range c.Splice.Policies {
		cat, ok := categoryName(name)
		if !ok {
			return nil, fmt.Errorf("splice.policies: unknown token category %q", name)
		}
		policy, err := suggest.ParsePolicy(p)
		if err != nil {
			return nil, fmt.Errorf("splice.policies.%s: %w", name, err)
		}
		out[cat] = policy
	}
	return out, nil
}

// Engine builds a completion engine from the suggest and splice settings.
func (c *Config) Engine() (*completion.Engine, error) {
	weights, err := c.Weights()
	if err != nil {
		return nil, err
	}
	policies, err := c.Policies()
	if err != nil {
		return nil, err
	}
	return completion.New(
		completion.WithSynthesizer(suggest.NewSynthesizer(weights, c.Suggest.MaxFields)),
		completion.WithSplicer(suggest.NewSplicer(policies)),
	), nil
}

// Catalog is a loaded field catalog and the sources it came from.
type Catalog struct {
	*catalog.Catalog
	Sources []catalog.Source

	db *sql.DB
}

// Close releases the database connection, if any.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Watcher returns a file watcher for the catalog, or nil when catalog.watch
// is off.
func (c *Config) Watcher(cat *Catalog, logger *slog.Logger) *catalog.Watcher {
	if !c.Catalog.Watch || c.Catalog.File == "" {
		return nil
	}
	return &catalog.Watcher{
		Catalog:  cat.Catalog,
		Path:     c.Catalog.File,
		Sources:  cat.Sources,
		Debounce: c.Catalog.Debounce,
		Logger:   logger,
	}
}

// OpenCatalog loads the configured sources. With no source configured the
// catalog is empty. The caller must Close the result.
func (c *Config) OpenCatalog(ctx context.Context, logger *slog.Logger) (*Catalog, error) {
	out := &Catalog{}

	if c.Catalog.File != "" {
		out.Sources = append(out.Sources, catalog.FileSource{Path: c.Catalog.File})
	}
	if c.Catalog.HasDatabase() {
		dialect, err := catalog.ParseDialect(c.Catalog.Driver)
		if err != nil {
			return nil, err
		}
		db, err := catalog.Open(ctx, dialect, c.Catalog.DSN)
		if err != nil {
			return nil, err
		}
		out.db = db
		out.Sources = append(out.Sources, catalog.SQLSource{
			DB:        db,
			Dialect:   dialect,
			Table:     c.Catalog.Table,
			MaxValues: c.Catalog.Values,
			Logger:    logger,
		})
	}

	fields, err := catalog.LoadAll(ctx, out.Sources...)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	out.Catalog = catalog.New(fields)
	logger.Debug("catalog loaded", slog.Int("sources", len(out.Sources)), slog.Int("fields", len(fields)))
	return out, nil
}
