package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapspl/pkg/suggest"
)

// ErrUnknownDriver is returned for database drivers with no catalog query.
var ErrUnknownDriver = errors.New("unknown catalog driver")

// Source produces field descriptors.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]suggest.Field, error)
}

// SourceError wraps a failure of one source.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("catalog source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// LoadAll loads every source concurrently and merges the results in source
// order. When two sources define the same field the earlier one wins.
func LoadAll(ctx context.Context, sources ...Source) ([]suggest.Field, error) {
	results := make([][]suggest.Field, len(sources))

	eg, egctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		eg.Go(func() error {
			fields, err := src.Load(egctx)
			if err != nil {
				return &SourceError{Source: src.Name(), Err: err}
			}
			results[i] = fields
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var merged []suggest.Field
	for _, fields := range results {
		for _, f := range fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			merged = append(merged, f)
		}
	}
	return merged, nil
}

// Reload loads sources and installs the result into c.
func Reload(ctx context.Context, c *Catalog, sources ...Source) error {
	fields, err := LoadAll(ctx, sources...)
	if err != nil {
		return err
	}
	c.Replace(fields)
	return nil
}
