package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/internal/cli/config"
	"github.com/leapstack-labs/leapspl/internal/cli/output"
	"github.com/leapstack-labs/leapspl/pkg/completion"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *completion.Engine
	Catalog  *config.Catalog
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the engine, the loaded
// catalog and a renderer. Returns the context and a cleanup function that
// must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx, err := NewCommandContextWithoutCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}

	cat, err := cmdCtx.Cfg.OpenCatalog(cmd.Context(), cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Catalog = cat

	cleanup := func() {
		_ = cat.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutCatalog creates a CommandContext without loading
// the catalog. Useful for commands that never offer fields.
func NewCommandContextWithoutCatalog(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	eng, err := cfg.Engine()
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, nil
}

// fields returns the catalog as a completion.Catalog. A missing catalog is
// an untyped nil so the engine offers no fields.
func (c *CommandContext) fields() completion.Catalog {
	if c.Catalog == nil || c.Catalog.Catalog == nil {
		return nil
	}
	return c.Catalog.Catalog
}
