package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapspl/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. Each line of a
document is completed and checked as a separate query. With catalog.watch
set, edits to the catalog file are picked up without a restart.`,
		Example: `  # Start LSP server (usually called by an editor)
  leapspl lsp --catalog fields.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, version)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command, version string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.Options{
		Engine:  cmdCtx.Engine,
		Catalog: cmdCtx.fields(),
		Logger:  cmdCtx.Logger,
		Version: version,
	})

	watcher := cmdCtx.Cfg.Watcher(cmdCtx.Catalog, cmdCtx.Logger)
	if watcher == nil {
		return server.Run()
	}
	if err := watcher.Check(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// server.Run returns only when stdin closes; report failures now.
		if err := watcher.Run(egctx); err != nil {
			cmdCtx.Logger.Error("catalog watcher stopped", "error", err)
			return err
		}
		return nil
	})
	eg.Go(func() error {
		defer cancel()
		return server.Run()
	})
	return eg.Wait()
}
