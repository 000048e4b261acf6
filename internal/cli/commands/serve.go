package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapspl/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the completion API over HTTP",
		Long: `Start an HTTP server exposing the completion engine.

Endpoints:
  GET  /healthz       liveness check
  POST /v1/complete   {"query": "...", "limit": 10}
  POST /v1/splice     {"query": "...", "key": "<label|id>"}
  GET  /v1/fields     current catalog
  GET  /v1/events     server-sent events on catalog reload

The listen address and allowed CORS origins come from serve.addr and
serve.cors_origins, or the --addr and --cors-origin flags.`,
		Example: `  leapspl serve
  leapspl serve --addr :8080 --catalog fields.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, version)
		},
	}

	return cmd
}

func runServe(cmd *cobra.Command, version string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := cmdCtx.Cfg.Watcher(cmdCtx.Catalog, cmdCtx.Logger)
	if watcher != nil {
		if err := watcher.Check(); err != nil {
			return err
		}
	}

	srv := server.New(server.Config{
		Addr:            cmdCtx.Cfg.Serve.Addr,
		CORSOrigins:     cmdCtx.Cfg.Serve.CORSOrigins,
		ShutdownTimeout: cmdCtx.Cfg.Serve.ShutdownTimeout,
		Engine:          cmdCtx.Engine,
		Catalog:         cmdCtx.Catalog.Catalog,
		Watcher:         watcher,
		Logger:          cmdCtx.Logger,
		Version:         version,
	})

	return srv.Serve(ctx)
}
