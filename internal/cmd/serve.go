package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pthm/prosody/internal/phonetics"
	"github.com/pthm/prosody/internal/pipeline"
	"github.com/pthm/prosody/internal/server"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve poem analysis over HTTP",
	Long: `Run a JSON API for poem analysis.

  POST /api/analyze   {"text": "..."} or {"document": {...}}
  GET  /api/forms     the fixed-form catalog
  GET  /healthz       liveness

Examples:
  prosody serve
  prosody serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	src, err := phonetics.New(pipeline.SourceOptions(cfg), logger)
	if err != nil {
		// Annotated documents can still be served without a source
		GetUI().Warn("phonetic source unavailable, raw text requests will fail: %v", err)
		src = nil
	}

	analyzer, err := pipeline.New(cfg, src, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(analyzer, cfg, logger).ListenAndServe(ctx)
}
