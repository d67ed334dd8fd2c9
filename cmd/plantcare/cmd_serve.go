package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HendryAvila/plantcare/internal/config"
	pcserver "github.com/HendryAvila/plantcare/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Serves PlantCare over MCP on stdin/stdout. When telemetry.nats_url is
configured, sensor readings are consumed from NATS in the background.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, cleanup, err := pcserver.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The host closing stdin ends the session; stop the other workers too.
		defer cancel()
		stdio := server.NewStdioServer(rt.MCP)
		stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))
		logger.Info("serving MCP on stdio", zap.String("version", pcserver.Version))
		if err := stdio.Listen(gctx, os.Stdin, os.Stdout); err != nil && gctx.Err() == nil {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	})

	if rt.Subscriber != nil {
		g.Go(func() error {
			// Telemetry is optional: without it sensor_update still works.
			if err := rt.Subscriber.Run(gctx); err != nil {
				logger.Warn("telemetry disabled", zap.Error(err))
			}
			return nil
		})
	}

	return g.Wait()
}
