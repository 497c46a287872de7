package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/marketbrief/internal/api"
	"github.com/newthinker/marketbrief/internal/logger"
	"github.com/newthinker/marketbrief/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marketbrief server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize logger
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
	}

	p, err := buildPipeline(cfg, registry, log)
	if err != nil {
		return err
	}

	log.Info("starting marketbrief server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	server, err := api.NewServer(api.Config{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		APIKey:        cfg.Server.APIKey,
		DefaultTicker: cfg.Pipeline.DefaultTicker,
		DefaultQuery:  cfg.Pipeline.DefaultQuery,
		MetricsPath:   cfg.Metrics.Path,
	}, p, registry, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down marketbrief server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
