package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/traintrack/traintrack-api/internal/catalog"
	"github.com/traintrack/traintrack-api/internal/config"
	"github.com/traintrack/traintrack-api/internal/history"
	"github.com/traintrack/traintrack-api/internal/logger"
	"github.com/traintrack/traintrack-api/internal/server"
)

var (
	configPath string
	servePort  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the wizard catalog and the fit-scoring engine.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	store, err := catalog.Connect(context.Background(), cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to catalog: %w", err)
	}
	defer store.Close()

	log.Info("connected to catalog database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	srv := server.New(cfg, store, history.New(store.Pool()), log)
	return srv.Start()
}
