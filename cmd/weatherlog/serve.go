package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aldermoor/weatherlog/internal/infrastructure/config"
	"github.com/aldermoor/weatherlog/internal/infrastructure/openmeteo"
	"github.com/aldermoor/weatherlog/internal/infrastructure/recorddb/sqlite"
	"github.com/aldermoor/weatherlog/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the history persistence service",
		Long:  "Starts the HTTP service backing the history commands, with SQLite storage.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	repo, err := sqlite.NewRepository(cfg.SQLite, clockwork.NewRealClock())
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	provider := openmeteo.New(openmeteo.Options{
		ForecastURL: cfg.Weather.ForecastURL,
		GeocodeURL:  cfg.Weather.GeocodeURL,
		Timeout:     cfg.Weather.Timeout.Std(),
		MaxRetries:  cfg.Weather.MaxRetries,
	}, logger)

	srv := server.New(repo, provider, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
