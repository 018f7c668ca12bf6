package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aldermoor/weatherlog/internal/application/handlers"
	"github.com/aldermoor/weatherlog/internal/domain/services"
	"github.com/aldermoor/weatherlog/internal/infrastructure/config"
	"github.com/aldermoor/weatherlog/internal/infrastructure/historyapi"
	"github.com/aldermoor/weatherlog/internal/infrastructure/openmeteo"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed, services and clients stay internal.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Query   *handlers.QueryHandler
	History *handlers.HistoryHandler
	Import  *handlers.ImportHandler
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newCLILogger()
	defer logger.Sync()

	clock := clockwork.NewRealClock()

	api := historyapi.New(cfg.History.BaseURL, cfg.History.Timeout.Std(), logger)
	provider := openmeteo.New(openmeteo.Options{
		ForecastURL: cfg.Weather.ForecastURL,
		GeocodeURL:  cfg.Weather.GeocodeURL,
		Timeout:     cfg.Weather.Timeout.Std(),
		MaxRetries:  cfg.Weather.MaxRetries,
	}, logger)

	store := services.NewHistoryStore(api, clock)
	edits := services.NewEditManager(store)
	confirmer := services.NewDeleteConfirmer(store, clock)

	deps := &Deps{
		Config:  cfg,
		Logger:  logger,
		Query:   handlers.NewQueryHandler(provider, clock),
		History: handlers.NewHistoryHandler(store, edits, confirmer),
		Import:  handlers.NewImportHandler(store),
	}

	return fn(deps)
}

// newCLILogger builds a logger that keeps command output clean: warnings and
// errors only, on stderr.
func newCLILogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
