package main

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/core/services"
	"github.com/SscSPs/asset_depreciation/internal/platform/config"
	"github.com/SscSPs/asset_depreciation/internal/repositories/database/pgsql"
	"github.com/SscSPs/asset_depreciation/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app is the wired dependency graph shared by the commands.
type app struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.RunMigrations {
		slog.Info("Running database migrations...")
		if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
			return nil, err
		}
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(pool)
	return &app{
		cfg:      cfg,
		pool:     pool,
		services: services.NewServiceContainer(cfg, repos),
	}, nil
}

func (a *app) Close() {
	database.ClosePgxPool(a.pool)
}
