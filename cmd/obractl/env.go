package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Obra-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Obra-api/pkg/config"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

// connect carga la configuración (mismas variables que la API) y abre el pool.
func connect(ctx context.Context) (*pgxpool.Pool, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "obractl"})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return pool, log, nil
}
