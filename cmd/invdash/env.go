package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"invdash/internal/config"
	"invdash/internal/logging"
	"invdash/internal/store"
	"invdash/internal/telemetry"
)

// env holds what every command needs: config, logger, tracing and the database.
type env struct {
	cfg      config.Config
	log      *zap.Logger
	db       *sql.DB
	shutdown telemetry.ShutdownFunc
}

func openEnv(ctx context.Context, configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		return nil, err
	}
	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	db, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		_ = shutdown(ctx)
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("opened database", zap.String("path", cfg.Database.Path))
	return &env{cfg: cfg, log: logger, db: db, shutdown: shutdown}, nil
}

func (e *env) Close(ctx context.Context) error {
	err := errors.Join(e.db.Close(), e.shutdown(ctx))
	_ = e.log.Sync()
	return err
}
