package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"loancalc/pkg/config"
	"loancalc/pkg/db"
	"loancalc/pkg/logging"
)

func main() {
	cfg := config.Load()
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "file://migrations"
	}

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Uses DIRECT_URL when set so migrations bypass the pooler.
	if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
		log.Error("migrate failed", zap.String("path", cfg.MigrationsPath), zap.Error(err))
		os.Exit(1)
	}

	// DSNs are never logged.
	pool, err := db.Open(context.Background(), cfg)
	if err != nil {
		log.Error("runtime db open failed", zap.Error(err))
		os.Exit(1)
	}
	pool.Close()

	log.Info("migrations applied", zap.String("path", cfg.MigrationsPath))
}
