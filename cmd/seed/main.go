// cmd/seed/main.go
package main

import (
	"context"
	"os"
	"time"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/repository/postgres"
	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/db"
)

// seed replaces the withdrawal method catalog. Safe to run repeatedly.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.LoadToolConfig()
	if err != nil {
		util.GetLogger().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	util.InitLogger(cfg.LogLevel)
	logger := util.GetLogger()

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(database); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// Seeding invalidates the API's cached withdraw-methods list.
	methodCache := cache.Cache(cache.Noop{})
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		methodCache = cache.NewRedisCache(client, cache.KeyPrefix, 0)
	}

	methods := service.NewMethodService(
		database,
		database,
		postgres.NewMethodRepository(),
		methodCache,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		logger,
	)

	result, err := methods.Seed(ctx)
	if err != nil {
		logger.Error("Failed to seed transaction methods", "error", err)
		os.Exit(1)
	}
	logger.Info("Withdrawal methods seeded", "removed", result.Removed, "upserted", result.Upserted)
}
