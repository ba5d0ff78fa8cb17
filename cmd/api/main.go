// Command api runs the sweet shop inventory HTTP server.
//
//	@title			Sweet Shop Inventory API
//	@version		1.0
//	@description	Token-authenticated inventory management for the sweet shop.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweetshop/inventory-api/internal/api"
	"github.com/sweetshop/inventory-api/internal/infrastructure/db/mongo"
	"github.com/sweetshop/inventory-api/internal/infrastructure/db/redis"
	"github.com/sweetshop/inventory-api/internal/infrastructure/queue"
	"github.com/sweetshop/inventory-api/internal/pkg/config"
	"github.com/sweetshop/inventory-api/pkg/logger"
	"github.com/sweetshop/inventory-api/pkg/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The process refuses to start without its stores: fail fast here rather
	// than retrying per request.
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	// Indexes before traffic: the unique email index is the authoritative
	// guard against duplicate registrations.
	userRepo := mongo.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	sweetRepo := mongo.NewSweetRepository(db)
	if err := sweetRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create sweet indexes")
	}
	movementRepo := mongo.NewMovementRepository(db)
	if err := movementRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create movement indexes")
	}

	journal := queue.NewDispatcher(0, movementRepo, log)
	journal.Start(ctx)

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	e := api.NewRouter(db, rdb, tokens, journal, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
