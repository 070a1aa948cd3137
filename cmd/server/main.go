package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealops/kitchen-system/internal/api"
	"github.com/mealops/kitchen-system/internal/auth"
	"github.com/mealops/kitchen-system/internal/core/service"
	"github.com/mealops/kitchen-system/internal/infrastructure/config"
	mongodb "github.com/mealops/kitchen-system/internal/infrastructure/db/mongo"
	redisdb "github.com/mealops/kitchen-system/internal/infrastructure/db/redis"
	"github.com/mealops/kitchen-system/internal/infrastructure/localstore"
	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
	"github.com/mealops/kitchen-system/internal/session"
	"github.com/mealops/kitchen-system/pkg/logger"
)

// @title        kitchen-system back office API
// @version      1.0
// @description  Role-based operations backend: auth, registration approval, user directory.
// @BasePath     /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// File-backed key-value store: always available, holds device-style
	// state (session snapshot, preferences) and the durable stores when
	// no MongoDB is configured.
	fileKV, err := storage.NewFileStore(cfg.Storage.DataDir, logger.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.DataDir).Msg("failed to open data directory")
	}

	deps := api.Deps{
		Prefs:  localstore.NewPreferences(fileKV),
		Logger: log,
	}

	switch cfg.Storage.Backend {
	case "file":
		deps.Users = localstore.NewUserStore(fileKV)
		deps.Requests = localstore.NewRequestStore(fileKV)
		log.Info().Str("dir", cfg.Storage.DataDir).Msg("using file-backed stores")
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure indexes")
		}
		deps.Users = users
		deps.Requests = mongodb.NewRequestRepository(db)
		deps.Mongo = db
	}

	// Session snapshots go to Redis when configured, otherwise to disk.
	sessionKV := storage.Store(fileKV)
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer func() {
			_ = rdb.Close()
		}()
		deps.Redis = rdb
		sessionKV = storage.NewRedisStore(rdb, logger.Component("storage"))
	}

	deps.Sessions = session.NewPersistent(sessionKV, logger.Component("session"))
	deps.Sessions.Bootstrap(ctx)

	deps.Tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	hasher := auth.NewBcryptHasher(0)
	directory := service.NewDirectoryService(deps.Users, hasher, logger.Component("directory"))
	registration := service.NewRegistrationService(deps.Requests, directory, logger.Component("registration"))
	authSvc := service.NewAuthService(directory, deps.Tokens, deps.Sessions, logger.Component("auth"))

	e := api.NewRouter(deps, directory, registration, authSvc)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
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
