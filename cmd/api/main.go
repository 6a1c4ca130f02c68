// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Pet Store HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the stores (memory, or PostgreSQL with migrations).
//  4. Connect to Redis when configured and cache pet lookups.
//  5. Load the OpenAPI contract and the operation registry.
//  6. Wire the facade, the gate and the front controller.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/petstore/internal/api"
	"github.com/taibuivan/petstore/internal/contract"
	"github.com/taibuivan/petstore/internal/operation"
	"github.com/taibuivan/petstore/internal/order"
	"github.com/taibuivan/petstore/internal/pet"
	"github.com/taibuivan/petstore/internal/petstore"
	"github.com/taibuivan/petstore/internal/platform/config"
	"github.com/taibuivan/petstore/internal/platform/constants"
	"github.com/taibuivan/petstore/internal/platform/failure"
	"github.com/taibuivan/petstore/internal/platform/middleware"
	"github.com/taibuivan/petstore/internal/platform/migration"
	pgstore "github.com/taibuivan/petstore/internal/platform/postgres"
	redisstore "github.com/taibuivan/petstore/internal/platform/redis"
	"github.com/taibuivan/petstore/internal/platform/sec"
	"github.com/taibuivan/petstore/internal/user"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
		slog.Bool("pet_cache", cfg.UsesRedis()),
	)

	// Misconfiguration is caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var health api.HealthDependencies

	// ── 3. Stores ─────────────────────────────────────────────────────────
	var (
		pets   pet.Repository   = pet.NewMemoryRepository()
		orders order.Repository = order.NewMemoryRepository()
		users  user.Repository  = user.NewMemoryRepository()
	)

	if cfg.UsesPostgres() {
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		pets = pet.NewPostgresRepository(pool)
		orders = order.NewPostgresRepository(pool)
		users = user.NewPostgresRepository(pool)

		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	if cfg.UsesRedis() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		pets = pet.NewCachedRepository(pets, rdb, cfg.PetCacheTTL, log)

		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Contract & Operations ──────────────────────────────────────────
	doc, err := contract.Load(startupCtx)
	must(log, err, "load contract")

	operations, err := petstore.NewRegistry()
	must(log, err, "build operation registry")

	// ── 6. Facade, Gate & Controller ──────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, cfg.TokenIssuer, cfg.SessionTTL)
	must(log, err, "initialize token service")

	facade := petstore.New().
		WithPets(pets).
		WithOrders(orders).
		WithUsers(users).
		WithTokens(tokens).
		WithStaticBaseURL(cfg.StaticBaseURL)

	failures := failure.NewHandler(api.NewFailureRegistry(), log)
	controller := operation.NewController(operations, middleware.NewGate(tokens), failures, facade, petstore.Bind)

	liveness, readiness := api.NewHealthHandlers(health)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Contract:   doc,
		Operations: operations,
		Controller: controller,
		Failures:   failures,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
