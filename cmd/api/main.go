package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "skrytki/internal/http"
	"skrytki/internal/http/router"
	"skrytki/internal/search"
	"skrytki/internal/search/cache"
	"skrytki/migrations"
	platformcache "skrytki/platform/cache"
	"skrytki/platform/config"
	"skrytki/platform/db"
	"skrytki/platform/logger"
	"skrytki/platform/retry"
	"skrytki/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := retry.Do(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := retry.Do(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	rdb := initRedis(ctx, cfg, log)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	searchModule := search.NewModule(pool, cache.New(rdb, cfg.GetSearchCacheTTL(), log), cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{searchModule},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRedis connects the search result cache. Search works without it.
func initRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; search result cache disabled")
		return nil
	}

	rdb, err := platformcache.NewClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis; search result cache disabled", "error", err)
		return nil
	}
	return rdb
}
