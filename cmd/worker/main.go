package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skrytki/internal/adapters/storage"
	"skrytki/internal/events"
	"skrytki/internal/ingest"
	"skrytki/internal/scheduler"
	"skrytki/internal/search/cache"
	"skrytki/migrations"
	platformcache "skrytki/platform/cache"
	"skrytki/platform/config"
	"skrytki/platform/db"
	"skrytki/platform/logger"
	"skrytki/platform/retry"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting import worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the import worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := retry.Do(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		panic("failed to run database migrations: " + err.Error())
	}

	var pool *pgxpool.Pool
	if err := retry.Do(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)

	rdb, err := platformcache.NewClient(ctx, cfg)
	if err != nil {
		log.Warn("redis cache client unavailable; search cache will expire on its own", "error", err)
	} else {
		defer func() { _ = rdb.Close() }()
		resultCache := cache.New(rdb, cfg.GetSearchCacheTTL(), log)
		bus.Subscribe(events.DatasetImportedName, events.HandlerFunc(resultCache.HandleDatasetImported))
	}

	var objects storage.ObjectStore
	if cfg.IsMinIOEnabled() {
		svc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service; s3:// sources will fail", "error", err)
		} else {
			objects = svc
		}
	}

	ingestModule, err := ingest.NewModule(pool, objects, cfg, bus, log)
	if err != nil {
		panic("failed to initialize ingest module: " + err.Error())
	}

	worker, err := scheduler.NewWorker(cfg, ingestModule.Service(), log)
	if err != nil {
		panic("failed to initialize worker: " + err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})

	if source := cfg.GetIngestRefreshSource(); source != "" {
		client, err := scheduler.NewClient(cfg)
		if err != nil {
			panic("failed to initialize scheduler client: " + err.Error())
		}
		defer func() { _ = client.Close() }()

		refresher := scheduler.NewRefresher(client, source, cfg.GetIngestRefreshInterval(), log)
		g.Go(func() error {
			refresher.Run(gctx)
			return nil
		})
	}

	err = g.Wait()
	bus.Wait()
	if err != nil {
		log.Error("import worker stopped", "error", err)
		os.Exit(1)
	}
	log.Info("import worker stopped")
}
