package main

import (
	"context"
	"flag"
	"fmt"
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
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "run":
		err = cmdRun(ctx, cfg, log, os.Args[2:])
	case "stage":
		err = cmdStage(ctx, cfg, log, os.Args[2:])
	case "enqueue":
		err = cmdEnqueue(ctx, cfg, log, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: importer <command> [flags] <source>

Commands:
  run <source>       import a CSV now (local path or s3://bucket/key)
  stage <file>       upload a local CSV to object storage and print its s3:// reference
  enqueue <source>   queue an import for the worker; local files are staged first`)
}

func cmdRun(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	migrate := fs.Bool("migrate", true, "Apply pending database migrations first")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: importer run [-migrate=false] <source>")
	}

	if *migrate {
		if err := retry.Do(ctx, log, "database migrations", 3, time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations.FS)
		}); err != nil {
			return err
		}
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	closeCache := subscribeCacheInvalidation(ctx, cfg, bus, log)
	defer closeCache()

	module, err := ingest.NewModule(pool, objectStore(cfg, log), cfg, bus, log)
	if err != nil {
		return err
	}

	res, err := module.Service().Import(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d records from %s (%d skipped)\n", res.Rows, res.Source, res.Skipped)
	return nil
}

func cmdStage(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("stage", flag.ExitOnError)
	bucket := fs.String("bucket", cfg.GetIngestBucket(), "Target bucket")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: importer stage [-bucket NAME] <file>")
	}

	ref, err := stage(ctx, cfg, log, fs.Arg(0), *bucket)
	if err != nil {
		return err
	}

	fmt.Println(ref.String())
	return nil
}

func cmdEnqueue(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string) error {
	fs := flag.NewFlagSet("enqueue", flag.ExitOnError)
	bucket := fs.String("bucket", cfg.GetIngestBucket(), "Bucket local files are staged to")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: importer enqueue [-bucket NAME] <source>")
	}

	source := fs.Arg(0)
	if !storage.IsObjectRef(source) {
		ref, err := stage(ctx, cfg, log, source, *bucket)
		if err != nil {
			return err
		}
		source = ref.String()
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	id, err := client.EnqueueImport(ctx, source)
	if err != nil {
		return err
	}

	fmt.Printf("Enqueued import of %s (task %s)\n", source, id)
	return nil
}

func stage(ctx context.Context, cfg *config.Config, log *logger.Logger, path, bucket string) (storage.ObjectRef, error) {
	objects := objectStore(cfg, log)
	if objects == nil {
		return storage.ObjectRef{}, fmt.Errorf("MINIO_ENDPOINT is required to stage files")
	}

	module, err := ingest.NewModule(nil, objects, cfg, nil, log)
	if err != nil {
		return storage.ObjectRef{}, err
	}
	return module.Service().Stage(ctx, path, bucket)
}

// objectStore returns nil when MinIO is not configured.
func objectStore(cfg *config.Config, log *logger.Logger) storage.ObjectStore {
	if !cfg.IsMinIOEnabled() {
		return nil
	}
	svc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		return nil
	}
	return svc
}

// subscribeCacheInvalidation makes a finished import bump the search cache
// generation shared with the API through redis.
func subscribeCacheInvalidation(ctx context.Context, cfg *config.Config, bus events.Bus, log *logger.Logger) func() {
	if cfg.GetRedisURL() == "" {
		return func() {}
	}

	rdb, err := platformcache.NewClient(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable; search cache will expire on its own", "error", err)
		return func() {}
	}

	resultCache := cache.New(rdb, cfg.GetSearchCacheTTL(), log)
	bus.Subscribe(events.DatasetImportedName, events.HandlerFunc(resultCache.HandleDatasetImported))
	return func() { _ = rdb.Close() }
}
