package scheduler

import (
	"context"
	"fmt"

	"skrytki/internal/ingest/service"
	"skrytki/platform/apperr"
	"skrytki/platform/config"
	"skrytki/platform/logger"

	"github.com/hibiken/asynq"
)

// Importer runs one dataset import.
type Importer interface {
	Import(ctx context.Context, source string) (service.Result, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	importer Importer
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, importer Importer, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 1
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := &Worker{
		server:   server,
		mux:      asynq.NewServeMux(),
		importer: importer,
		log:      log,
	}
	w.mux.HandleFunc(TaskDatasetImport, w.handleDatasetImport)

	return w, nil
}

// Run processes tasks until ctx is done. It returns the error that stopped
// the server, e.g. when redis is unreachable at startup.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Ping(); err != nil {
		w.log.Error("scheduler worker cannot reach redis", "error", err)
		return fmt.Errorf("ping redis: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("scheduler worker failed to start", "error", err)
		return fmt.Errorf("start scheduler worker: %w", err)
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}

func (w *Worker) handleDatasetImport(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDatasetImportPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	res, err := w.importer.Import(ctx, payload.Source)
	if err != nil {
		// A malformed or missing dataset will not fix itself.
		if apperr.Is(err, apperr.KindValidation) || apperr.Is(err, apperr.KindNotFound) || apperr.Is(err, apperr.KindBadRequest) {
			w.log.Error("dataset import rejected", "source", payload.Source, "error", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	w.log.Info("dataset import task done", "source", res.Source, "rows", res.Rows)
	return nil
}
