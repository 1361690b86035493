package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skrytki/internal/ingest/service"
	"skrytki/platform/apperr"
	"skrytki/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestDatasetImportTaskRoundTrip(t *testing.T) {
	task, err := NewDatasetImportTask(DatasetImportPayload{Source: "s3://datasets/skrytki.csv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskDatasetImport {
		t.Fatalf("expected task type %q, got %q", TaskDatasetImport, task.Type())
	}

	payload, err := ParseDatasetImportPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Source != "s3://datasets/skrytki.csv" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	if _, err := NewDatasetImportTask(DatasetImportPayload{Source: " "}); err == nil {
		t.Fatal("expected empty source to be rejected")
	}
	if _, err := ParseDatasetImportPayload(asynq.NewTask(TaskDatasetImport, []byte(`{}`))); err == nil {
		t.Fatal("expected payload without source to be rejected")
	}
}

type fakeImporter struct {
	sources []string
	err     error
}

func (f *fakeImporter) Import(_ context.Context, source string) (service.Result, error) {
	f.sources = append(f.sources, source)
	if f.err != nil {
		return service.Result{}, f.err
	}
	return service.Result{Source: source, Rows: 3}, nil
}

func newTestWorker(importer Importer) *Worker {
	return &Worker{importer: importer, log: logger.Discard()}
}

func importTask(t *testing.T, source string) *asynq.Task {
	t.Helper()
	task, err := NewDatasetImportTask(DatasetImportPayload{Source: source})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func TestHandleDatasetImport(t *testing.T) {
	importer := &fakeImporter{}
	w := newTestWorker(importer)

	if err := w.handleDatasetImport(context.Background(), importTask(t, "/data/skrytki.csv")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(importer.sources) != 1 || importer.sources[0] != "/data/skrytki.csv" {
		t.Fatalf("unexpected imports %v", importer.sources)
	}
}

func TestHandleDatasetImportRetryPolicy(t *testing.T) {
	rejected := newTestWorker(&fakeImporter{err: apperr.Validation("dataset is malformed")})
	err := rejected.handleDatasetImport(context.Background(), importTask(t, "/data/bad.csv"))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected malformed dataset to skip retries, got %v", err)
	}

	transient := newTestWorker(&fakeImporter{err: apperr.Internal("loading dataset failed")})
	err = transient.handleDatasetImport(context.Background(), importTask(t, "/data/ok.csv"))
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected database failure to be retried, got %v", err)
	}

	bad := newTestWorker(&fakeImporter{})
	err = bad.handleDatasetImport(context.Background(), asynq.NewTask(TaskDatasetImport, []byte("not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected undecodable payload to skip retries, got %v", err)
	}
}

type fakeEnqueuer struct {
	mu      sync.Mutex
	sources []string
	err     error
}

func (f *fakeEnqueuer) EnqueueImport(_ context.Context, source string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	return "task-1", f.err
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sources)
}

func TestRefresherEnqueuesPeriodically(t *testing.T) {
	enq := &fakeEnqueuer{}
	r := NewRefresher(enq, "s3://datasets/latest.csv", 10*time.Millisecond, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for enq.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if enq.count() < 2 {
		t.Fatalf("expected at least 2 refreshes, got %d", enq.count())
	}
}

func TestRefresherWithoutSourceReturns(t *testing.T) {
	enq := &fakeEnqueuer{}
	NewRefresher(enq, "", time.Millisecond, logger.Discard()).Run(context.Background())
	if enq.count() != 0 {
		t.Fatal("expected no refresh without a source")
	}
}

type testSchedulerConfig struct {
	url string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.url }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestWorkerRunReportsUnreachableRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	w, err := NewWorker(testSchedulerConfig{url: "redis://" + addr}, &fakeImporter{}, logger.Discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected Run to fail without redis")
		}
	case <-ctx.Done():
		t.Fatal("expected Run to return instead of blocking")
	}
}

func TestNilWorkerRunReturns(t *testing.T) {
	var w *Worker
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("expected nil worker to do nothing, got %v", err)
	}
}
