package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"skrytki/internal/adapters/storage"
	"skrytki/internal/events"
	"skrytki/internal/ingest/dataset"
	"skrytki/platform/apperr"
	"skrytki/platform/logger"
)

// Store replaces the searchable dataset.
type Store interface {
	Replace(ctx context.Context, rows []dataset.Row) (int64, error)
}

// Result summarizes one import.
type Result struct {
	Source  string
	Rows    int64
	Skipped int
}

type Service struct {
	store      Store
	objects    storage.ObjectStore
	classifier *dataset.Classifier
	bus        events.Bus
	log        *logger.Logger
}

// New creates the import service. objects may be nil when object storage is
// not configured; s3:// sources then fail.
func New(store Store, objects storage.ObjectStore, classifier *dataset.Classifier, bus events.Bus, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		store:      store,
		objects:    objects,
		classifier: classifier,
		bus:        bus,
		log:        log,
	}
}

// Import loads the CSV at source (a local path or s3://bucket/key) into the
// database, replacing the previous dataset.
func (s *Service) Import(ctx context.Context, source string) (Result, error) {
	start := time.Now()

	r, err := s.open(ctx, source)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = r.Close() }()

	parsed, err := dataset.Parse(r, s.classifier)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindValidation, "dataset is malformed", err).WithOp("ingest.Import")
	}
	if len(parsed.Rows) == 0 {
		return Result{}, apperr.Validation("dataset has no usable records").WithOp("ingest.Import")
	}

	n, err := s.store.Replace(ctx, parsed.Rows)
	if err != nil {
		s.log.DatabaseError("import", err)
		return Result{}, apperr.Wrap(apperr.KindInternal, "loading dataset failed", err).WithOp("ingest.Import")
	}

	res := Result{Source: source, Rows: n, Skipped: parsed.Skipped}
	s.log.ImportFinished(source, n, parsed.Skipped, float64(time.Since(start).Milliseconds()))

	if s.bus != nil {
		if err := s.bus.PublishSync(ctx, events.DatasetImported{
			BaseEvent: events.NewBaseEvent(),
			Source:    source,
			Rows:      n,
			Skipped:   parsed.Skipped,
		}); err != nil {
			// The dataset is committed at this point.
			s.log.Warn("dataset imported event handling failed", "error", err)
		}
	}

	return res, nil
}

// Stage uploads the local file at localPath to object storage so that a
// worker can import it, and returns its s3:// reference.
func (s *Service) Stage(ctx context.Context, localPath, bucket string) (storage.ObjectRef, error) {
	if s.objects == nil {
		return storage.ObjectRef{}, apperr.Unavailable("object storage is not configured")
	}

	f, err := os.Open(localPath)
	if err != nil {
		return storage.ObjectRef{}, apperr.Wrap(apperr.KindNotFound, "dataset file not found", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return storage.ObjectRef{}, fmt.Errorf("stat %s: %w", localPath, err)
	}

	if err := s.objects.EnsureBucketExists(ctx, bucket); err != nil {
		return storage.ObjectRef{}, apperr.Wrap(apperr.KindUnavailable, "object storage unavailable", err)
	}

	ref := storage.ObjectRef{
		Bucket: bucket,
		Key:    fmt.Sprintf("imports/%s-%s", time.Now().UTC().Format("20060102T150405Z"), path.Base(localPath)),
	}
	if err := s.objects.Upload(ctx, ref, "text/csv", f, info.Size()); err != nil {
		return storage.ObjectRef{}, apperr.Wrap(apperr.KindUnavailable, "dataset upload failed", err)
	}

	s.log.Info("dataset staged", "source", localPath, "object", ref.String(), "bytes", info.Size())
	return ref, nil
}

func (s *Service) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !storage.IsObjectRef(source) {
		f, err := os.Open(source)
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.Wrap(apperr.KindNotFound, "dataset file not found", err).WithOp("ingest.Import")
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		return f, nil
	}

	ref, err := storage.ParseObjectRef(source)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "invalid dataset reference", err)
	}
	if s.objects == nil {
		return nil, apperr.Unavailable("object storage is not configured")
	}

	r, err := s.objects.Open(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "dataset object unavailable", err).WithOp("ingest.Import")
	}
	return r, nil
}
