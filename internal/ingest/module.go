// Package ingest loads the registry CSV export into the skrytki table.
package ingest

import (
	"skrytki/internal/adapters/storage"
	"skrytki/internal/events"
	"skrytki/internal/ingest/dataset"
	"skrytki/internal/ingest/repository"
	"skrytki/internal/ingest/service"
	"skrytki/platform/config"
	"skrytki/platform/logger"
)

type Module struct {
	service *service.Service
}

// NewModule wires the import pipeline. objects may be nil when object
// storage is not configured.
func NewModule(db repository.TxBeginner, objects storage.ObjectStore, cfg config.IngestConfig, bus events.Bus, log *logger.Logger) (*Module, error) {
	classifier, err := dataset.NewClassifier(cfg.GetIngestKeywordsFile())
	if err != nil {
		return nil, err
	}

	svc := service.New(repository.New(db), objects, classifier, bus, log)
	return &Module{service: svc}, nil
}

func (m *Module) Service() *service.Service {
	return m.service
}
