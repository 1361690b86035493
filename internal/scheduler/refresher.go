package scheduler

import (
	"context"
	"time"

	"skrytki/platform/logger"
)

const defaultRefreshInterval = 24 * time.Hour

// Refresher periodically re-imports a fixed dataset source, e.g. an object
// that an external job overwrites with the latest registry export.
type Refresher struct {
	enqueuer ImportEnqueuer
	source   string
	interval time.Duration
	log      *logger.Logger
}

func NewRefresher(enqueuer ImportEnqueuer, source string, interval time.Duration, log *logger.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Refresher{
		enqueuer: enqueuer,
		source:   source,
		interval: interval,
		log:      log,
	}
}

// Run enqueues an import every interval until ctx is done. The first import
// is enqueued after one interval.
func (r *Refresher) Run(ctx context.Context) {
	if r == nil || r.enqueuer == nil || r.source == "" {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	id, err := r.enqueuer.EnqueueImport(ctx, r.source)
	if err != nil {
		r.log.Warn("dataset refresh enqueue failed", "source", r.source, "error", err)
		return
	}
	r.log.Info("dataset refresh enqueued", "source", r.source, "task_id", id)
}
