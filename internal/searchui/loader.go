package searchui

import (
	"context"
	"sync"

	"skrytki/platform/logger"
)

// Surface is an output area whose whole content is replaced at once: the
// result table or the detail body.
type Surface interface {
	Replace(lines []string)
}

// Notifier shows the single-line annotation and blocking alerts. An empty
// annotation clears it.
type Notifier interface {
	Annotate(msg string)
	Alert(msg string)
}

// loader runs fetches asynchronously and applies only the result of the
// most recently issued one. Results of earlier fetches that complete later
// are dropped.
type loader[T any] struct {
	name     string
	renderer Renderer[T]
	surface  Surface
	notifier Notifier
	log      *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu  sync.Mutex
	seq uint64
}

// outcome holds the messages shown for the two non-rendering results. An
// empty message shows nothing.
type outcome struct {
	empty  string
	failed string
}

func newLoader[T any](name string, renderer Renderer[T], surface Surface, notifier Notifier, log *logger.Logger) *loader[T] {
	if log == nil {
		log = logger.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &loader[T]{
		name:     name,
		renderer: renderer,
		surface:  surface,
		notifier: notifier,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// load clears the annotation, then runs fetch on its own goroutine.
func (l *loader[T]) load(fetch func(ctx context.Context) ([]T, error), msgs outcome) {
	l.mu.Lock()
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return
	}
	l.seq++
	seq := l.seq
	l.notifier.Annotate("")
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		items, err := fetch(l.ctx)
		l.apply(seq, items, err, msgs)
	}()
}

func (l *loader[T]) apply(seq uint64, items []T, err error, msgs outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		l.log.Debug("stale response discarded", "loader", l.name, "seq", seq, "latest", l.seq)
		return
	}
	if l.ctx.Err() != nil {
		return
	}

	if err != nil {
		l.log.Warn("load failed", "loader", l.name, "error", err)
		if msgs.failed != "" {
			l.notifier.Alert(msgs.failed)
		}
		return
	}

	l.surface.Replace(l.renderer.Render(items))
	if len(items) == 0 && msgs.empty != "" {
		l.notifier.Annotate(msgs.empty)
	}
}

// wait blocks until every started fetch has been applied or dropped.
func (l *loader[T]) wait() {
	l.wg.Wait()
}

// close cancels in-flight fetches and waits for them.
func (l *loader[T]) close() {
	l.mu.Lock()
	l.cancel()
	l.mu.Unlock()
	l.wg.Wait()
}
