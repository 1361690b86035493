package searchui

import (
	"context"
	"sync"
	"time"

	"skrytki/internal/search/transport"
	"skrytki/platform/logger"
)

// DefaultDebounce is the delay between the last keystroke and the search.
const DefaultDebounce = 200 * time.Millisecond

// SearchService runs a search on the server.
type SearchService interface {
	Search(ctx context.Context, query string, czyUrzad bool, limit int) ([]transport.AddressRecord, error)
}

// SearchControllerConfig holds the optional collaborators of a
// SearchController. Zero values pick the defaults.
type SearchControllerConfig struct {
	Debounce  time.Duration
	AfterFunc AfterFunc
	Renderer  Renderer[transport.AddressRecord]
	Logger    *logger.Logger
}

// SearchController turns submits and keystrokes into searches and renders
// the latest result into the table.
type SearchController struct {
	svc      SearchService
	debounce *Debouncer
	loader   *loader[transport.AddressRecord]

	mu      sync.Mutex
	input   string
	options SearchOptions
}

func NewSearchController(svc SearchService, table Surface, notifier Notifier, cfg SearchControllerConfig) *SearchController {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Renderer == nil {
		cfg.Renderer = TableRenderer{}
	}
	return &SearchController{
		svc:      svc,
		debounce: NewDebouncer(cfg.Debounce, cfg.AfterFunc),
		loader:   newLoader("search", cfg.Renderer, table, notifier, cfg.Logger),
		options:  DefaultOptions(),
	}
}

// Options returns the options the next search will use.
func (c *SearchController) Options() SearchOptions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// SetOptions replaces the options used by later searches.
func (c *SearchController) SetOptions(opts SearchOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = opts
}

// OnSubmit searches query right away. An empty query does nothing. Reports
// whether a search was issued.
func (c *SearchController) OnSubmit(query string) bool {
	if query == "" {
		return false
	}
	c.mu.Lock()
	c.input = query
	c.mu.Unlock()

	c.debounce.Cancel()
	c.Search(query, c.Options())
	return true
}

// OnKeystroke records the current input and restarts the debounce timer.
// When the timer fires the input at that moment is searched, unless it is
// empty. An empty query only cancels the pending timer.
func (c *SearchController) OnKeystroke(query string) {
	c.mu.Lock()
	c.input = query
	c.mu.Unlock()

	c.debounce.Cancel()
	if query == "" {
		return
	}

	c.debounce.Schedule(func() {
		c.mu.Lock()
		current, opts := c.input, c.options
		c.mu.Unlock()
		if current != "" {
			c.Search(current, opts)
		}
	})
}

// Search clears the annotation and fetches query asynchronously. On success
// the table is replaced, on failure an alert is shown and the table is kept.
func (c *SearchController) Search(query string, opts SearchOptions) {
	c.loader.load(func(ctx context.Context) ([]transport.AddressRecord, error) {
		return c.svc.Search(ctx, query, opts.CzyUrzad, opts.Limit)
	}, outcome{empty: MsgNoResults, failed: MsgSearchFailed})
}

// Wait blocks until a pending keystroke search has fired or been cancelled
// and every issued search has completed.
func (c *SearchController) Wait() {
	c.debounce.Wait()
	c.loader.wait()
}

// Close cancels the pending timer and in-flight searches.
func (c *SearchController) Close() {
	c.debounce.Close()
	c.loader.close()
}
