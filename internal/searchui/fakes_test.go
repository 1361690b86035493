package searchui

import (
	"context"
	"strings"
	"sync"
	"time"

	"skrytki/internal/search/transport"
)

// manualClock fires debounce timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *manualClock) scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// recorder is a Surface and Notifier remembering every call.
type recorder struct {
	mu          sync.Mutex
	replaces    [][]string
	annotations []string
	alerts      []string
}

func (r *recorder) Replace(lines []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaces = append(r.replaces, lines)
}

func (r *recorder) Annotate(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.annotations = append(r.annotations, msg)
}

func (r *recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

// annotation is what the annotation slot currently shows.
func (r *recorder) annotation() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.annotations) == 0 {
		return ""
	}
	return r.annotations[len(r.annotations)-1]
}

// body is the current surface content, newline joined.
func (r *recorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.replaces) == 0 {
		return ""
	}
	return strings.Join(r.replaces[len(r.replaces)-1], "\n")
}

type searchCall struct {
	query    string
	czyUrzad bool
	limit    int
}

// fakeSearch answers from a map. A query with a gate blocks until the gate
// is closed or the context is cancelled.
type fakeSearch struct {
	mu      sync.Mutex
	calls   []searchCall
	results map[string][]transport.AddressRecord
	errs    map[string]error
	gates   map[string]chan struct{}
}

func newFakeSearch() *fakeSearch {
	return &fakeSearch{
		results: map[string][]transport.AddressRecord{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
	}
}

func (f *fakeSearch) Search(ctx context.Context, query string, czyUrzad bool, limit int) ([]transport.AddressRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{query: query, czyUrzad: czyUrzad, limit: limit})
	gate := f.gates[query]
	res, err := f.results[query], f.errs[query]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []transport.AddressRecord{}
	}
	return res, nil
}

func (f *fakeSearch) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearch) waitForCalls(n int) {
	deadline := time.Now().Add(2 * time.Second)
	for f.callCount() < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}

type fakeDetails struct {
	mu   sync.Mutex
	ids  []string
	uris []string
	err  error
}

func (f *fakeDetails) Details(_ context.Context, addressID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, addressID)
	return f.uris, f.err
}

func strPtr(s string) *string { return &s }
