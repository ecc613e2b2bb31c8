// Package search implements the debounced dashboard search box.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultDebounce = 300 * time.Millisecond

// Fetcher runs one query.
type Fetcher func(ctx context.Context, query string) ([]Hit, error)

// Result is the outcome of the latest issued query. Seq is zero until a
// query has completed.
type Result struct {
	Seq     uint64 `json:"seq"`
	Query   string `json:"query"`
	Hits    []Hit  `json:"hits"`
	Err     error  `json:"-"`
	Pending bool   `json:"pending"`
}

// Searcher debounces keystrokes and fences responses: only the response to
// the most recently fired query is kept.
type Searcher struct {
	fetch    Fetcher
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc

	seq atomic.Uint64

	mu      sync.Mutex
	timer   *time.Timer
	latest  Result
	pending string
}

func NewSearcher(fetch Fetcher, debounce time.Duration) *Searcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Searcher{fetch: fetch, debounce: debounce, ctx: ctx, cancel: cancel}
}

// Submit records a keystroke. Any pending timer is reset; requests already
// in flight keep running and are discarded when they land late.
func (s *Searcher) Submit(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = query
	s.timer = time.AfterFunc(s.debounce, func() { s.fire(query) })
}

func (s *Searcher) fire(query string) {
	seq := s.seq.Add(1)
	hits, err := s.fetch(s.ctx, query)
	if hits == nil {
		hits = []Hit{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq.Load() {
		return
	}
	s.latest = Result{Seq: seq, Query: query, Hits: hits, Err: err}
}

// Latest returns the newest stored result. Pending is true while a
// keystroke is still waiting on its timer or response.
func (s *Searcher) Latest() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.latest
	out.Hits = append([]Hit(nil), s.latest.Hits...)
	out.Pending = s.pending != "" && (s.pending != out.Query || out.Seq != s.seq.Load())
	return out
}

// Close stops the pending timer and cancels in-flight fetches.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.cancel()
}
