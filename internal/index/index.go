// Package index loads the published case index and holds the in-memory
// snapshot the search and citator views read from. A load either succeeds
// with the source-ordered case list or fails with an error; the site's
// degrade-to-empty behavior lives in Fallback, applied at the call site
// rather than hidden inside the loader.
package index

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/krabzholder/mayflower-reporter/internal/reporter"
)

// Fetcher retrieves the full case index.
type Fetcher interface {
	Fetch(ctx context.Context) ([]reporter.Case, error)
}

// Fallback is the one place where "index unavailable" degrades to an empty
// list. The caller cannot distinguish a failed load from an empty index
// afterwards; the views show their generic empty messaging either way.
func Fallback(cases []reporter.Case, err error) []reporter.Case {
	if err != nil || cases == nil {
		return []reporter.Case{}
	}
	return cases
}

// Snapshot holds the current case list. Each successful or failed load swaps
// the whole list at once; between swaps the list is read-only, so readers
// never see a partial update.
type Snapshot struct {
	fetcher Fetcher
	log     *zap.Logger

	mu       sync.RWMutex
	cases    []reporter.Case
	loadedAt time.Time
	lastErr  error
}

// NewSnapshot builds an empty snapshot around fetcher. Call Load before
// serving so the views have data on the first request.
func NewSnapshot(fetcher Fetcher, log *zap.Logger) *Snapshot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Snapshot{
		fetcher: fetcher,
		log:     log,
		cases:   []reporter.Case{},
	}
}

// Load refetches the index from scratch and replaces the snapshot wholesale.
// A fetch failure still swaps in the empty fallback list, and the error is
// returned for callers that report or count load outcomes.
func (s *Snapshot) Load(ctx context.Context) error {
	cases, err := s.fetcher.Fetch(ctx)
	cases = Fallback(cases, err)

	s.mu.Lock()
	s.cases = cases
	s.loadedAt = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("index load failed, serving empty index", zap.Error(err))
		return err
	}
	s.log.Info("index loaded", zap.Int("cases", len(cases)))
	return nil
}

// Cases returns the current list in source order. Never nil. The returned
// slice must be treated as read-only.
func (s *Snapshot) Cases() []reporter.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cases
}

// LoadedAt reports when the snapshot was last replaced; zero before the
// first Load completes.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// LastErr reports the outcome of the most recent load.
func (s *Snapshot) LastErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
