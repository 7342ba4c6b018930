package notebook

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// MonthKey indexes the per-month caches.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Summaries is the session-scoped day-summary cache. Each (year, month) key is
// fetched once and reused until an admin write invalidates it. A failed fetch
// yields an empty set so the calendar still paints, and is retried on the next
// navigation into the month.
type Summaries struct {
	loader  *Loader[MonthKey, []journal.DaySummary]
	logger  interfaces.Logger
	mu      sync.Mutex
	lastErr map[MonthKey]error
}

// NewSummaries builds the cache on top of the journal service.
func NewSummaries(svc journal.Service, logger interfaces.Logger) *Summaries {
	if logger == nil {
		logger = logging.NoOp()
	}
	s := &Summaries{
		logger:  logger,
		lastErr: make(map[MonthKey]error),
	}
	s.loader = NewLoader(func(ctx context.Context, key MonthKey) ([]journal.DaySummary, error) {
		return svc.MonthSummaries(ctx, key.Year, key.Month)
	})
	return s
}

// Month returns the cached summaries for a month. On fetch failure it returns
// an empty set; Err reports the failure until the month loads successfully.
func (s *Summaries) Month(ctx context.Context, year int, month time.Month) []journal.DaySummary {
	key := MonthKey{Year: year, Month: month}
	summaries, err := s.loader.Get(ctx, key)

	s.mu.Lock()
	if err != nil {
		s.lastErr[key] = err
	} else {
		delete(s.lastErr, key)
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("month summary fetch failed", "year", year, "month", int(month), "error", err)
		return nil
	}
	return summaries
}

// Err reports the error from the month's most recent failed fetch, or nil.
func (s *Summaries) Err(year int, month time.Month) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr[MonthKey{Year: year, Month: month}]
}

// Peek returns the cached summaries without triggering a fetch.
func (s *Summaries) Peek(year int, month time.Month) ([]journal.DaySummary, bool) {
	return s.loader.Peek(MonthKey{Year: year, Month: month})
}

// HasAnyMedia reports whether the cached summary set for the month shows at
// least one day with media. It never fetches; an uncached month reports false.
func (s *Summaries) HasAnyMedia(year int, month time.Month) bool {
	summaries, ok := s.Peek(year, month)
	if !ok {
		return false
	}
	for _, summary := range summaries {
		if summary.HasAnyMedia {
			return true
		}
	}
	return false
}

// InvalidateDate drops the cache entry for the month owning the given date.
func (s *Summaries) InvalidateDate(date string) {
	year, month, err := journal.DateMonth(date)
	if err != nil {
		return
	}
	s.Invalidate(year, month)
}

// Invalidate drops the cache entry for one month.
func (s *Summaries) Invalidate(year int, month time.Month) {
	s.loader.Invalidate(MonthKey{Year: year, Month: month})
}

// PrefetchYear warms all twelve months concurrently. Months fetch
// independently; a failure in one never blocks the others.
func (s *Summaries) PrefetchYear(ctx context.Context, year int) {
	var wg sync.WaitGroup
	for month := time.January; month <= time.December; month++ {
		wg.Add(1)
		go func(m time.Month) {
			defer wg.Done()
			s.Month(ctx, year, m)
		}(month)
	}
	wg.Wait()
}
