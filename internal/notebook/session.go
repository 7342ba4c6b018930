package notebook

import (
	"context"
	"time"

	"github.com/goliatone/go-planner/internal/calendar"
	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// SessionConfig carries the knobs for one notebook session.
type SessionConfig struct {
	Year       int
	StartMonth time.Month
	Cue        CueConfig
}

// Session owns the per-reader notebook state: the month caches, the open day
// modal, and the flip navigator. It has an explicit lifetime, so tests and
// embedders get a fresh cache per session instead of process-global state.
type Session struct {
	Year      int
	Summaries *Summaries
	Decor     *DecorLayer
	DayView   *DayView
	Navigator *Navigator
	Cues      *CuePolicy
}

// NewSession wires a notebook session over the journal and decor services.
func NewSession(journalSvc journal.Service, decorSvc decor.Service, player interfaces.AudioPlayer, logger interfaces.Logger, cfg SessionConfig, cueOpts ...CuePolicyOption) *Session {
	summaries := NewSummaries(journalSvc, logger)
	layer := NewDecorLayer(decorSvc, logger)
	cues := NewCuePolicy(player, summaries, cfg.Cue, cueOpts...)

	navOpts := []NavigatorOption{}
	if cfg.StartMonth != 0 {
		navOpts = append(navOpts, WithStartMonth(cfg.StartMonth))
	}

	return &Session{
		Year:      cfg.Year,
		Summaries: summaries,
		Decor:     layer,
		DayView:   NewDayView(journalSvc, logger),
		Navigator: NewNavigator(cfg.Year, summaries, layer, cues, logger, navOpts...),
		Cues:      cues,
	}
}

// Prefetch warms all twelve months of summaries for the session year.
func (s *Session) Prefetch(ctx context.Context) {
	s.Summaries.PrefetchYear(ctx, s.Year)
}

// MonthGrid renders one month of the session year as full calendar weeks,
// projecting the cached day summaries onto each cell's indicator flags.
func (s *Session) MonthGrid(ctx context.Context, month time.Month, weekStart time.Weekday) calendar.Grid {
	summaries := s.Summaries.Month(ctx, s.Year, month)
	return calendar.BuildMonth(s.Year, month, weekStart, calendar.IndexSummaries(summaries))
}

// InvalidateMonth drops the cached summaries and decorations for one month.
func (s *Session) InvalidateMonth(year int, month time.Month) {
	s.Summaries.Invalidate(year, month)
	s.Decor.Invalidate(year, month)
}

// OnJournalChange invalidates the caches touched by a journal write and
// refreshes an open day modal for the affected date. Journal services notify
// it through their change listener.
func (s *Session) OnJournalChange(date string) {
	s.Summaries.InvalidateDate(date)
	s.DayView.Refresh(context.Background(), date)
}

// OnDecorChange invalidates the decoration cache for the affected month.
func (s *Session) OnDecorChange(year int, month time.Month) {
	s.Decor.Invalidate(year, month)
}
