package notebook

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/logging"
	"github.com/goliatone/go-planner/pkg/interfaces"
)

// DayView holds the state of the open day modal. Selecting a day fetches its
// full entry with media; a response that arrives after the selection moved on
// is discarded so a slow fetch can never overwrite a newer day's state.
type DayView struct {
	svc    journal.Service
	logger interfaces.Logger

	mu       sync.Mutex
	seq      uint64
	open     bool
	selected string
	entry    *journal.Entry
	loadErr  error
}

// NewDayView constructs the day modal state around the journal service.
func NewDayView(svc journal.Service, logger interfaces.Logger) *DayView {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &DayView{svc: svc, logger: logger}
}

// Select opens the modal on a date and fetches its entry. A date with no entry
// is a valid empty day. Fetch failures leave the modal open with an error
// state the caller can surface.
func (v *DayView) Select(ctx context.Context, date string) {
	v.mu.Lock()
	v.seq++
	ticket := v.seq
	v.open = true
	v.selected = date
	v.entry = nil
	v.loadErr = nil
	v.mu.Unlock()

	entry, err := v.svc.GetEntryByDate(ctx, date)

	var notFound *journal.NotFoundError
	if errors.As(err, &notFound) {
		entry, err = nil, nil
	}
	if err != nil {
		v.logger.Warn("day entry fetch failed", "date", date, "error", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if ticket != v.seq {
		// A newer selection superseded this fetch.
		return
	}
	v.entry = entry
	v.loadErr = err
}

// Refresh refetches the currently selected date in place. Admin editors call
// this after a write so an open modal shows the new state.
func (v *DayView) Refresh(ctx context.Context, date string) {
	v.mu.Lock()
	current := v.open && v.selected == date
	v.mu.Unlock()
	if current {
		v.Select(ctx, date)
	}
}

// Close dismisses the modal. Any in-flight fetch result is discarded.
func (v *DayView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.open = false
	v.selected = ""
	v.entry = nil
	v.loadErr = nil
}

// Current reports the modal state: the selected date, its entry (nil for an
// empty day), the fetch error if the load failed, and whether the modal is open.
func (v *DayView) Current() (date string, entry *journal.Entry, err error, open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected, v.entry, v.loadErr, v.open
}
