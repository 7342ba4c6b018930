package notebook_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/notebook"
	"github.com/google/uuid"
)

// gateJournal lets a test hold individual GetEntryByDate calls open so
// responses can be resolved out of order.
type gateJournal struct {
	journal.Service
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started map[string]chan struct{}
	entries map[string]*journal.Entry
	errs    map[string]error
}

func newGateJournal() *gateJournal {
	return &gateJournal{
		gates:   make(map[string]chan struct{}),
		started: make(map[string]chan struct{}),
		entries: make(map[string]*journal.Entry),
		errs:    make(map[string]error),
	}
}

// hold blocks the next fetch for date until the returned release channel is
// closed. The second channel reports when the fetch has begun.
func (g *gateJournal) hold(date string) (chan struct{}, chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	gate := make(chan struct{})
	started := make(chan struct{})
	g.gates[date] = gate
	g.started[date] = started
	return gate, started
}

func (g *gateJournal) GetEntryByDate(_ context.Context, date string) (*journal.Entry, error) {
	g.mu.Lock()
	gate := g.gates[date]
	started := g.started[date]
	entry := g.entries[date]
	err := g.errs[date]
	delete(g.gates, date)
	delete(g.started, date)
	g.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, &journal.NotFoundError{Resource: "entry", Key: date}
	}
	return entry, nil
}

func TestDayViewSelect(t *testing.T) {
	svc := newGateJournal()
	entry := &journal.Entry{ID: uuid.New(), Date: "2026-03-14"}
	svc.entries["2026-03-14"] = entry

	view := notebook.NewDayView(svc, nil)
	view.Select(context.Background(), "2026-03-14")

	date, got, err, open := view.Current()
	if !open || date != "2026-03-14" || err != nil {
		t.Fatalf("unexpected state: date=%q err=%v open=%v", date, err, open)
	}
	if got == nil || got.ID != entry.ID {
		t.Fatalf("expected entry %s, got %v", entry.ID, got)
	}
}

func TestDayViewEmptyDayIsNotAnError(t *testing.T) {
	view := notebook.NewDayView(newGateJournal(), nil)
	view.Select(context.Background(), "2026-03-15")

	date, entry, err, open := view.Current()
	if !open || date != "2026-03-15" {
		t.Fatalf("expected open modal on empty day, got date=%q open=%v", date, open)
	}
	if entry != nil || err != nil {
		t.Fatalf("empty day should carry no entry and no error, got %v / %v", entry, err)
	}
}

func TestDayViewFetchFailureKeepsModalOpen(t *testing.T) {
	svc := newGateJournal()
	svc.errs["2026-03-16"] = errors.New("backend down")

	view := notebook.NewDayView(svc, nil)
	view.Select(context.Background(), "2026-03-16")

	_, entry, err, open := view.Current()
	if !open {
		t.Fatal("modal must stay open on fetch failure")
	}
	if entry != nil || err == nil {
		t.Fatalf("expected empty entry with error state, got %v / %v", entry, err)
	}

	view.Close()
	if _, _, _, open := view.Current(); open {
		t.Fatal("close must always work")
	}
}

func TestDayViewStaleResponseIsDiscarded(t *testing.T) {
	svc := newGateJournal()
	entryA := &journal.Entry{ID: uuid.New(), Date: "2026-03-01"}
	entryB := &journal.Entry{ID: uuid.New(), Date: "2026-03-02"}
	svc.entries["2026-03-01"] = entryA
	svc.entries["2026-03-02"] = entryB
	gateA, startedA := svc.hold("2026-03-01")

	view := notebook.NewDayView(svc, nil)

	done := make(chan struct{})
	go func() {
		view.Select(context.Background(), "2026-03-01")
		close(done)
	}()
	<-startedA

	// B is selected while A's fetch is still in flight, and resolves first.
	view.Select(context.Background(), "2026-03-02")
	close(gateA)
	<-done

	date, entry, _, _ := view.Current()
	if date != "2026-03-02" {
		t.Fatalf("expected selection to stay on B, got %q", date)
	}
	if entry == nil || entry.ID != entryB.ID {
		t.Fatalf("stale response overwrote the selection: got %v", entry)
	}
}

func TestDayViewRefreshOnlyAppliesToSelectedDate(t *testing.T) {
	svc := newGateJournal()
	entry := &journal.Entry{ID: uuid.New(), Date: "2026-03-20"}
	svc.entries["2026-03-20"] = entry

	view := notebook.NewDayView(svc, nil)
	view.Select(context.Background(), "2026-03-20")

	updated := &journal.Entry{ID: entry.ID, Date: "2026-03-20", BodyHTML: "<p>new</p>"}
	svc.mu.Lock()
	svc.entries["2026-03-20"] = updated
	svc.mu.Unlock()

	view.Refresh(context.Background(), "2026-03-21")
	_, got, _, _ := view.Current()
	if got.BodyHTML != "" {
		t.Fatal("refresh for a different date must not refetch")
	}

	view.Refresh(context.Background(), "2026-03-20")
	_, got, _, _ = view.Current()
	if got.BodyHTML != "<p>new</p>" {
		t.Fatalf("expected refreshed entry, got %+v", got)
	}
}
