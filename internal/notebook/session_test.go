package notebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-planner/internal/decor"
	"github.com/goliatone/go-planner/internal/journal"
	"github.com/goliatone/go-planner/internal/notebook"
)

func newTestSession(t *testing.T) (*notebook.Session, journal.Service, decor.Service) {
	t.Helper()

	entryStore := journal.NewMemoryEntryRepository()
	mediaStore := journal.NewMemoryMediaRepository()
	decorStore := decor.NewMemoryRepository()

	var session *notebook.Session
	journalSvc := journal.NewService(entryStore, mediaStore,
		journal.WithChangeListener(func(date string) {
			if session != nil {
				session.OnJournalChange(date)
			}
		}))
	decorSvc := decor.NewService(decorStore,
		decor.WithChangeListener(func(year int, month time.Month) {
			if session != nil {
				session.OnDecorChange(year, month)
			}
		}))

	session = notebook.NewSession(journalSvc, decorSvc, &recordingPlayer{}, nil, notebook.SessionConfig{
		Year: 2026,
		Cue: notebook.CueConfig{
			NominalFlip: 900 * time.Millisecond,
			PitchMin:    0.9,
			PitchMax:    1.1,
			Debounce:    150 * time.Millisecond,
			ClipDelay:   300 * time.Millisecond,
		},
	})
	return session, journalSvc, decorSvc
}

func TestSessionWriteInvalidatesMonthCache(t *testing.T) {
	session, journalSvc, _ := newTestSession(t)
	ctx := context.Background()

	before := session.Summaries.Month(ctx, 2026, time.March)
	for _, summary := range before {
		if summary.HasEntry {
			t.Fatalf("expected empty march, got %+v", summary)
		}
	}

	if _, err := journalSvc.CreateEntry(ctx, journal.CreateEntryRequest{Date: "2026-03-14"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	after := session.Summaries.Month(ctx, 2026, time.March)
	found := false
	for _, summary := range after {
		if summary.Date == "2026-03-14" && summary.HasEntry {
			found = true
		}
	}
	if !found {
		t.Fatal("write did not invalidate the month cache")
	}
}

func TestSessionDecorWriteInvalidatesLayer(t *testing.T) {
	session, _, decorSvc := newTestSession(t)
	ctx := context.Background()

	if got := session.Decor.Month(ctx, 2026, time.April); len(got) != 0 {
		t.Fatalf("expected empty april, got %d", len(got))
	}

	if _, err := decorSvc.Place(ctx, decor.PlaceDecorRequest{
		Year:  2026,
		Month: 4,
		Page:  decor.PageLeft,
		Type:  decor.TypeSticker,
		X:     0.5,
		Y:     0.5,
	}); err != nil {
		t.Fatalf("place: %v", err)
	}

	if got := session.Decor.Month(ctx, 2026, time.April); len(got) != 1 {
		t.Fatalf("decor write did not invalidate the layer, got %d", len(got))
	}
}

func TestSessionRefreshesOpenDayModal(t *testing.T) {
	session, journalSvc, _ := newTestSession(t)
	ctx := context.Background()

	session.DayView.Select(ctx, "2026-05-01")
	if _, entry, _, open := session.DayView.Current(); !open || entry != nil {
		t.Fatalf("expected open empty day, got entry=%v open=%v", entry, open)
	}

	created, err := journalSvc.CreateEntry(ctx, journal.CreateEntryRequest{Date: "2026-05-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, entry, _, _ := session.DayView.Current()
	if entry == nil || entry.ID != created.ID {
		t.Fatalf("open modal should refresh after a write for its date, got %v", entry)
	}
}

func TestSessionMonthGridProjectsIndicators(t *testing.T) {
	session, journalSvc, _ := newTestSession(t)
	ctx := context.Background()

	entry, err := journalSvc.CreateEntry(ctx, journal.CreateEntryRequest{Date: "2026-03-14"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := journalSvc.AttachMedia(ctx, journal.AttachMediaRequest{
		EntryID: entry.ID,
		Kind:    journal.MediaKindImage,
		URL:     "https://cdn.example.com/pie.jpg",
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	grid := session.MonthGrid(ctx, time.March, time.Monday)
	if grid.Year != 2026 || grid.Month != 3 {
		t.Fatalf("unexpected grid header: %+v", grid)
	}

	found := false
	for _, week := range grid.Weeks {
		for _, day := range week {
			if day.Date != "2026-03-14" {
				continue
			}
			found = true
			if !day.HasEntry || day.AttachedImageCount != 1 || !day.HasAnyMedia {
				t.Fatalf("summary indicators not projected: %+v", day)
			}
		}
	}
	if !found {
		t.Fatal("2026-03-14 missing from the march grid")
	}
}

func TestSessionInvalidateMonthDropsCaches(t *testing.T) {
	session, journalSvc, _ := newTestSession(t)
	ctx := context.Background()

	session.Summaries.Month(ctx, 2026, time.June)
	if _, ok := session.Summaries.Peek(2026, time.June); !ok {
		t.Fatal("expected june summaries to be cached")
	}

	session.InvalidateMonth(2026, time.June)
	if _, ok := session.Summaries.Peek(2026, time.June); ok {
		t.Fatal("expected june summaries to be dropped")
	}

	// A refetch after invalidation sees later writes.
	if _, err := journalSvc.CreateEntry(ctx, journal.CreateEntryRequest{Date: "2026-06-15"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	after := session.Summaries.Month(ctx, 2026, time.June)
	if !after[14].HasEntry {
		t.Fatalf("refetched june missing the new entry: %+v", after[14])
	}
}
