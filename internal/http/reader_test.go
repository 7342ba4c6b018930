package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-planner/internal/decor"
	plannerhttp "github.com/goliatone/go-planner/internal/http"
	"github.com/goliatone/go-planner/internal/journal"
)

func strptr(value string) *string {
	return &value
}

func newReaderServer(t *testing.T) (*httptest.Server, journal.Service, decor.Service) {
	t.Helper()

	journalSvc := journal.NewService(journal.NewMemoryEntryRepository(), journal.NewMemoryMediaRepository())
	decorSvc := decor.NewService(decor.NewMemoryRepository())

	mux := http.NewServeMux()
	api := plannerhttp.NewReaderAPI(
		plannerhttp.WithReaderJournalService(journalSvc),
		plannerhttp.WithReaderDecorService(decorSvc),
	)
	if err := api.Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, journalSvc, decorSvc
}

func TestEntriesSummaryEndpoint(t *testing.T) {
	server, journalSvc, _ := newReaderServer(t)
	ctx := context.Background()

	entry, err := journalSvc.CreateEntry(ctx, journal.CreateEntryRequest{Date: "2026-03-14", Title: strptr("Pi day")})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := journalSvc.AttachMedia(ctx, journal.AttachMediaRequest{
		EntryID: entry.ID,
		Kind:    journal.MediaKindImage,
		URL:     "https://cdn.example.com/pie.jpg",
	}); err != nil {
		t.Fatalf("attach media: %v", err)
	}

	resp, err := http.Get(server.URL + "/planner/entries-summary?year=2026&month=3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var summaries []journal.DaySummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 31 {
		t.Fatalf("expected 31 day summaries for March, got %d", len(summaries))
	}

	day := summaries[13]
	if day.Date != "2026-03-14" || !day.HasEntry || day.AttachedImageCount != 1 || !day.HasAnyMedia {
		t.Fatalf("unexpected summary for Pi day: %+v", day)
	}
	if summaries[0].HasEntry {
		t.Fatalf("March 1st should be empty: %+v", summaries[0])
	}
}

func TestEntriesSummaryRequiresYearAndMonth(t *testing.T) {
	server, _, _ := newReaderServer(t)

	resp, err := http.Get(server.URL + "/planner/entries-summary?year=2026")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestEntriesByDateEndpoint(t *testing.T) {
	server, journalSvc, _ := newReaderServer(t)

	if _, err := journalSvc.CreateEntry(context.Background(), journal.CreateEntryRequest{
		Date:       "2026-03-14",
		Title:      strptr("Pi day"),
		Body:       strptr("Baked a pie."),
		Visibility: journal.VisibilityUnlisted,
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	resp, err := http.Get(server.URL + "/planner/entries-by-date/2026-03-14")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var entries []*journal.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Title == nil || *entries[0].Title != "Pi day" {
		t.Fatalf("unexpected entries payload: %+v", entries)
	}
}

func TestEntriesByDateEmptyDayIsNotAnError(t *testing.T) {
	server, _, _ := newReaderServer(t)

	resp, err := http.Get(server.URL + "/planner/entries-by-date/2026-11-02")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for empty day, got %d", resp.StatusCode)
	}

	var entries []*journal.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %+v", entries)
	}
}

func TestEntriesByDateRejectsMalformedDate(t *testing.T) {
	server, _, _ := newReaderServer(t)

	resp, err := http.Get(server.URL + "/planner/entries-by-date/March-14")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", resp.StatusCode)
	}
}

func TestReaderHidesPrivateEntriesByDefault(t *testing.T) {
	server, journalSvc, _ := newReaderServer(t)

	if _, err := journalSvc.CreateEntry(context.Background(), journal.CreateEntryRequest{
		Date:       "2026-03-14",
		Visibility: journal.VisibilityPrivate,
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	resp, err := http.Get(server.URL + "/planner/entries-by-date/2026-03-14")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var entries []*journal.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("private entry leaked through the default visibility filter")
	}
}

func TestReaderVisibilitiesOptInServesPrivateEntries(t *testing.T) {
	journalSvc := journal.NewService(journal.NewMemoryEntryRepository(), journal.NewMemoryMediaRepository())

	mux := http.NewServeMux()
	api := plannerhttp.NewReaderAPI(
		plannerhttp.WithReaderJournalService(journalSvc),
		plannerhttp.WithReaderVisibilities(
			journal.VisibilityPrivate,
			journal.VisibilityUnlisted,
			journal.VisibilityPublic,
		),
	)
	if err := api.Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	if _, err := journalSvc.CreateEntry(context.Background(), journal.CreateEntryRequest{
		Date:       "2026-03-14",
		Visibility: journal.VisibilityPrivate,
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	resp, err := http.Get(server.URL + "/planner/entries-by-date/2026-03-14")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var entries []*journal.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Visibility != journal.VisibilityPrivate {
		t.Fatalf("expected the private entry after opt-in, got %+v", entries)
	}
}

func TestDecorEndpointFiltersByPage(t *testing.T) {
	server, _, decorSvc := newReaderServer(t)
	ctx := context.Background()

	if _, err := decorSvc.Place(ctx, decor.PlaceDecorRequest{
		Year: 2026, Month: 3, Page: decor.PageLeft, Type: decor.TypeSticker, X: 0.2, Y: 0.3,
	}); err != nil {
		t.Fatalf("place left: %v", err)
	}
	if _, err := decorSvc.Place(ctx, decor.PlaceDecorRequest{
		Year: 2026, Month: 3, Page: decor.PageRight, Type: decor.TypeTape, X: 0.7, Y: 0.1,
	}); err != nil {
		t.Fatalf("place right: %v", err)
	}

	resp, err := http.Get(server.URL + "/planner/decor?year=2026&month=3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var all []*decor.Decor
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 decorations, got %d", len(all))
	}

	resp, err = http.Get(server.URL + "/planner/decor?year=2026&month=3&page=left")
	if err != nil {
		t.Fatalf("get filtered: %v", err)
	}
	defer resp.Body.Close()
	var left []*decor.Decor
	if err := json.NewDecoder(resp.Body).Decode(&left); err != nil {
		t.Fatalf("decode filtered: %v", err)
	}
	if len(left) != 1 || left[0].Page != decor.PageLeft {
		t.Fatalf("page filter failed: %+v", left)
	}

	resp, err = http.Get(server.URL + "/planner/decor?year=2026&month=3&page=middle")
	if err != nil {
		t.Fatalf("get invalid page: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid page, got %d", resp.StatusCode)
	}
}
