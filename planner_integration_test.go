package planner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	planner "github.com/goliatone/go-planner"
	"github.com/goliatone/go-planner/internal/di"
	"github.com/goliatone/go-planner/journal"
	"github.com/goliatone/go-planner/pkg/testsupport"
)

func newSQLiteModule(t *testing.T) *planner.Module {
	t.Helper()

	db, err := testsupport.NewBunSQLiteDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := testsupport.ApplyMigrations(context.Background(), db, planner.GetMigrationsFS(), "data/sql/migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	cfg := planner.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Notebook.Year = 2026

	module, err := planner.New(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestPiDayEndToEnd(t *testing.T) {
	module := newSQLiteModule(t)

	mux := http.NewServeMux()
	if err := module.Reader().Register(mux); err != nil {
		t.Fatalf("register reader: %v", err)
	}
	if err := module.Admin().Register(mux); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	server := httptest.NewServer(mux)
	defer server.Close()

	entryPayload, _ := json.Marshal(map[string]any{
		"date":       "2026-03-14",
		"title":      "Pi day",
		"body":       "Baked a **pie** for dinner.",
		"visibility": "public",
	})
	resp, err := http.Post(server.URL+"/admin/api/planner/entries", "application/json", bytes.NewReader(entryPayload))
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created journal.Entry
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	resp.Body.Close()

	mediaPayload, _ := json.Marshal(map[string]any{
		"kind": "image",
		"url":  "https://cdn.example.com/pie.jpg",
	})
	resp, err = http.Post(server.URL+"/admin/api/planner/entries/"+created.ID.String()+"/media", "application/json", bytes.NewReader(mediaPayload))
	if err != nil {
		t.Fatalf("attach media: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for media, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/planner/entries-summary?year=2026&month=3")
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	var summaries []journal.DaySummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	resp.Body.Close()
	if len(summaries) != 31 {
		t.Fatalf("expected 31 summaries, got %d", len(summaries))
	}
	piDay := summaries[13]
	if piDay.Date != "2026-03-14" || !piDay.HasEntry || piDay.AttachedImageCount != 1 || !piDay.HasAnyMedia {
		t.Fatalf("unexpected Pi day summary: %+v", piDay)
	}

	resp, err = http.Get(server.URL + "/planner/entries-by-date/2026-03-14")
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	var entries []*journal.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	resp.Body.Close()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if len(entry.Media) != 1 || entry.Media[0].URL != "https://cdn.example.com/pie.jpg" {
		t.Fatalf("unexpected media: %+v", entry.Media)
	}
	if entry.BodyHTML == "" {
		t.Fatal("expected rendered body html")
	}
	if entry.Slug == nil || *entry.Slug == "" {
		t.Fatal("expected share slug for public entry")
	}
}

func TestModuleSessionOverSQLite(t *testing.T) {
	module := newSQLiteModule(t)
	ctx := context.Background()

	session := module.Session()
	if session == nil {
		t.Fatal("expected session")
	}

	if _, err := module.Journal().CreateEntry(ctx, planner.CreateEntryRequest{Date: "2026-06-15"}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	summaries := session.Summaries.Month(ctx, 2026, 6)
	if len(summaries) != 30 || !summaries[14].HasEntry {
		t.Fatalf("session cache did not reflect the write: %+v", summaries)
	}
}
