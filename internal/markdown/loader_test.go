package markdown_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-planner/internal/markdown"
)

func TestLoadDirectorySortsByDate(t *testing.T) {
	fsys := fstest.MapFS{
		"entries/2026-02-10.md": {Data: []byte("---\ntitle: Later\n---\nSecond.\n")},
		"entries/2026-01-05.md": {Data: []byte("---\ntitle: Earlier\n---\nFirst.\n")},
		"entries/notes.txt":     {Data: []byte("not markdown")},
	}

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{})
	docs, err := loader.LoadDirectory(context.Background(), "entries")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Date != "2026-01-05" || docs[1].Date != "2026-02-10" {
		t.Fatalf("documents not sorted by date: %s, %s", docs[0].Date, docs[1].Date)
	}
	if docs[0].Title != "Earlier" {
		t.Fatalf("unexpected title %q", docs[0].Title)
	}
}

func TestLoadFileDerivesDateFromName(t *testing.T) {
	fsys := fstest.MapFS{
		"2026-08-30.md": {Data: []byte("---\ntitle: No date field\n---\nBody.\n")},
	}

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{})
	doc, err := loader.LoadFile(context.Background(), "2026-08-30.md")
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.Date != "2026-08-30" {
		t.Fatalf("expected date from file name, got %q", doc.Date)
	}
}

func TestLoadDirectoryRejectsMalformedDateName(t *testing.T) {
	fsys := fstest.MapFS{
		"entries/ideas.md": {Data: []byte("---\ntitle: Free floating\n---\nNo date anywhere.\n")},
	}

	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{})
	if _, err := loader.LoadDirectory(context.Background(), "entries"); err == nil {
		t.Fatal("expected error for file without a resolvable date")
	}
}
