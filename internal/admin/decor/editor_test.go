package decoradmin_test

import (
	"context"
	"testing"
	"time"

	decoradmin "github.com/goliatone/go-planner/internal/admin/decor"
	"github.com/goliatone/go-planner/internal/decor"
	"github.com/google/uuid"
)

func newEditor() (*decoradmin.Editor, decor.Service) {
	svc := decor.NewService(decor.NewMemoryRepository())
	return decoradmin.NewEditor(svc, nil), svc
}

func TestPlaceSaves(t *testing.T) {
	editor, svc := newEditor()

	result := editor.Place(context.Background(), decoradmin.DecorForm{
		Year:  2026,
		Month: 3,
		Page:  decor.PageRight,
		Type:  decor.TypeTape,
		X:     0.5,
		Y:     0.25,
	})
	if !result.Saved() || result.Decor == nil {
		t.Fatalf("expected saved, got %+v", result)
	}

	listed, err := svc.MonthDecor(context.Background(), 2026, time.March)
	if err != nil {
		t.Fatalf("month decor: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one decoration, got %d", len(listed))
	}
}

func TestPlaceOutOfRangeCoordinateDoesNotPersist(t *testing.T) {
	editor, svc := newEditor()

	result := editor.Place(context.Background(), decoradmin.DecorForm{
		Year:  2026,
		Month: 3,
		Page:  decor.PageRight,
		Type:  decor.TypeTape,
		X:     1.1,
		Y:     0.5,
	})
	if result.Status != decoradmin.StatusInvalid {
		t.Fatalf("expected invalid, got %+v", result)
	}
	if result.FieldErrors["x"] == "" {
		t.Fatalf("expected x field error, got %v", result.FieldErrors)
	}

	listed, err := svc.MonthDecor(context.Background(), 2026, time.March)
	if err != nil {
		t.Fatalf("month decor: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("rejected placement must not persist, got %d rows", len(listed))
	}
}

func TestPlaceInvalidScale(t *testing.T) {
	editor, _ := newEditor()

	result := editor.Place(context.Background(), decoradmin.DecorForm{
		Year:  2026,
		Month: 3,
		Page:  decor.PageLeft,
		Type:  decor.TypeSticker,
		X:     0.5,
		Y:     0.5,
		Scale: -1,
	})
	if result.Status != decoradmin.StatusInvalid || result.FieldErrors["scale"] == "" {
		t.Fatalf("expected scale field error, got %+v", result)
	}
}

func TestRemoveNotFound(t *testing.T) {
	editor, _ := newEditor()

	result := editor.Remove(context.Background(), uuid.New())
	if result.Status != decoradmin.StatusNotFound {
		t.Fatalf("expected not_found, got %+v", result)
	}
}
