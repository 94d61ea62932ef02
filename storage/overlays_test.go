package storage

import (
	"testing"
	"time"
)

func newTestLibrary(t *testing.T) *OverlayLibrary {
	t.Helper()
	lib, err := NewOverlayLibrary(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create overlay library: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestOverlayLibraryRoundTrip(t *testing.T) {
	lib := newTestLibrary(t)

	now := time.Now()
	overlay := SavedOverlay{
		ID:            "o1",
		Name:          "Countdown",
		Description:   "Ten second countdown with a ring",
		Program:       "export default (ctx) => text(String(10 - Math.floor(ctx.frame / 30)));",
		Tags:          "timer, countdown",
		SourceSession: "s1",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := lib.Save(overlay); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := lib.Load("o1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected overlay, got nil")
	}
	if loaded.Name != "Countdown" || loaded.SourceSession != "s1" {
		t.Errorf("loaded = %+v", loaded)
	}

	missing, err := lib.Load("does-not-exist")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}
}

func TestOverlayLibraryRejectsEmptyProgram(t *testing.T) {
	lib := newTestLibrary(t)

	err := lib.Save(SavedOverlay{ID: "o1", Name: "broken"})
	if err == nil {
		t.Fatal("expected error for empty program")
	}
}

func TestOverlayLibraryFindByTag(t *testing.T) {
	lib := newTestLibrary(t)

	now := time.Now()
	overlays := []SavedOverlay{
		{ID: "o1", Name: "Countdown", Program: "p1", Tags: "timer, countdown", CreatedAt: now, UpdatedAt: now},
		{ID: "o2", Name: "Lower third", Program: "p2", Tags: "title", CreatedAt: now, UpdatedAt: now},
		{ID: "o3", Name: "Clock", Program: "p3", Tags: "Timer", CreatedAt: now, UpdatedAt: now},
	}
	for _, o := range overlays {
		if err := lib.Save(o); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	matched, err := lib.FindByTag("timer")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 tag matches, got %d", len(matched))
	}
}

func TestOverlayLibraryDelete(t *testing.T) {
	lib := newTestLibrary(t)

	now := time.Now()
	if err := lib.Save(SavedOverlay{ID: "o1", Name: "x", Program: "p", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := lib.Delete("o1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	loaded, err := lib.Load("o1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("overlay still present after delete: %+v", loaded)
	}
}
