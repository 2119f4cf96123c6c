package preset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/likertlens/internal/filter"
	"github.com/KaramelBytes/likertlens/internal/preset"
)

func TestStore_SaveGetList(t *testing.T) {
	s := preset.NewStore(filepath.Join(t.TempDir(), "presets"))

	items, err := s.List()
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no presets, got %d", len(items))
	}

	if _, err := s.Save("stressed", filter.State{Column: "stress_daglig_likert", Lo: 4, Hi: 5}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save("calm", filter.State{Column: "stress_daglig_likert", Lo: 1, Hi: 2, GPAText: "9,5"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	items, err = s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Name != "calm" || items[1].Name != "stressed" {
		t.Fatalf("unexpected list order: %+v", items)
	}

	p, err := s.Get("calm")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := filter.State{Column: "stress_daglig_likert", Lo: 1, Hi: 2, GPAText: "9,5"}
	if p.State() != want {
		t.Fatalf("state=%+v want %+v", p.State(), want)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestStore_SaveReplacesByName(t *testing.T) {
	s := preset.NewStore(t.TempDir())
	first, err := s.Save("view", filter.State{Column: "a", Lo: 1, Hi: 2})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save("view", filter.State{Column: "b", Lo: 3, Hi: 4})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("id changed on replace: %s -> %s", first.ID, second.ID)
	}
	items, _ := s.List()
	if len(items) != 1 || items[0].Column != "b" {
		t.Fatalf("unexpected presets after replace: %+v", items)
	}
}

func TestStore_DeleteAndNotFound(t *testing.T) {
	s := preset.NewStore(t.TempDir())
	if _, err := s.Save("x", filter.State{Column: "a", Lo: 1, Hi: 5}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("x"); !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Get("x"); !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[]" {
		t.Fatalf("expected empty array on disk, got %q", b)
	}
}

func TestStore_RejectsBlankNameAndCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := preset.NewStore(dir)
	if _, err := s.Save("  ", filter.State{}); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(); err == nil {
		t.Fatal("expected parse error")
	}
}
