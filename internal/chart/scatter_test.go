package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/likertlens/internal/dataset"
	"github.com/KaramelBytes/likertlens/internal/filter"
)

func testView(t *testing.T, lo, hi float64) *filter.View {
	t.Helper()
	cols := []string{"titel", "stress_daglig_likert", "ensom_likert"}
	rows := [][]dataset.Value{
		{dataset.Text("Datalogi"), dataset.Number(2), dataset.Number(3)},
		{dataset.Text("Medicin"), dataset.Number(4), dataset.Number(2)},
		{dataset.Text("Jura"), dataset.Number(3), dataset.Number(4)},
		{dataset.Text("Historie"), dataset.Number(5), dataset.Number(3)},
	}
	e := filter.NewEngine(dataset.New("t", cols, rows), nil, "")
	v, _, err := e.Apply(filter.State{Column: "stress_daglig_likert", Lo: lo, Hi: hi})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return v
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	if err := DefaultScatter().Render(testView(t, 1, 5), FormatSVG, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("expected svg output, got %.80q", out)
	}
}

func TestRender_PNGSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	if err := DefaultScatter().Render(testView(t, 5, 5), FormatPNG, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected png signature")
	}
}

func TestRender_Errors(t *testing.T) {
	s := DefaultScatter()
	if err := s.Render(testView(t, 9, 10), FormatSVG, &bytes.Buffer{}); !errors.Is(err, ErrEmptyView) {
		t.Fatalf("expected ErrEmptyView, got %v", err)
	}
	s.Y = "titel"
	var ice *filter.InvalidColumnError
	if err := s.Render(testView(t, 1, 5), FormatSVG, &bytes.Buffer{}); !errors.As(err, &ice) {
		t.Fatalf("expected InvalidColumnError, got %v", err)
	}
	if err := DefaultScatter().Render(testView(t, 1, 5), Format("gif"), &bytes.Buffer{}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scatter.svg")
	if err := DefaultScatter().RenderFile(testView(t, 2, 4), path); err != nil {
		t.Fatalf("render file: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Stress vs Loneliness") {
		t.Fatal("title missing from svg")
	}
	if _, err := FormatFromPath("x.jpg"); err == nil {
		t.Fatal("expected error for .jpg")
	}
}
