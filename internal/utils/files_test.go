package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/likertlens/internal/utils"
)

func TestSafeWriteFile_CreatesParentAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "presets.json")
	if err := utils.SafeWriteFile(path, []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := utils.SafeWriteFile(path, []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "two" {
		t.Fatalf("content=%q, want two", b)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"rows": 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"rows\": 3\n}" {
		t.Fatalf("got %q", b)
	}
	if _, err := utils.PrettyJSON(func() {}); err == nil {
		t.Fatal("expected error for unsupported value")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := utils.ExpandHome("~/.likertlens/presets")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".likertlens", "presets"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got, _ := utils.ExpandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
