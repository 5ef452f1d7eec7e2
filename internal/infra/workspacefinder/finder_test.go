package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

func TestFindRoot_FromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tigro: {}\n")

	nested := filepath.Join(root, "results", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := NewFinder().FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("expected %q, got %q", root, got)
	}
}

func TestFindRoot_FilePathUsesItsDir(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tigro: {}\n")

	file := filepath.Join(root, "notes.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFinder().FindRoot(file)
	if err != nil {
		t.Fatalf("FindRoot error: %v", err)
	}
	if got != root {
		t.Fatalf("expected %q, got %q", root, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	_, err := NewFinder().FindRoot(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestFindRoot_EmptyStart(t *testing.T) {
	_, err := NewFinder().FindRoot("")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
