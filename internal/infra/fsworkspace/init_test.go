package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedInit() *Initializer {
	return NewInitializer(WithNow(func() time.Time {
		return time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	}))
}

func TestInit_CreatesLayout(t *testing.T) {
	root := t.TempDir()
	if err := fixedInit().Init(root, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	for _, d := range []string{
		"logs",
		"results",
		"docs",
		"runs",
		filepath.Join("archive", "2025_02", "sentiment"),
	} {
		info, err := os.Stat(filepath.Join(root, d))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected dir %s: %v", d, err)
		}
	}

	if _, err := os.Stat(filepath.Join(root, "tigro.yaml")); err != nil {
		t.Fatalf("expected starter config: %v", err)
	}
}

func TestInit_DoesNotClobberConfig(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, "tigro.yaml")
	if err := os.WriteFile(cfg, []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fixedInit().Init(root, false); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg)
	if string(b) != "custom" {
		t.Fatal("existing config must survive without --force")
	}

	if err := fixedInit().Init(root, true); err != nil {
		t.Fatal(err)
	}
	b, _ = os.ReadFile(cfg)
	if string(b) == "custom" {
		t.Fatal("force must rewrite the starter config")
	}
}

func TestInit_GitignoreCreated(t *testing.T) {
	root := t.TempDir()
	if err := fixedInit().Init(root, false); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("expected .gitignore: %v", err)
	}
	for _, entry := range []string{"logs/", "runs/"} {
		if !strings.Contains(string(b), entry) {
			t.Fatalf("expected %q in .gitignore, got %q", entry, b)
		}
	}
}

func TestInit_GitignoreAppendsMissingOnly(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("logs/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fixedInit().Init(root, false); err != nil {
		t.Fatal(err)
	}

	b, _ := os.ReadFile(path)
	content := string(b)
	if strings.Count(content, "logs/") != 1 {
		t.Fatalf("expected logs/ kept once, got %q", content)
	}
	if !strings.Contains(content, "runs/") {
		t.Fatalf("expected runs/ appended, got %q", content)
	}
}
