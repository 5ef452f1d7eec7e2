package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := t.TempDir()

	// Partial config (only a strategy override)
	writeConfig(t, root, "tigro:\n  publish:\n    strategy: tracked\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Publish.Strategy != domain.StrategyTracked {
		t.Fatalf("expected strategy=tracked, got=%s", cfg.Publish.Strategy)
	}
	if cfg.Scripts.Collector != "sent_collect_data.py" {
		t.Fatalf("expected default collector, got=%s", cfg.Scripts.Collector)
	}
	if cfg.Publish.Remote != "origin" || cfg.Publish.Branch != "gh-pages" {
		t.Fatalf("expected default remote/branch, got=%s/%s", cfg.Publish.Remote, cfg.Publish.Branch)
	}
	if cfg.Logs.RetentionDays != 30 {
		t.Fatalf("expected 30 day retention, got=%d", cfg.Logs.RetentionDays)
	}
	if cfg.Paths.ResultsDir != "results" || cfg.Paths.DocsDir != "docs" {
		t.Fatalf("expected default paths, got=%+v", cfg.Paths)
	}
}

func TestLoadConfig_FullOverride(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `tigro:
  scripts:
    collector: collect.sh
    dashboard: dash.sh
    sender: mail.sh
  publish:
    strategy: pages
    remote: upstream
    branch: site
    url: https://example.org/dash/
  report:
    live: true
  logs:
    retention_days: 7
  paths:
    results_dir: out
    docs_dir: public
    logs_dir: log
    runs_dir: artifacts
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Scripts.Collector != "collect.sh" || cfg.Scripts.Sender != "mail.sh" {
		t.Fatalf("scripts not applied: %+v", cfg.Scripts)
	}
	if cfg.Publish.Remote != "upstream" || cfg.Publish.Branch != "site" {
		t.Fatalf("publish not applied: %+v", cfg.Publish)
	}
	if !cfg.Report.Live {
		t.Fatal("expected live=true")
	}
	if cfg.Logs.RetentionDays != 7 {
		t.Fatalf("expected retention 7, got %d", cfg.Logs.RetentionDays)
	}
	if cfg.Paths.RunsDir != "artifacts" {
		t.Fatalf("paths not applied: %+v", cfg.Paths)
	}
}

func TestLoadConfig_MissingFileReturnsDefaultsAndError(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	// Defaults still usable by callers that tolerate a missing file.
	if cfg.Paths.ResultsDir != "results" {
		t.Fatalf("expected defaults, got %+v", cfg.Paths)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "tigro: [broken")

	_, err := LoadConfig(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
