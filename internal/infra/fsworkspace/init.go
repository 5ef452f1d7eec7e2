// Package fsworkspace scaffolds the on-disk layout a pipeline run expects.
package fsworkspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

const starterConfig = `tigro:
  scripts:
    collector: sent_collect_data.py
    dashboard: viz_dashboard_generator.py
    # sender: send_report.py
  publish:
    strategy: pages
    remote: origin
    branch: gh-pages
  report:
    live: false
  logs:
    retention_days: 30
`

type Initializer struct {
	now func() time.Time
}

type Option func(*Initializer)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(i *Initializer) { i.now = now }
}

func NewInitializer(opts ...Option) *Initializer {
	i := &Initializer{now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(root string, force bool) error {
	root = filepath.Clean(root)
	now := i.now()

	dirs := []string{
		filepath.Join(root, "logs"),
		filepath.Join(root, "results"),
		filepath.Join(root, "docs"),
		filepath.Join(root, "runs"),
		// Written by the collection collaborator, referenced here only so a
		// fresh workspace has the layout it expects.
		filepath.Join(root, "archive", fmt.Sprintf("%d_%02d", now.Year(), int(now.Month())), "sentiment"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	if err := ensureGitignore(root); err != nil {
		return err
	}

	cfgPath := filepath.Join(root, "tigro.yaml")
	if !force {
		if _, err := os.Stat(cfgPath); err == nil {
			return nil
		}
	}
	return os.WriteFile(cfgPath, []byte(starterConfig), 0o644)
}

func ensureGitignore(root string) error {
	const header = "# Tigro"
	entries := []string{
		"logs/",
		"runs/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
