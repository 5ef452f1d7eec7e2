// Package logjanitor deletes rotated log files past the retention window.
package logjanitor

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

type Janitor struct {
	retention time.Duration
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Janitor)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(j *Janitor) { j.now = now }
}

var _ ports.LogJanitor = (*Janitor)(nil)

func New(retention time.Duration, log *slog.Logger, opts ...Option) *Janitor {
	j := &Janitor{
		retention: retention,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Cleanup removes *.log files whose mtime is strictly older than the
// retention window. An absent directory is a no-op; per-file failures are
// logged as warnings and never propagated.
func (j *Janitor) Cleanup(logsDir string) (removed int) {
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		return 0
	}

	matches, err := filepath.Glob(filepath.Join(logsDir, "*.log"))
	if err != nil {
		j.log.Warn("logjanitor.glob_failed", "dir", logsDir, "err", err)
		return 0
	}

	cutoff := j.now().Add(-j.retention)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			j.log.Warn("logjanitor.stat_failed", "path", path, "err", err)
			continue
		}

		// Boundary policy: exactly-at-cutoff is retained.
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(path); err != nil {
			j.log.Warn("logjanitor.remove_failed", "path", path, "err", err)
			continue
		}
		j.log.Info("logjanitor.removed", "file", filepath.Base(path))
		removed++
	}
	return removed
}
