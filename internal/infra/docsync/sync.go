// Package docsync rebuilds the public publish directory from the latest
// generated reports. The rebuild is deliberately not incremental: prior
// published content is discarded on every run so only latest data is served.
package docsync

import (
	"io"
	"os"
	"path/filepath"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

const (
	// LatestReport is the conventionally-named dashboard produced by the
	// generation step, overwritten each run.
	LatestReport = "sentiment_report_latest.html"
	// IndexName is the default-entry name the dashboard is also published
	// under, so the pages root serves it.
	IndexName = "index.html"
	// EntityPagePattern matches the per-ticker article pages to publish.
	EntityPagePattern = "articles_*_latest.html"
)

type Syncer struct{}

var _ ports.DocSyncer = (*Syncer)(nil)

func New() *Syncer {
	return &Syncer{}
}

// Sync wipes docsDir, recreates it, and copies the latest dashboard (under
// both IndexName and its stable alias) plus every per-ticker page into it.
// A missing dashboard is reported via stats, not an error; any copy failure
// aborts the whole sync.
func (s *Syncer) Sync(resultsDir, docsDir string) (domain.PublishStats, error) {
	var stats domain.PublishStats

	if err := os.RemoveAll(docsDir); err != nil {
		return stats, &domain.OpError{
			Op:   "docsync.clean",
			Kind: domain.KindExecution,
			Path: docsDir,
			Err:  err,
		}
	}
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		return stats, &domain.OpError{
			Op:   "docsync.mkdir",
			Kind: domain.KindExecution,
			Path: docsDir,
			Err:  err,
		}
	}

	latest := filepath.Join(resultsDir, LatestReport)
	if fileExists(latest) {
		for _, name := range []string{IndexName, LatestReport} {
			if err := copyFile(latest, filepath.Join(docsDir, name)); err != nil {
				return stats, err
			}
		}
		stats.MainCopied = true
	}

	pages, err := filepath.Glob(filepath.Join(resultsDir, EntityPagePattern))
	if err != nil {
		return stats, &domain.OpError{
			Op:   "docsync.glob",
			Kind: domain.KindExecution,
			Path: resultsDir,
			Err:  err,
		}
	}
	for _, page := range pages {
		if err := copyFile(page, filepath.Join(docsDir, filepath.Base(page))); err != nil {
			return stats, err
		}
		stats.EntityPages++
	}

	return stats, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &domain.OpError{Op: "docsync.copy", Kind: domain.KindExecution, Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return &domain.OpError{Op: "docsync.copy", Kind: domain.KindExecution, Path: dst, Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &domain.OpError{Op: "docsync.copy", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &domain.OpError{Op: "docsync.copy", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
