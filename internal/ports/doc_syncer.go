package ports

import "github.com/TheEMeraldNetwork/Kalimera/internal/domain"

// DocSyncer rebuilds the publish directory from the latest results.
type DocSyncer interface {
	Sync(resultsDir, docsDir string) (domain.PublishStats, error)
}
