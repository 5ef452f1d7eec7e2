package ports

import "github.com/TheEMeraldNetwork/Kalimera/internal/domain"

// SummaryLoader reads the latest sentiment summary from the results directory.
type SummaryLoader interface {
	LoadLatest(resultsDir string) (domain.Summary, error)
}
