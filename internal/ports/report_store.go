package ports

import "github.com/TheEMeraldNetwork/Kalimera/internal/domain"

// ReportStore persists run reports for reproducibility.
type ReportStore interface {
	SaveReport(report domain.RunReport) (id string, err error)
}
