package ports

import (
	"context"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

// ProcessRunner executes a single external command synchronously.
// A non-zero exit returns the captured result together with a non-nil error.
type ProcessRunner interface {
	Run(ctx context.Context, spec domain.ProcessSpec) (domain.ProcessResult, error)
}
