package ports

import (
	"context"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

// GitPublisher runs the version-control side of publishing.
// A returned error means staging failed; commit/push trouble surfaces
// only as warnings inside the outcome.
type GitPublisher interface {
	Publish(ctx context.Context) (domain.GitOutcome, error)
}
