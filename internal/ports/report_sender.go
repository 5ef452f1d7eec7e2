package ports

import (
	"context"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
)

// ReportSender hands the sentiment summary to the email collaborator.
// Formatting and delivery are the collaborator's concern, not ours.
type ReportSender interface {
	Send(ctx context.Context, summary domain.Summary, live bool) error
}
