// Package mailcmd sends the daily report by invoking the external sender
// executable. The email component is an opaque collaborator: it gets the
// summary file path and a mode flag, nothing else.
package mailcmd

import (
	"context"
	"errors"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

type Sender struct {
	executable string
	runner     ports.ProcessRunner
}

func New(executable string, runner ports.ProcessRunner) *Sender {
	return &Sender{
		executable: executable,
		runner:     runner,
	}
}

var _ ports.ReportSender = (*Sender)(nil)

func (s *Sender) Send(ctx context.Context, summary domain.Summary, live bool) error {
	if s.executable == "" {
		return &domain.OpError{
			Op:   "mailcmd.send",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("no sender executable configured"),
		}
	}

	mode := "--test-mode"
	if live {
		mode = "--live"
	}

	_, err := s.runner.Run(ctx, domain.ProcessSpec{
		Args: []string{s.executable, "--summary", summary.Path, mode},
	})
	return err
}
