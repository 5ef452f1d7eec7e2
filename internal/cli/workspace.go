package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/docsync"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/gitcli"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/logger"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/logjanitor"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/mailcmd"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/procrunner"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/reportstore"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/summarycsv"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/workspacefinder"
	"github.com/TheEMeraldNetwork/Kalimera/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	runner    ports.ProcessRunner
	syncer    ports.DocSyncer
	publisher ports.GitPublisher
	summaries ports.SummaryLoader
	sender    ports.ReportSender
	janitor   ports.LogJanitor
	store     ports.ReportStore
}

// openWorkspace wires the adapters for an already-resolved workspace root.
// Call logger.Setup first: the adapters capture the global logger.
func openWorkspace(root string) (*workspaceCtx, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	runner := procrunner.New(root)

	return &workspaceCtx{
		root:      root,
		cfg:       cfg,
		runner:    runner,
		syncer:    docsync.New(),
		publisher: gitcli.New(root, cfg.Publish, cfg.Paths, runner, logger.L()),
		summaries: summarycsv.New(),
		sender:    mailcmd.New(cfg.Scripts.Sender, runner),
		janitor:   logjanitor.New(cfg.Logs.Retention(), logger.L()),
		store:     reportstore.New(root, cfg, reportstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `tigro init`): %w", wd, err)
	}
	return root, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
