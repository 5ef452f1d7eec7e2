package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/workspacefinder"
)

func checkCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "check",
		Short: "Verify configuration and prerequisites without running anything",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := resolveWorkspaceRoot(workspace)
			if err != nil {
				return err
			}

			cfg, err := workspacefinder.LoadConfig(root)
			if err != nil {
				return err
			}

			if problems := checkWorkspace(root, cfg); len(problems) > 0 {
				for _, p := range problems {
					fmt.Println(failStyle.Render("✗"), p)
				}
				return fmt.Errorf("%d problem(s) found", len(problems))
			}

			fmt.Println("OK")
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}

// checkWorkspace reports everything that would stop or degrade a run.
func checkWorkspace(root string, cfg domain.Config) []string {
	var problems []string

	for _, script := range []string{cfg.Scripts.Collector, cfg.Scripts.Dashboard} {
		if script == "" {
			problems = append(problems, "required script not configured")
			continue
		}
		if !fileExists(scriptPath(root, script)) {
			problems = append(problems, fmt.Sprintf("required script %q not found", script))
		}
	}

	if cfg.Scripts.Sender != "" && !fileExists(scriptPath(root, cfg.Scripts.Sender)) {
		problems = append(problems, fmt.Sprintf("report sender %q not found (report step would be skipped)", cfg.Scripts.Sender))
	}

	switch cfg.Publish.Strategy {
	case domain.StrategyPages, domain.StrategyTracked, "":
	default:
		problems = append(problems, fmt.Sprintf("unknown publish strategy %q", cfg.Publish.Strategy))
	}

	if !fileExists(filepath.Join(root, ".git")) {
		problems = append(problems, "workspace is not a git repository (publish step would fail)")
	}

	return problems
}

func scriptPath(root, script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	return filepath.Join(root, script)
}
