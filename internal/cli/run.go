package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheEMeraldNetwork/Kalimera/internal/domain"
	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/logger"
	"github.com/TheEMeraldNetwork/Kalimera/internal/usecase"
)

func runCmd() *cobra.Command {
	var workspace string
	var live bool
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Run the daily pipeline: collect, generate, publish, report, clean up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveWorkspaceRoot(workspace)
			if err != nil {
				return err
			}

			debug, _ := cmd.Flags().GetBool("debug")
			cleanup, _ := logger.Setup(logger.Config{
				Root:    root,
				Debug:   debug,
				Console: true,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			ws, err := openWorkspace(root)
			if err != nil {
				return err
			}

			if live {
				ws.cfg.Report.Live = true
			}
			store := ws.store
			if noSave {
				store = nil
			}

			uc := usecase.NewRunPipeline(ws.root, ws.cfg, usecase.Deps{
				Runner:    ws.runner,
				Syncer:    ws.syncer,
				Publisher: ws.publisher,
				Summaries: ws.summaries,
				Sender:    ws.sender,
				Janitor:   ws.janitor,
				Store:     store,
				Logger:    logger.L(),
			})

			report, reportID, runErr := uc.Execute(cmd.Context())

			// Print whatever we have even when the run aborted.
			if err := printReport(os.Stdout, report, reportID, format); err != nil {
				return err
			}
			return runErr
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().BoolVar(&live, "live", false, "Send the email report for real instead of test mode")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a run artifact under runs/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printReport(w io.Writer, report domain.RunReport, reportID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"report_id": reportID,
			"report":    report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, reportID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.RunReport, reportID string) {
	fmt.Fprintln(w, titleStyle.Render("Tigro daily run"))
	fmt.Fprintf(w, "Strategy:  %s\n", report.Strategy)
	fmt.Fprintf(w, "Started:   %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:  %s\n", report.Duration())
	if reportID != "" {
		fmt.Fprintf(w, "Report ID: %s\n", reportID)
	}
	fmt.Fprintln(w)

	for _, step := range report.Steps {
		fmt.Fprintf(w, "- %s %s", statusBadge(step.Status), step.Step)
		if step.Attempts > 1 {
			fmt.Fprintf(w, " (%d attempts)", step.Attempts)
		}
		fmt.Fprintln(w)
		if step.Detail != "" {
			fmt.Fprintf(w, "  %s\n", faintStyle.Render(step.Detail))
		}
		if step.Err != nil {
			fmt.Fprintf(w, "  error: %s\n", step.Err.Message)
		}
	}
	fmt.Fprintln(w)

	if report.Succeeded {
		fmt.Fprintln(w, okStyle.Render("Pipeline completed"))
	} else {
		fmt.Fprintln(w, failStyle.Render("Pipeline failed"))
	}
}

func statusBadge(s domain.StepStatus) string {
	switch s {
	case domain.StatusOK:
		return okStyle.Render("[ OK ]")
	case domain.StatusWarned:
		return warnStyle.Render("[WARN]")
	case domain.StatusFailed:
		return failStyle.Render("[FAIL]")
	case domain.StatusSkipped:
		return faintStyle.Render("[SKIP]")
	default:
		return string(s)
	}
}
