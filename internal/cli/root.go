package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "tigro",
		Short:        "Tigro — daily sentiment pipeline automation",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Local overrides (API keys for the external scripts, etc.).
			// A missing .env is not an error.
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to logs/tigro.log")

	cmd.AddCommand(runCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
