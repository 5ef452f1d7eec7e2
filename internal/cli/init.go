package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TheEMeraldNetwork/Kalimera/internal/infra/fsworkspace"
	"github.com/TheEMeraldNetwork/Kalimera/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a Tigro workspace (tigro.yaml, results/, docs/, logs/, runs/)",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(abs, force); err != nil {
				return err
			}

			fmt.Printf("Initialized Tigro workspace at %s\n", abs)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing tigro.yaml")
	return c
}
