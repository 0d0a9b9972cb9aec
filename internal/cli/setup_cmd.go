package cli

import (
	"github.com/spf13/cobra"

	"github.com/claunch/claunch/internal/setup"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively configure multi-account mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := setup.NewWizard(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return w.Run()
		},
	}
}
