// Package cli wires the launcher's commands: the default account picker,
// the PreToolUse guard hook, the setup wizard, and account management.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claunch/claunch/internal/config"
)

func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claunch [-- CLAUDE_ARGS...]",
		Short: "claunch: multi-account Claude Code launcher",
		Long: "claunch picks a Claude Code account, exports its isolation\n" +
			"environment, and runs the real claude binary. Arguments after --\n" +
			"are passed through to claude.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLaunch,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("claunch {{.Version}}\n")

	cmd.AddCommand(newLaunchCmd())
	cmd.AddCommand(newGuardCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newAccountsCmd())

	return cmd
}

// loadConfig resolves the config path and loads it, warning on stderr the
// way every entry point does.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, "", err
	}
	return config.Load(path, cmd.ErrOrStderr()), path, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
