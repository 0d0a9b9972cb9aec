package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/claunch/claunch/internal/audit"
	"github.com/claunch/claunch/internal/guard"
)

// newGuardCmd is the PreToolUse hook entry point. Claude Code pipes the
// tool call to stdin and reads the decision from stdout; a non-zero exit
// would surface as a hook failure, so this command always exits zero and any
// problem falls back to allowing the call.
func newGuardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guard",
		Short: "Run as a PreToolUse hook, denying cross-account file access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := guard.ConfigFromEnv(os.Getenv)

			var rec guard.Recorder
			if path := os.Getenv(guard.EnvAuditLog); path != "" {
				if log, err := audit.Open(path); err == nil {
					defer log.Close()
					rec = log
				}
			}

			_ = guard.Run(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), rec)
			return nil
		},
	}
}
