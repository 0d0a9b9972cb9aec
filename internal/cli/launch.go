package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claunch/claunch/internal/account"
	"github.com/claunch/claunch/internal/config"
	"github.com/claunch/claunch/internal/guard"
	"github.com/claunch/claunch/internal/launcher"
	"github.com/claunch/claunch/internal/termui"
)

// newLaunchCmd is the explicit form of the root action. --account bypasses
// the picker entirely.
func newLaunchCmd() *cobra.Command {
	var accountID string
	cmd := &cobra.Command{
		Use:   "launch [--account ID] [-- CLAUDE_ARGS...]",
		Short: "Pick an account and run claude",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountID == "" {
				return runLaunch(cmd, args)
			}
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			idx := cfg.FindAccount(accountID)
			if idx < 0 {
				return fmt.Errorf("no account %q", accountID)
			}
			return launchAccount(cfg, idx, args)
		},
	}
	cmd.Flags().StringVar(&accountID, "account", "", "Account id to launch without the picker")
	return cmd
}

// runLaunch is the root command: pick an account and run claude. The picker
// is skipped when this process is already inside an account session
// (CLAUDE_ACCOUNT set) or when only one account is configured.
func runLaunch(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if existing := strings.ToLower(os.Getenv(guard.EnvAccount)); existing != "" {
		if idx := cfg.FindAccount(existing); idx >= 0 {
			return launchAccount(cfg, idx, args)
		}
	}

	if len(cfg.Accounts) == 1 {
		return launchAccount(cfg, 0, args)
	}

	choicePath, err := account.DefaultChoicePath()
	if err != nil {
		return err
	}

	var choice string
	for {
		menu := termui.Menu{
			Accounts:  cfg.Accounts,
			DefaultID: account.ReadLastChoice(choicePath, cfg.Accounts),
			Out:       cmd.ErrOrStderr(),
		}
		choice, err = menu.Show()
		if errors.Is(err, termui.ErrCancelled) {
			return NewExitError(1, "")
		}
		if err != nil {
			return err
		}

		if choice != termui.ChoiceConfigure {
			break
		}
		if err := runConfigureMenu(cmd, cfg, cfgPath); err != nil {
			return err
		}
		// Accounts may have been added, removed, or edited.
		cfg = config.Load(cfgPath, cmd.ErrOrStderr())
		if len(cfg.Accounts) == 1 {
			choice = cfg.Accounts[0].ID
			break
		}
	}

	account.SaveLastChoice(choicePath, choice)

	idx := cfg.FindAccount(choice)
	if idx < 0 {
		return fmt.Errorf("chosen account %q not found", choice)
	}
	return launchAccount(cfg, idx, args)
}

func launchAccount(cfg *config.Config, index int, args []string) error {
	rc, err := launcher.New(cfg).Launch(index, args)
	if err != nil {
		return err
	}
	if rc != 0 {
		return NewExitError(rc, "")
	}
	return nil
}
