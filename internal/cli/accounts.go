package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claunch/claunch/internal/config"
	"github.com/claunch/claunch/internal/setup"
	"github.com/claunch/claunch/internal/termui"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage configured accounts",
	}
	cmd.AddCommand(newAccountsListCmd())
	cmd.AddCommand(newAccountsAddCmd())
	cmd.AddCommand(newAccountsRemoveCmd())
	cmd.AddCommand(newAccountsEditCmd())
	return cmd
}

func newAccountsListCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if output == "json" {
				return printJSON(cmd, cfg.Accounts)
			}
			printAccounts(cmd.OutOrStdout(), cfg.Accounts)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "text", "text|json")
	return cmd
}

func newAccountsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add an account interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := termui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			return addAccount(cfg, path, p, cmd.ErrOrStderr())
		},
	}
}

func newAccountsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an account (its config directory is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			idx := cfg.FindAccount(args[0])
			if idx < 0 {
				return fmt.Errorf("no account %q", args[0])
			}
			return removeAccount(cfg, path, idx, cmd.ErrOrStderr())
		},
	}
}

func newAccountsEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an account interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			idx := cfg.FindAccount(args[0])
			if idx < 0 {
				return fmt.Errorf("no account %q", args[0])
			}
			p := termui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			return editAccount(cfg, path, idx, p, cmd.ErrOrStderr())
		},
	}
}

// runConfigureMenu is the account management loop reachable from the picker
// with 'c'. It edits the config file in place; the caller reloads afterwards.
func runConfigureMenu(cmd *cobra.Command, cfg *config.Config, cfgPath string) error {
	out := cmd.ErrOrStderr()
	p := termui.NewPrompter(cmd.InOrStdin(), out)

	for {
		fmt.Fprintf(out, "\n%sConfigure Accounts%s\n", termui.Bold, termui.Reset)
		fmt.Fprintln(out, "  [a] Add account")
		fmt.Fprintln(out, "  [r] Remove account")
		fmt.Fprintln(out, "  [e] Edit account")
		fmt.Fprintln(out, "  [l] List accounts")
		fmt.Fprintln(out, "  [q] Back to launcher")

		choice, err := p.Ask(fmt.Sprintf("\n%sChoice%s", termui.Dim, termui.Reset), "q")
		if err != nil {
			return err
		}
		c := strings.ToLower(config.FirstRune(choice, ""))

		switch c {
		case "a":
			if err := addAccount(cfg, cfgPath, p, out); err != nil {
				return err
			}
		case "r":
			if err := removeAccountInteractive(cfg, cfgPath, p, out); err != nil {
				return err
			}
		case "e":
			if err := editAccountInteractive(cfg, cfgPath, p, out); err != nil {
				return err
			}
		case "l":
			fmt.Fprintf(out, "\n%sCurrent Accounts%s\n", termui.Bold, termui.Reset)
			printAccounts(out, cfg.Accounts)
		case "q":
			return nil
		}
	}
}

func printAccounts(out io.Writer, accounts []config.Account) {
	for i, a := range accounts {
		dir := "~/.claude (default)"
		if a.ConfigDir != nil && *a.ConfigDir != "" {
			dir = *a.ConfigDir
		}
		color := termui.ColorSequence(a.Color)
		fmt.Fprintf(out, "  %s[%d]%s %s (id=%s, color=%s, hotkey=%s, dir=%s)\n",
			color, i+1, termui.Reset, a.Label, a.ID, a.Color, a.Hotkey, dir)
	}
}

func addAccount(cfg *config.Config, cfgPath string, p *termui.Prompter, out io.Writer) error {
	fmt.Fprintf(out, "\n%sAdd Account%s\n", termui.Bold, termui.Reset)
	id, err := p.Ask("  Account ID (e.g. work, client)", "")
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(out, "  Cancelled.")
		return nil
	}
	id = setup.SanitizeID(id)
	if cfg.FindAccount(id) >= 0 {
		fmt.Fprintf(out, "  Account '%s' already exists.\n", id)
		return nil
	}

	label, err := p.Ask("  Display label", config.TitleCase(id))
	if err != nil {
		return err
	}
	color, err := p.Ask("  Hex color (#RRGGBB)", config.DefaultColors[len(cfg.Accounts)%len(config.DefaultColors)])
	if err != nil {
		return err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	dir, err := p.Ask("  Config directory", filepath.Join(home, ".claude-"+id))
	if err != nil {
		return err
	}
	hotkey, err := p.Ask("  Hotkey letter", config.FirstRune(id, ""))
	if err != nil {
		return err
	}

	cfg.Accounts = append(cfg.Accounts, config.Account{
		ID:        id,
		Label:     label,
		Color:     color,
		ConfigDir: &dir,
		Hotkey:    config.FirstRune(hotkey, ""),
	})
	if err := saveConfig(cfg, cfgPath, out); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Added account '%s'.\n", id)
	return nil
}

func removeAccountInteractive(cfg *config.Config, cfgPath string, p *termui.Prompter, out io.Writer) error {
	if len(cfg.Accounts) <= 1 {
		fmt.Fprintln(out, "  Cannot remove the last account.")
		return nil
	}
	fmt.Fprintf(out, "\n%sRemove Account%s\n", termui.Bold, termui.Reset)
	idx, ok, err := pickAccountIndex(cfg, p, out, "  Account number to remove")
	if err != nil || !ok {
		return err
	}
	return removeAccount(cfg, cfgPath, idx, out)
}

func removeAccount(cfg *config.Config, cfgPath string, idx int, out io.Writer) error {
	if len(cfg.Accounts) <= 1 {
		fmt.Fprintln(out, "  Cannot remove the last account.")
		return nil
	}
	removed := cfg.Accounts[idx]
	cfg.Accounts = append(cfg.Accounts[:idx], cfg.Accounts[idx+1:]...)
	if err := saveConfig(cfg, cfgPath, out); err != nil {
		return err
	}

	dir := "~/.claude"
	if removed.ConfigDir != nil && *removed.ConfigDir != "" {
		dir = *removed.ConfigDir
	}
	fmt.Fprintf(out, "  Removed account '%s'.\n", removed.ID)
	fmt.Fprintf(out, "  Note: config directory '%s' was NOT deleted.\n", dir)
	return nil
}

func editAccountInteractive(cfg *config.Config, cfgPath string, p *termui.Prompter, out io.Writer) error {
	fmt.Fprintf(out, "\n%sEdit Account%s\n", termui.Bold, termui.Reset)
	idx, ok, err := pickAccountIndex(cfg, p, out, "  Account number to edit")
	if err != nil || !ok {
		return err
	}
	return editAccount(cfg, cfgPath, idx, p, out)
}

func editAccount(cfg *config.Config, cfgPath string, idx int, p *termui.Prompter, out io.Writer) error {
	a := &cfg.Accounts[idx]
	fmt.Fprintf(out, "  Editing '%s' (press Enter to keep current value)\n", a.ID)

	var err error
	if a.Label, err = p.Ask("  Label", a.Label); err != nil {
		return err
	}
	if a.Color, err = p.Ask("  Color", a.Color); err != nil {
		return err
	}
	// The default account's config dir stays implicit.
	if a.ConfigDir != nil {
		dir, err := p.Ask("  Config dir", *a.ConfigDir)
		if err != nil {
			return err
		}
		a.ConfigDir = &dir
	}
	hotkeyDefault := a.Hotkey
	if hotkeyDefault == "" {
		hotkeyDefault = config.FirstRune(a.ID, "")
	}
	if a.Hotkey, err = p.Ask("  Hotkey", hotkeyDefault); err != nil {
		return err
	}

	if err := saveConfig(cfg, cfgPath, out); err != nil {
		return err
	}
	fmt.Fprintf(out, "  Updated account '%s'.\n", a.ID)
	return nil
}

// pickAccountIndex lists accounts and asks for a 1-based number. ok is false
// when the user cancels or types something that is not a valid number.
func pickAccountIndex(cfg *config.Config, p *termui.Prompter, out io.Writer, prompt string) (int, bool, error) {
	for i, a := range cfg.Accounts {
		fmt.Fprintf(out, "  [%d] %s (%s)\n", i+1, a.Label, a.ID)
	}
	choice, err := p.Ask(prompt, "")
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(choice)
	if choice == "" || convErr != nil {
		fmt.Fprintln(out, "  Cancelled.")
		return 0, false, nil
	}
	if n < 1 || n > len(cfg.Accounts) {
		fmt.Fprintln(out, "  Invalid choice.")
		return 0, false, nil
	}
	return n - 1, true, nil
}

func saveConfig(cfg *config.Config, path string, out io.Writer) error {
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s\n", path)
	return nil
}
