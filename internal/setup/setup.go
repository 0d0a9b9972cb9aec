// Package setup implements the interactive first-run wizard: it collects
// the account list, writes the launcher config, prepares each account's
// config directory, registers the guard hook in settings.json, and keeps a
// per-account isolation section in CLAUDE.md.
package setup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/claunch/claunch/internal/config"
	"github.com/claunch/claunch/internal/termui"
)

// Wizard drives the interactive setup. Home overrides the real home
// directory in tests.
type Wizard struct {
	Prompter *termui.Prompter
	Out      io.Writer
	Home     string
}

func NewWizard(in io.Reader, out io.Writer) (*Wizard, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return &Wizard{
		Prompter: termui.NewPrompter(in, out),
		Out:      out,
		Home:     home,
	}, nil
}

// Run executes the whole wizard. It returns nil when the user declines the
// confirmation; only I/O failures are errors.
func (w *Wizard) Run() error {
	fmt.Fprintln(w.Out, strings.Repeat("=", 60))
	fmt.Fprintln(w.Out, "  Multi-Account Claude Code Setup")
	fmt.Fprintln(w.Out, strings.Repeat("=", 60))

	exe, err := w.Prompter.Ask("\nPath to claude binary", config.DefaultClaudeExe())
	if err != nil {
		return err
	}

	accounts, err := w.collectAccounts()
	if err != nil {
		return err
	}

	cfg := &config.Config{ClaudeExe: exe, Accounts: accounts}
	w.printSummary(cfg)

	ok, err := w.Prompter.AskYN("\nProceed with setup?", true)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w.Out, "Aborted.")
		return nil
	}

	return w.Apply(cfg)
}

// Apply performs the non-interactive half of setup for an already collected
// configuration.
func (w *Wizard) Apply(cfg *config.Config) error {
	cfgPath := filepath.Join(w.Home, config.FileName)
	if err := cfg.Save(cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(w.Out, "\nWrote %s\n", cfgPath)

	if err := w.createConfigDirs(cfg.Accounts); err != nil {
		return err
	}
	for i := range cfg.Accounts {
		dir := w.accountDir(cfg.Accounts[i])
		if err := InstallHook(filepath.Join(dir, "settings.json")); err != nil {
			return err
		}
		fmt.Fprintf(w.Out, "Updated %s\n", filepath.Join(dir, "settings.json"))

		if err := WriteIsolationSection(filepath.Join(dir, "CLAUDE.md"), cfg.Accounts, i, w.defaultDir()); err != nil {
			return err
		}
		fmt.Fprintf(w.Out, "Updated %s\n", filepath.Join(dir, "CLAUDE.md"))
	}

	fmt.Fprintln(w.Out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(w.Out, "  Setup complete!")
	fmt.Fprintln(w.Out, strings.Repeat("=", 60))
	fmt.Fprintln(w.Out, "\nRun 'claunch' from your terminal to test the account picker.")
	return nil
}

// collectAccounts prompts for accounts until the user submits an empty id.
// At least two accounts are required; the first is the default account and
// keeps ~/.claude.
func (w *Wizard) collectAccounts() ([]config.Account, error) {
	fmt.Fprintln(w.Out, "\n--- Account Setup ---")
	fmt.Fprintln(w.Out, "The first account is the default (uses ~/.claude config dir).")
	fmt.Fprintln(w.Out, "Press Enter with empty ID to finish adding accounts.")
	fmt.Fprintln(w.Out)

	var accounts []config.Account
	for {
		i := len(accounts)
		if i == 0 {
			fmt.Fprintf(w.Out, "Account #%d (default account):\n", i+1)
		} else {
			fmt.Fprintf(w.Out, "\nAccount #%d (additional account):\n", i+1)
		}

		idDefault := ""
		if i == 0 {
			idDefault = "personal"
		}
		id, err := w.Prompter.Ask("  Account ID (e.g. personal, business)", idDefault)
		if err != nil {
			return nil, err
		}
		if id == "" {
			if i < 2 {
				fmt.Fprintln(w.Out, "  You need at least 2 accounts for multi-account mode.")
				continue
			}
			break
		}
		id = SanitizeID(id)

		acct, err := w.askAccountDetails(id, i)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// askAccountDetails prompts for everything but the id. Index selects the
// suggested palette color and decides whether the account is the default.
func (w *Wizard) askAccountDetails(id string, index int) (config.Account, error) {
	label, err := w.Prompter.Ask("  Display label", config.TitleCase(id))
	if err != nil {
		return config.Account{}, err
	}
	color, err := w.Prompter.Ask("  Hex color (#RRGGBB)", config.DefaultColors[index%len(config.DefaultColors)])
	if err != nil {
		return config.Account{}, err
	}
	hotkey, err := w.Prompter.Ask("  Hotkey letter", config.FirstRune(id, ""))
	if err != nil {
		return config.Account{}, err
	}
	if hotkey == "" {
		hotkey = id
	}

	acct := config.Account{ID: id, Label: label, Color: color, Hotkey: config.FirstRune(hotkey, "")}
	if index == 0 {
		fmt.Fprintln(w.Out, "  Config dir: ~/.claude (default)")
		return acct, nil
	}

	dir, err := w.Prompter.Ask("  Config directory", filepath.Join(w.Home, ".claude-"+id))
	if err != nil {
		return config.Account{}, err
	}
	acct.ConfigDir = &dir
	return acct, nil
}

func (w *Wizard) printSummary(cfg *config.Config) {
	fmt.Fprintln(w.Out, "\n--- Configuration Summary ---")
	fmt.Fprintf(w.Out, "Claude binary: %s\n", cfg.ClaudeExe)
	for i, a := range cfg.Accounts {
		dir := "~/.claude (default)"
		if a.ConfigDir != nil {
			dir = *a.ConfigDir
		}
		fmt.Fprintf(w.Out, "  [%d] %s (id=%s, color=%s, dir=%s)\n", i+1, a.Label, a.ID, a.Color, dir)
	}
}

// createConfigDirs makes the config dir and its hooks/ subdirectory for
// every non-default account.
func (w *Wizard) createConfigDirs(accounts []config.Account) error {
	for _, a := range accounts {
		if a.ConfigDir == nil {
			continue
		}
		for _, d := range []string{*a.ConfigDir, filepath.Join(*a.ConfigDir, "hooks")} {
			if _, err := os.Stat(d); err == nil {
				continue
			}
			if err := os.MkdirAll(d, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", d, err)
			}
			fmt.Fprintf(w.Out, "Created %s\n", d)
		}
	}
	return nil
}

func (w *Wizard) accountDir(a config.Account) string {
	if a.ConfigDir != nil && *a.ConfigDir != "" {
		return *a.ConfigDir
	}
	return w.defaultDir()
}

func (w *Wizard) defaultDir() string {
	return filepath.Join(w.Home, ".claude")
}

// SanitizeID normalizes a user-typed account id: lowercase, spaces become
// hyphens.
func SanitizeID(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "-")
}
