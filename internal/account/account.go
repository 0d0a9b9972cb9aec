// Package account holds the helpers shared by the picker, launcher, and
// setup wizard: resolving per-account config directories, computing the
// forbidden-directory set the guard enforces, and remembering the last
// picked account.
package account

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claunch/claunch/internal/config"
)

// ChoiceFileName stores the last picked account id under the home directory.
const ChoiceFileName = ".claude-account"

// DefaultChoicePath returns ~/.claude-account.
func DefaultChoicePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ChoiceFileName), nil
}

// DefaultConfigDir returns ~/.claude, the config dir of the default account.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".claude"), nil
}

// ResolveConfigDir returns the account's config dir as an absolute path, or
// "" for the default account (nil ConfigDir).
func ResolveConfigDir(a config.Account) (string, error) {
	if a.ConfigDir == nil || *a.ConfigDir == "" {
		return "", nil
	}
	dir := *a.ConfigDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving config dir %q: %w", dir, err)
	}
	return abs, nil
}

// ComputeForbiddenDirs returns the resolved config dirs of every account
// except the one at current. Default accounts contribute ~/.claude. The
// result is what the launcher exports for the guard, in account order.
func ComputeForbiddenDirs(accounts []config.Account, current int) ([]string, error) {
	defaultDir, err := DefaultConfigDir()
	if err != nil {
		return nil, err
	}

	var forbidden []string
	for i, a := range accounts {
		if i == current {
			continue
		}
		dir, err := ResolveConfigDir(a)
		if err != nil {
			return nil, err
		}
		if dir == "" {
			dir = defaultDir
		}
		forbidden = append(forbidden, dir)
	}
	return forbidden, nil
}

// ReadLastChoice returns the account id stored at path if it still names a
// configured account, otherwise the first account's id.
func ReadLastChoice(path string, accounts []config.Account) string {
	if len(accounts) == 0 {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err == nil {
		stored := strings.ToLower(strings.TrimSpace(string(raw)))
		for _, a := range accounts {
			if a.ID == stored {
				return stored
			}
		}
	}
	return accounts[0].ID
}

// SaveLastChoice persists the picked account id. Failing to remember the
// choice must never break a launch, so errors are dropped.
func SaveLastChoice(path, id string) {
	_ = os.WriteFile(path, []byte(id+"\n"), 0o600)
}
