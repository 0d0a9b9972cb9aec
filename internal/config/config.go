// Package config reads and writes the launcher configuration file,
// ~/.claude-launcher.json. The format is owned by the wider multi-account
// setup; loading is forgiving (a broken or missing file degrades to a
// usable single-account default, never a fatal error).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// FileName is the config file name under the user's home directory.
const FileName = ".claude-launcher.json"

// DefaultColors is the palette offered for newly added accounts, in order.
var DefaultColors = []string{
	"#cc3333", "#2ecc71", "#3498db", "#e67e22", "#9b59b6",
	"#1abc9c", "#e74c3c", "#f39c12", "#2980b9",
}

// Account is one configured Claude Code account.
type Account struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`

	// ConfigDir is the account's CLAUDE_CONFIG_DIR. nil marks the default
	// account, which uses ~/.claude.
	ConfigDir *string `json:"config_dir"`

	// Hotkey is the single letter that selects this account in the picker.
	Hotkey string `json:"hotkey"`
}

// Config is the launcher configuration.
type Config struct {
	ClaudeExe string    `json:"claude_exe"`
	Accounts  []Account `json:"accounts"`
}

// DefaultPath returns ~/.claude-launcher.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// DefaultClaudeExe returns the conventional claude binary location for this
// platform. It is only a default offered to the user, not a discovery
// mechanism.
func DefaultClaudeExe() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	name := "claude"
	if runtime.GOOS == "windows" {
		name = "claude.exe"
	}
	return filepath.Join(home, ".local", "bin", name)
}

// Default returns the minimal single-account configuration used when no
// config file exists.
func Default() *Config {
	return &Config{
		ClaudeExe: DefaultClaudeExe(),
		Accounts: []Account{
			{ID: "default", Label: "Default", Color: "#ffffff", ConfigDir: nil, Hotkey: "d"},
		},
	}
}

// Load reads the config file at path. A missing file returns the default
// config silently; an unreadable, unparseable, or account-less file returns
// the default config after a warning on warn.
func Load(path string, warn io.Writer) *Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(warn, "Warning: failed to load %s: %v\n", path, err)
		}
		return Default()
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		fmt.Fprintf(warn, "Warning: failed to load %s: %v\n", path, err)
		return Default()
	}
	if len(cfg.Accounts) == 0 {
		fmt.Fprintf(warn, "Warning: no accounts in %s, using defaults\n", path)
		return Default()
	}

	cfg.applyDefaults()
	return &cfg
}

// applyDefaults back-fills omitted fields the way the launcher has always
// tolerated hand-edited config files.
func (c *Config) applyDefaults() {
	if c.ClaudeExe == "" {
		c.ClaudeExe = DefaultClaudeExe()
	}
	for i := range c.Accounts {
		a := &c.Accounts[i]
		if a.ID == "" {
			if a.Label != "" {
				a.ID = strings.ToLower(a.Label)
			} else {
				a.ID = "default"
			}
		}
		if a.Label == "" {
			a.Label = TitleCase(a.ID)
		}
		if a.Color == "" {
			a.Color = "#ffffff"
		}
		if a.Hotkey == "" {
			a.Hotkey = FirstRune(a.ID, "x")
		}
	}
}

// Save writes the config atomically (temp file + rename) with 2-space
// indentation.
func (c *Config) Save(path string) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".claude-launcher-*")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting config mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

// FindAccount returns the index of the account with the given id, or -1.
func (c *Config) FindAccount(id string) int {
	for i, a := range c.Accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// TitleCase uppercases the first letter of every alphabetic run, matching
// how account labels have historically been derived from ids
// ("work-acct" -> "Work-Acct").
func TitleCase(s string) string {
	var b strings.Builder
	prevAlpha := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevAlpha {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevAlpha = unicode.IsLetter(r)
	}
	return b.String()
}

// FirstRune returns the first rune of s as a string, or fallback when s is
// empty. Byte slicing would mangle multi-byte ids.
func FirstRune(s, fallback string) string {
	for _, r := range s {
		return string(r)
	}
	return fallback
}
