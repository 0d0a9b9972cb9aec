package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/claunch/claunch/internal/config"
	"github.com/claunch/claunch/pkg/types"
)

// GuardCommand is the PreToolUse hook command registered in each account's
// settings.json. The launcher binary doubles as the hook.
const GuardCommand = "claunch guard"

// isolationHeading opens the CLAUDE.md section owned by setup.
const isolationHeading = "## Account Isolation"

// InstallHook registers the guard as a PreToolUse hook in the settings.json
// at path, preserving whatever else is in the file. Unreadable or
// unparseable settings are treated as empty rather than aborting setup. A
// hook entry already mentioning claunch is left alone.
func InstallHook(path string) error {
	settings := map[string]any{}
	if raw, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(raw, &settings); err != nil {
			settings = map[string]any{}
		}
	}

	hooks, _ := settings["hooks"].(map[string]any)
	if hooks == nil {
		hooks = map[string]any{}
		settings["hooks"] = hooks
	}
	preTool, _ := hooks[types.HookEventPreToolUse].([]any)

	installed := false
	for _, h := range preTool {
		entry, ok := h.(map[string]any)
		if !ok {
			continue
		}
		cmd, _ := entry["command"].(string)
		if strings.Contains(cmd, "claunch") {
			installed = true
			break
		}
	}
	if !installed {
		preTool = append(preTool, map[string]any{
			"type":    "command",
			"command": GuardCommand,
		})
	}
	hooks[types.HookEventPreToolUse] = preTool

	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteIsolationSection appends or replaces the "## Account Isolation"
// section in the CLAUDE.md at path, describing the account at index and
// the directories it must not touch.
func WriteIsolationSection(path string, accounts []config.Account, index int, defaultDir string) error {
	acct := accounts[index]
	own := defaultDir
	if acct.ConfigDir != nil && *acct.ConfigDir != "" {
		own = *acct.ConfigDir
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", isolationHeading)
	fmt.Fprintf(&b, "This is the %s account. Config: %s\n", strings.ToUpper(acct.Label), own)
	for i, other := range accounts {
		if i == index {
			continue
		}
		dir := defaultDir
		if other.ConfigDir != nil && *other.ConfigDir != "" {
			dir = *other.ConfigDir
		}
		fmt.Fprintf(&b, "NEVER access files under %s.\n", dir)
	}
	section := b.String()

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	updated := replaceIsolation(string(existing), section)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// replaceIsolation splices section over the existing isolation section, or
// appends it. The old section runs from its heading to the next "## "
// heading or end of file.
func replaceIsolation(text, section string) string {
	marker := "\n" + isolationHeading + "\n"

	start := strings.Index(text, marker)
	if start < 0 {
		if strings.HasPrefix(text, isolationHeading+"\n") {
			start = 0
			marker = isolationHeading + "\n"
			section = strings.TrimPrefix(section, "\n")
		} else {
			return text + section
		}
	}

	rest := text[start+len(marker):]
	end := len(text)
	if next := strings.Index(rest, "\n## "); next >= 0 {
		end = start + len(marker) + next
	}
	return text[:start] + section + text[end:]
}
