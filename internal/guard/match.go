package guard

import (
	"fmt"
	"strings"

	"github.com/claunch/claunch/pkg/types"
)

// Denial describes a matched forbidden directory. A nil *Denial means the
// tool call is allowed.
type Denial struct {
	// MatchedDir is the normalized form of the directory that matched.
	MatchedDir string

	// DisplayDir is MatchedDir rendered for the deny message: backslash
	// style when the first configured directory was backslash-styled,
	// forward-slash style otherwise.
	DisplayDir string

	Account   string
	ConfigDir string
	Reason    string
}

// toolTarget extracts the one text field the guard scans for a recognized
// tool. ok is false for tools the guard does not inspect.
func toolTarget(in types.HookInput) (target string, ok bool) {
	switch in.ToolName {
	case "Bash":
		return in.Field("command"), true
	case "Read", "Write", "Edit":
		return in.Field("file_path"), true
	case "Glob", "Grep":
		return in.Field("path"), true
	}
	return "", false
}

// matchForbidden returns the first configured directory referenced by text
// in any of its spellings: the normalized form against the slash-normalized
// text, the backslash-rewritten form against the raw lowered text, and the
// MSYS2 alias against the raw lowered text.
//
// Containment is plain substring, not path-segment anchored. A forbidden
// dir that is a prefix of a longer sibling name will also match; false
// positives are preferred over missed accesses here.
func (c Config) matchForbidden(text string) (ForbiddenDir, bool) {
	lowered := strings.ToLower(text)
	slashed := strings.ReplaceAll(lowered, `\`, "/")
	for _, dir := range c.Forbidden {
		if strings.Contains(slashed, dir.Normalized) {
			return dir, true
		}
		if strings.Contains(lowered, strings.ReplaceAll(dir.Normalized, "/", `\`)) {
			return dir, true
		}
		if dir.PosixAlias != "" && strings.Contains(lowered, dir.PosixAlias) {
			return dir, true
		}
	}
	return ForbiddenDir{}, false
}

// Evaluate decides one tool request. It returns nil (allow) for a disabled
// guard, unrecognized tools, empty targets, and unmatched paths.
func (c Config) Evaluate(in types.HookInput) *Denial {
	if !c.Enabled() {
		return nil
	}
	target, ok := toolTarget(in)
	if !ok || target == "" {
		return nil
	}
	dir, ok := c.matchForbidden(target)
	if !ok {
		return nil
	}

	display := dir.Normalized
	if strings.Contains(c.Forbidden[0].Raw, `\`) {
		display = strings.ReplaceAll(display, "/", `\`)
	}
	return &Denial{
		MatchedDir: dir.Normalized,
		DisplayDir: display,
		Account:    c.Account,
		ConfigDir:  c.ConfigDir,
		Reason: fmt.Sprintf(
			"Cross-account access denied. You are running as the '%s' account (config: %s). Access to %s is forbidden. That path belongs to a different account.",
			c.Account, c.ConfigDir, display),
	}
}
