package guard

import "strings"

// Environment variables the launcher sets for the child Claude Code process
// and the guard reads back inside the hook.
const (
	EnvForbiddenDirs = "CLAUDE_ACCOUNT_FORBIDDEN_DIRS"
	EnvForbiddenDir  = "CLAUDE_ACCOUNT_FORBIDDEN_DIR"
	EnvAccount       = "CLAUDE_ACCOUNT"
	EnvConfigDir     = "CLAUDE_CONFIG_DIR"
	EnvAuditLog      = "CLAUDE_ACCOUNT_GUARD_LOG"
)

// Config captures everything the guard needs from the environment. It is
// built once at process start and passed into Evaluate explicitly; the
// matching logic never consults ambient state.
type Config struct {
	Forbidden []ForbiddenDir
	Account   string
	ConfigDir string
}

// Enabled reports whether any forbidden directory is configured. A
// disabled guard allows everything.
func (c Config) Enabled() bool {
	return len(c.Forbidden) > 0
}

// ConfigFromEnv builds a Config from environment values. getenv is
// typically os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		Account:   getenv(EnvAccount),
		ConfigDir: getenv(EnvConfigDir),
	}
	if cfg.Account == "" {
		cfg.Account = "unknown"
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = "~/.claude"
	}
	for _, raw := range forbiddenFromEnv(getenv(EnvForbiddenDirs), getenv(EnvForbiddenDir)) {
		cfg.Forbidden = append(cfg.Forbidden, NewForbiddenDir(raw))
	}
	return cfg
}

// forbiddenFromEnv splits the plural comma-separated variable, falling back
// to the legacy singular variable only when the plural one is entirely
// unset or empty.
func forbiddenFromEnv(plural, singular string) []string {
	if plural != "" {
		var dirs []string
		for _, d := range strings.Split(plural, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
		return dirs
	}
	if s := strings.TrimSpace(singular); s != "" {
		return []string{s}
	}
	return nil
}
