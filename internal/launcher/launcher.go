// Package launcher assembles the per-account environment and runs the real
// claude binary with the picked account's identity, guard configuration,
// and terminal tab color.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/claunch/claunch/internal/account"
	"github.com/claunch/claunch/internal/config"
	"github.com/claunch/claunch/internal/guard"
	"github.com/claunch/claunch/internal/termui"
)

// Launcher launches the configured binary. Run is injectable for tests;
// the default inherits this process's stdio and reports the child's exit
// code.
type Launcher struct {
	Config *config.Config

	// Stdout receives the tab-color escapes (they must reach the
	// terminal, not the child).
	Stdout io.Writer

	Run func(exe string, args, env []string) (int, error)
}

func New(cfg *config.Config) *Launcher {
	return &Launcher{Config: cfg, Stdout: os.Stdout, Run: runCommand}
}

// Launch runs the binary as the account at index, passing extraArgs
// through. The Windows Terminal tab color is set before the child starts
// and always reset afterwards, launch errors included.
func (l *Launcher) Launch(index int, extraArgs []string) (rc int, err error) {
	if index < 0 || index >= len(l.Config.Accounts) {
		return 1, fmt.Errorf("account index %d out of range", index)
	}
	acct := l.Config.Accounts[index]

	env, err := BuildEnv(os.Environ(), l.Config.Accounts, index)
	if err != nil {
		return 1, err
	}

	l.setTabColor(acct)
	defer fmt.Fprint(l.Stdout, termui.TabColorReset)

	return l.Run(l.Config.ClaudeExe, extraArgs, env)
}

// BuildEnv derives the child environment for the account at current:
// CLAUDE_ACCOUNT, the forbidden-dir variables the guard reads back, and
// CLAUDE_CONFIG_DIR (removed for the default account so the child uses
// ~/.claude).
func BuildEnv(base []string, accounts []config.Account, current int) ([]string, error) {
	acct := accounts[current]
	forbidden, err := account.ComputeForbiddenDirs(accounts, current)
	if err != nil {
		return nil, err
	}

	env := append([]string(nil), base...)
	env = envSet(env, guard.EnvAccount, acct.ID)

	if len(forbidden) > 0 {
		env = envSet(env, guard.EnvForbiddenDirs, strings.Join(forbidden, ","))
		// Singular form kept in sync for older guard hooks.
		env = envSet(env, guard.EnvForbiddenDir, forbidden[0])
	} else {
		env = envUnset(env, guard.EnvForbiddenDirs)
	}

	dir, err := account.ResolveConfigDir(acct)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		env = envSet(env, guard.EnvConfigDir, dir)
	} else {
		env = envUnset(env, guard.EnvConfigDir)
	}
	return env, nil
}

func (l *Launcher) setTabColor(acct config.Account) {
	r, g, b, err := termui.HexToRGB(acct.Color)
	if err != nil {
		return
	}
	fmt.Fprint(l.Stdout, termui.TabColor(r, g, b))
}

// envSet replaces the first occurrence of key in env, or appends it.
func envSet(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// envUnset removes every occurrence of key.
func envUnset(env []string, key string) []string {
	prefix := key + "="
	out := env[:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return out
}

func runCommand(exe string, args, env []string) (int, error) {
	cmd := exec.Command(exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = env

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("launching %s: %w", exe, err)
}
