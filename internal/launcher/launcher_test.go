package launcher

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claunch/claunch/internal/config"
	"github.com/claunch/claunch/internal/guard"
	"github.com/claunch/claunch/internal/termui"
)

func strptr(s string) *string { return &s }

func envLookup(env []string, key string) (string, bool) {
	prefix := key + "="
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			return strings.TrimPrefix(kv, prefix), true
		}
	}
	return "", false
}

func testAccounts(t *testing.T) []config.Account {
	t.Helper()
	dir := t.TempDir()
	return []config.Account{
		{ID: "personal", Label: "Personal", Color: "#30D158"},
		{ID: "work", Label: "Work", Color: "#0A84FF", ConfigDir: strptr(filepath.Join(dir, "work"))},
		{ID: "oss", Label: "OSS", Color: "#FF9F0A", ConfigDir: strptr(filepath.Join(dir, "oss"))},
	}
}

func TestBuildEnv(t *testing.T) {
	accounts := testAccounts(t)

	t.Run("named account forbids the others", func(t *testing.T) {
		env, err := BuildEnv([]string{"PATH=/usr/bin"}, accounts, 1)
		require.NoError(t, err)

		acct, _ := envLookup(env, guard.EnvAccount)
		assert.Equal(t, "work", acct)

		dirs, ok := envLookup(env, guard.EnvForbiddenDirs)
		require.True(t, ok)
		parts := strings.Split(dirs, ",")
		require.Len(t, parts, 2)
		assert.True(t, strings.HasSuffix(parts[0], ".claude"))
		assert.True(t, strings.HasSuffix(parts[1], "oss"))

		single, ok := envLookup(env, guard.EnvForbiddenDir)
		require.True(t, ok)
		assert.Equal(t, parts[0], single)

		cfgDir, ok := envLookup(env, guard.EnvConfigDir)
		require.True(t, ok)
		assert.Equal(t, *accounts[1].ConfigDir, cfgDir)
	})

	t.Run("default account drops CLAUDE_CONFIG_DIR", func(t *testing.T) {
		base := []string{guard.EnvConfigDir + "=/stale", "PATH=/usr/bin"}
		env, err := BuildEnv(base, accounts, 0)
		require.NoError(t, err)

		_, ok := envLookup(env, guard.EnvConfigDir)
		assert.False(t, ok)

		path, ok := envLookup(env, "PATH")
		require.True(t, ok)
		assert.Equal(t, "/usr/bin", path)
	})

	t.Run("single account clears forbidden dirs", func(t *testing.T) {
		base := []string{guard.EnvForbiddenDirs + "=/stale"}
		env, err := BuildEnv(base, accounts[:1], 0)
		require.NoError(t, err)

		_, ok := envLookup(env, guard.EnvForbiddenDirs)
		assert.False(t, ok)
	})

	t.Run("overwrites stale values in place", func(t *testing.T) {
		base := []string{guard.EnvAccount + "=old", "HOME=/home/x"}
		env, err := BuildEnv(base, accounts, 2)
		require.NoError(t, err)

		acct, _ := envLookup(env, guard.EnvAccount)
		assert.Equal(t, "oss", acct)
		assert.Equal(t, guard.EnvAccount+"=oss", env[0])
	})
}

func TestLaunch(t *testing.T) {
	accounts := testAccounts(t)
	cfg := &config.Config{ClaudeExe: "/usr/local/bin/claude", Accounts: accounts}

	t.Run("passes args and env, resets tab color", func(t *testing.T) {
		var out bytes.Buffer
		var gotExe string
		var gotArgs, gotEnv []string
		l := &Launcher{
			Config: cfg,
			Stdout: &out,
			Run: func(exe string, args, env []string) (int, error) {
				gotExe = exe
				gotArgs = args
				gotEnv = env
				return 3, nil
			},
		}

		rc, err := l.Launch(1, []string{"--continue"})
		require.NoError(t, err)
		assert.Equal(t, 3, rc)
		assert.Equal(t, "/usr/local/bin/claude", gotExe)
		assert.Equal(t, []string{"--continue"}, gotArgs)

		acct, _ := envLookup(gotEnv, guard.EnvAccount)
		assert.Equal(t, "work", acct)

		// Color set before the child ran, reset after.
		assert.True(t, strings.HasPrefix(out.String(), termui.TabColor(0x0A, 0x84, 0xFF)))
		assert.True(t, strings.HasSuffix(out.String(), termui.TabColorReset))
	})

	t.Run("resets tab color when the run fails", func(t *testing.T) {
		var out bytes.Buffer
		l := &Launcher{
			Config: cfg,
			Stdout: &out,
			Run: func(string, []string, []string) (int, error) {
				return 1, errors.New("exec format error")
			},
		}

		rc, err := l.Launch(0, nil)
		assert.Error(t, err)
		assert.Equal(t, 1, rc)
		assert.True(t, strings.HasSuffix(out.String(), termui.TabColorReset))
	})

	t.Run("bad color skips the escape", func(t *testing.T) {
		plain := &config.Config{ClaudeExe: "claude", Accounts: []config.Account{
			{ID: "a", Label: "A", Color: "teal"},
			{ID: "b", Label: "B", Color: "#112233", ConfigDir: strptr(t.TempDir())},
		}}
		var out bytes.Buffer
		l := &Launcher{
			Config: plain,
			Stdout: &out,
			Run:    func(string, []string, []string) (int, error) { return 0, nil },
		}

		_, err := l.Launch(0, nil)
		require.NoError(t, err)
		assert.Equal(t, termui.TabColorReset, out.String())
	})

	t.Run("index out of range", func(t *testing.T) {
		l := New(cfg)
		rc, err := l.Launch(7, nil)
		assert.Error(t, err)
		assert.Equal(t, 1, rc)
	})
}
