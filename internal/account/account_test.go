package account

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claunch/claunch/internal/config"
)

func strptr(s string) *string { return &s }

func TestResolveConfigDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		acct config.Account
		want string
	}{
		{name: "nil dir is default account", acct: config.Account{ID: "default"}, want: ""},
		{name: "empty dir is default account", acct: config.Account{ConfigDir: strptr("")}, want: ""},
		{name: "absolute dir kept", acct: config.Account{ConfigDir: strptr(filepath.Join(home, ".claude-work"))}, want: filepath.Join(home, ".claude-work")},
		{name: "tilde expanded", acct: config.Account{ConfigDir: strptr("~/.claude-work")}, want: filepath.Join(home, ".claude-work")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveConfigDir(tt.acct)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeForbiddenDirs(t *testing.T) {
	defaultDir, err := DefaultConfigDir()
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	accounts := []config.Account{
		{ID: "personal"}, // default account
		{ID: "work", ConfigDir: strptr(filepath.Join(home, ".claude-work"))},
		{ID: "client", ConfigDir: strptr(filepath.Join(home, ".claude-client"))},
	}

	forbidden, err := ComputeForbiddenDirs(accounts, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{defaultDir, filepath.Join(home, ".claude-client")}, forbidden)

	forbidden, err = ComputeForbiddenDirs(accounts, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(home, ".claude-work"),
		filepath.Join(home, ".claude-client"),
	}, forbidden)
}

func TestComputeForbiddenDirs_SingleAccount(t *testing.T) {
	forbidden, err := ComputeForbiddenDirs([]config.Account{{ID: "only"}}, 0)
	require.NoError(t, err)
	assert.Empty(t, forbidden)
}

func TestReadLastChoice(t *testing.T) {
	accounts := []config.Account{{ID: "personal"}, {ID: "work"}}
	dir := t.TempDir()
	path := filepath.Join(dir, ChoiceFileName)

	// Missing file falls back to the first account.
	assert.Equal(t, "personal", ReadLastChoice(path, accounts))

	require.NoError(t, os.WriteFile(path, []byte("Work\n"), 0o600))
	assert.Equal(t, "work", ReadLastChoice(path, accounts))

	// Stale ids fall back too.
	require.NoError(t, os.WriteFile(path, []byte("gone\n"), 0o600))
	assert.Equal(t, "personal", ReadLastChoice(path, accounts))
}

func TestSaveLastChoice(t *testing.T) {
	path := filepath.Join(t.TempDir(), ChoiceFileName)
	SaveLastChoice(path, "work")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "work\n", string(raw))

	// Unwritable paths are silently ignored.
	SaveLastChoice(filepath.Join(path, "nope", "deep"), "work")
}
