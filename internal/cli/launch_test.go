package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchUnknownAccount(t *testing.T) {
	seedConfig(t, twoAccounts(t))

	_, _, err := runCLI(t, "", "launch", "--account", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no account "ghost"`)
}

func TestLaunchMissingBinary(t *testing.T) {
	cfg := twoAccounts(t)
	cfg.ClaudeExe = filepath.Join(t.TempDir(), "no-such-claude")
	seedConfig(t, cfg)

	_, _, err := runCLI(t, "", "launch", "--account", "personal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launching")
}
