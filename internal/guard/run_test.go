package guard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claunch/claunch/pkg/types"
)

type captureRecorder struct {
	inputs  []types.HookInput
	denials []Denial
}

func (r *captureRecorder) RecordDeny(in types.HookInput, d Denial) {
	r.inputs = append(r.inputs, in)
	r.denials = append(r.denials, d)
}

func TestRun_DenyWritesHookOutput(t *testing.T) {
	cfg := configFor("/home/alice/.claude-work")
	stdin := strings.NewReader(`{"tool_name":"Bash","tool_input":{"command":"cat /home/alice/.claude-work/settings.json"}}`)
	var stdout bytes.Buffer
	rec := &captureRecorder{}

	require.NoError(t, Run(cfg, stdin, &stdout, rec))

	var out types.HookOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, types.HookEventPreToolUse, out.HookSpecificOutput.HookEventName)
	assert.Equal(t, types.DecisionDeny, out.HookSpecificOutput.PermissionDecision)
	assert.Contains(t, out.HookSpecificOutput.Reason, "/home/alice/.claude-work")
	assert.Contains(t, out.HookSpecificOutput.Reason, "'personal'")

	require.Len(t, rec.denials, 1)
	assert.Equal(t, "/home/alice/.claude-work", rec.denials[0].MatchedDir)
	require.Len(t, rec.inputs, 1)
	assert.Equal(t, "Bash", rec.inputs[0].ToolName)
}

func TestRun_AllowIsSilent(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		stdin string
	}{
		{
			name:  "no match",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: `{"tool_name":"Bash","tool_input":{"command":"ls /tmp"}}`,
		},
		{
			name:  "disabled guard skips reading entirely",
			cfg:   configFor(),
			stdin: `{"tool_name":"Bash","tool_input":{"command":"cat /home/alice/.claude-work/x"}}`,
		},
		{
			name:  "malformed json",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: `{"tool_name": not json`,
		},
		{
			name:  "empty input",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: "",
		},
		{
			name:  "wrong top-level type",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: `["tool_name"]`,
		},
		{
			// The stream as a whole is the payload; a valid object followed
			// by trailing content is malformed, not a decodable prefix.
			name:  "trailing garbage after matching payload",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: `{"tool_name":"Bash","tool_input":{"command":"cat /home/alice/.claude-work/x"}} trailing`,
		},
		{
			name:  "concatenated json objects",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: `{"tool_name":"Bash","tool_input":{"command":"cat /home/alice/.claude-work/x"}}{"tool_name":"Bash"}`,
		},
		{
			name:  "unknown tool",
			cfg:   configFor("/home/alice/.claude-work"),
			stdin: `{"tool_name":"WebSearch","tool_input":{"query":"/home/alice/.claude-work"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			rec := &captureRecorder{}
			require.NoError(t, Run(tt.cfg, strings.NewReader(tt.stdin), &stdout, rec))
			assert.Zero(t, stdout.Len(), "allow must produce no output")
			assert.Empty(t, rec.denials)
		})
	}
}

func TestRun_TrailingWhitespaceStillDenies(t *testing.T) {
	// Pipes usually newline-terminate the payload; only non-whitespace
	// trailing content makes the stream malformed.
	cfg := configFor("/home/alice/.claude-work")
	stdin := strings.NewReader("\n  {\"tool_name\":\"Read\",\"tool_input\":{\"file_path\":\"/home/alice/.claude-work/x\"}}\n\n")
	var stdout bytes.Buffer

	require.NoError(t, Run(cfg, stdin, &stdout, nil))
	assert.Contains(t, stdout.String(), `"permissionDecision":"deny"`)
}

func TestRun_NilRecorder(t *testing.T) {
	cfg := configFor("/home/alice/.claude-work")
	stdin := strings.NewReader(`{"tool_name":"Read","tool_input":{"file_path":"/home/alice/.claude-work/x"}}`)
	var stdout bytes.Buffer
	require.NoError(t, Run(cfg, stdin, &stdout, nil))
	assert.Contains(t, stdout.String(), `"permissionDecision":"deny"`)
}

func FuzzRun(f *testing.F) {
	f.Add(`{"tool_name":"Bash","tool_input":{"command":"cat /home/a/.claude-b/x"}}`)
	f.Add(`{"tool_name":"Read","tool_input":{"file_path":123}}`)
	f.Add(`{"tool_name":null,"tool_input":null}`)
	f.Add(`not json at all`)
	f.Add(`{"tool_name":"Bash","tool_input":{"command":"cat /home/a/.claude-b/x"}} trailing`)
	f.Add(``)
	f.Add(`{"tool_name":"Grep","tool_input":{"path":"C:\\Users\\a\\.claude-b"}}`)

	cfg := configFor("/home/a/.claude-b", `C:\Users\a\.claude-b`)
	f.Fuzz(func(t *testing.T, payload string) {
		var stdout bytes.Buffer
		// Arbitrary input must never panic or produce a non-JSON deny.
		if err := Run(cfg, strings.NewReader(payload), &stdout, nil); err != nil {
			t.Fatalf("Run returned error for stdin %q: %v", payload, err)
		}
		if stdout.Len() > 0 {
			var out types.HookOutput
			if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
				t.Fatalf("deny output is not valid JSON: %v", err)
			}
			if out.HookSpecificOutput.PermissionDecision != types.DecisionDeny {
				t.Fatalf("unexpected decision %q", out.HookSpecificOutput.PermissionDecision)
			}
		}
	})
}
