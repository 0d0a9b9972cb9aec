package types

// HookInput is the PreToolUse payload Claude Code writes to a hook's stdin.
// tool_input is a free-form parameter map; its shape varies by tool, so
// expected fields are read through Field with an empty-string default.
type HookInput struct {
	ToolName  string         `json:"tool_name"`
	ToolInput map[string]any `json:"tool_input"`
}

// Field returns the named tool_input parameter as a string. Absent keys and
// non-string values yield "".
func (in HookInput) Field(key string) string {
	v, ok := in.ToolInput[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// HookOutput is the payload a PreToolUse hook writes to stdout to block a
// tool call. Silence means allow; the framework only reads this on deny.
type HookOutput struct {
	HookSpecificOutput HookSpecificOutput `json:"hookSpecificOutput"`
}

// HookEventPreToolUse tags output as belonging to the PreToolUse event.
const HookEventPreToolUse = "PreToolUse"

type HookSpecificOutput struct {
	HookEventName      string   `json:"hookEventName"`
	PermissionDecision Decision `json:"permissionDecision"`
	Reason             string   `json:"reason"`
}
