package types

import "time"

// GuardEvent is one audit record emitted when the guard denies a tool call.
type GuardEvent struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Decision  Decision  `json:"decision,omitempty"`

	Account    string `json:"account,omitempty"`
	ConfigDir  string `json:"config_dir,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`
	MatchedDir string `json:"matched_dir,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// EventTypeGuardDeny is the Type of events written for denied tool calls.
const EventTypeGuardDeny = "guard.deny"
