package guard

import (
	"encoding/json"
	"io"

	"github.com/claunch/claunch/pkg/types"
)

// Recorder receives deny decisions for best-effort audit logging.
type Recorder interface {
	RecordDeny(in types.HookInput, d Denial)
}

// Run performs one hook invocation: decode a PreToolUse payload from stdin,
// evaluate it, and on deny write the blocking payload to stdout. rec may be
// nil.
//
// The returned error only reports a failed deny write; callers still exit
// zero either way, because the decision channel is the output payload, not
// the exit status.
func Run(cfg Config, stdin io.Reader, stdout io.Writer, rec Recorder) error {
	if !cfg.Enabled() {
		return nil
	}

	// The payload is the entire stream, not its leading JSON value; trailing
	// content makes the whole stream malformed. Malformed input allows the
	// call rather than crashing the framework's tool pipeline.
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil
	}
	var in types.HookInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil
	}

	d := cfg.Evaluate(in)
	if d == nil {
		return nil
	}

	if rec != nil {
		rec.RecordDeny(in, *d)
	}

	out := types.HookOutput{
		HookSpecificOutput: types.HookSpecificOutput{
			HookEventName:      types.HookEventPreToolUse,
			PermissionDecision: types.DecisionDeny,
			Reason:             d.Reason,
		},
	}
	return json.NewEncoder(stdout).Encode(out)
}
