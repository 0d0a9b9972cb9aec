package types

// Decision is a guard verdict as it appears on the wire.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)
