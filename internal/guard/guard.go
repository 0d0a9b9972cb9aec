// Package guard implements the cross-account access guard: a PreToolUse
// hook decision over one tool call, against the set of other accounts'
// configuration directories.
//
// The guard fails open on every abnormal condition (no configuration,
// malformed input, unknown tool). A broken guard must degrade to not
// interfering with the user's work, never to blocking it.
package guard

import (
	"regexp"
	"strings"
)

// ForbiddenDir is one configured directory belonging to another account,
// pre-normalized into the spellings the matcher checks.
type ForbiddenDir struct {
	// Raw is the directory exactly as configured, any separator style.
	Raw string

	// Normalized is forward-slash, lowercase, no trailing slash.
	Normalized string

	// PosixAlias is the MSYS2-style mount spelling for drive-letter paths
	// ("c:/users/x" -> "/c/users/x"), or "" for non-drive paths.
	PosixAlias string
}

var drivePattern = regexp.MustCompile(`^([a-z]):/(.*)$`)

// Normalize rewrites a path to forward slashes, lowercases it, and strips
// trailing slashes.
func Normalize(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	path = strings.ToLower(path)
	return strings.TrimRight(path, "/")
}

// PosixAlias converts an already-normalized drive-letter path to its MSYS2
// mount form. Returns "" when the path is not drive-letter rooted.
func PosixAlias(normalized string) string {
	m := drivePattern.FindStringSubmatch(normalized)
	if m == nil {
		return ""
	}
	return "/" + m[1] + "/" + m[2]
}

// NewForbiddenDir derives all matchable spellings of one configured path.
func NewForbiddenDir(raw string) ForbiddenDir {
	normalized := Normalize(raw)
	return ForbiddenDir{
		Raw:        raw,
		Normalized: normalized,
		PosixAlias: PosixAlias(normalized),
	}
}
