// Command claunch launches Claude Code as one of several configured
// accounts, doubling as the PreToolUse guard hook those accounts install.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/claunch/claunch/internal/cli"
)

// Set at build time via -ldflags (release builds pass git-describe output).
var version = "dev"
var commit = "unknown"

func versionString() string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	c := strings.TrimSpace(commit)
	switch {
	case c == "" || strings.EqualFold(c, "unknown"):
		return v
	case strings.Contains(v, c):
		// git-describe versions already embed the commit.
		return v
	default:
		return v + "+" + c
	}
}

func main() {
	err := cli.NewRoot(versionString()).ExecuteContext(context.Background())
	if err == nil {
		return
	}

	// The launched claude binary's exit status comes back as an ExitError;
	// pass it through so wrappers see the child's real code.
	var ee *cli.ExitError
	if errors.As(err, &ee) {
		if msg := ee.Message(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(ee.Code())
	}
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
