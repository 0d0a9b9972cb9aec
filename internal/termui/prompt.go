package termui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads line-oriented answers for the setup wizard and account
// editor. Prompts go to Out (stderr); answers come from In.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prompts for a value with an optional default. An empty answer returns
// the default; end of input with no pending text is an error.
func (p *Prompter) Ask(prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// AskYN asks a yes/no question. Anything not starting a "y"/"yes" answer is
// no; empty keeps the default.
func (p *Prompter) AskYN(prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", prompt, hint)

	line, err := p.in.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	if err != nil && line == "" {
		return false, fmt.Errorf("reading input: %w", err)
	}
	if line == "" {
		return def, nil
	}
	return line == "y" || line == "yes", nil
}
