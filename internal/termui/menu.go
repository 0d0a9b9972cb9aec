package termui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/claunch/claunch/internal/config"
)

// ChoiceConfigure is returned by Show when the user presses 'c' to open the
// account management menu instead of picking an account.
const ChoiceConfigure = "__configure__"

// ErrCancelled is returned when the user quits the picker (q or ESC).
var ErrCancelled = errors.New("selection cancelled")

// ErrNotTerminal is returned when the picker is run without a controlling
// terminal on stdin.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Menu is the single-key account picker. It renders to Out (conventionally
// stderr, keeping stdout clean for the launched child) and reads raw key
// presses from stdin.
type Menu struct {
	Accounts  []config.Account
	DefaultID string
	Out       io.Writer
}

type termState struct {
	state *term.State
}

// menuDeps isolates the terminal syscalls so tests can script key presses.
type menuDeps struct {
	isTTY    func(fd int) bool
	makeRaw  func(fd int) (*termState, error)
	restore  func(fd int, st *termState) error
	readByte func() (byte, error)
}

func defaultMenuDeps() menuDeps {
	return menuDeps{
		isTTY: term.IsTerminal,
		makeRaw: func(fd int) (*termState, error) {
			st, err := term.MakeRaw(fd)
			if err != nil {
				return nil, err
			}
			return &termState{state: st}, nil
		},
		restore: func(fd int, st *termState) error {
			if st == nil || st.state == nil {
				return nil
			}
			return term.Restore(fd, st.state)
		},
		readByte: func() (byte, error) {
			var buf [1]byte
			if _, err := os.Stdin.Read(buf[:]); err != nil {
				return 0, err
			}
			return buf[0], nil
		},
	}
}

// Show renders the menu and blocks until a key resolves it. It returns the
// chosen account id, ChoiceConfigure, or ErrCancelled.
func (m Menu) Show() (string, error) {
	return m.show(int(os.Stdin.Fd()), defaultMenuDeps())
}

func (m Menu) show(fd int, deps menuDeps) (string, error) {
	if !deps.isTTY(fd) {
		return "", ErrNotTerminal
	}

	labels := make(map[string]string, len(m.Accounts))
	for _, a := range m.Accounts {
		labels[a.ID] = a.Label
	}
	keyMap := buildKeyMap(m.Accounts)
	m.render()

	st, err := deps.makeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("entering raw mode: %w", err)
	}
	defer deps.restore(fd, st)

	for {
		b, err := deps.readByte()
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		c := strings.ToLower(string(b))
		switch {
		case keyMap[c] != "":
			chosen := keyMap[c]
			fmt.Fprintf(m.Out, "%s\r\n", labels[chosen])
			return chosen, nil
		case c == "\r" || c == "\n":
			fmt.Fprintf(m.Out, "%s\r\n", labels[m.DefaultID])
			return m.DefaultID, nil
		case c == "c":
			fmt.Fprint(m.Out, "Configure\r\n")
			return ChoiceConfigure, nil
		case c == "q" || b == 0x1b:
			fmt.Fprint(m.Out, "Cancelled\r\n")
			return "", ErrCancelled
		}
	}
}

// buildKeyMap maps number keys 1-9 and hotkey letters to account ids.
// Number keys take precedence over colliding hotkeys.
func buildKeyMap(accounts []config.Account) map[string]string {
	keyMap := make(map[string]string)
	for i, a := range accounts {
		if i < 9 {
			keyMap[fmt.Sprintf("%d", i+1)] = a.ID
		}
		hk := strings.ToLower(a.Hotkey)
		if hk != "" && keyMap[hk] == "" {
			keyMap[hk] = a.ID
		}
	}
	return keyMap
}

func (m Menu) render() {
	fmt.Fprintf(m.Out, "\n%sClaude Code -- Select Account%s\n", Bold, Reset)

	for i, a := range m.Accounts {
		color := ColorSequence(a.Color)
		marker := ""
		if a.ID == m.DefaultID {
			marker = fmt.Sprintf(" %s(default)%s", Dim, Reset)
		}
		keyHint := fmt.Sprintf("%d", i+1)
		if a.Hotkey != "" {
			keyHint += "/" + a.Hotkey
		}
		fmt.Fprintf(m.Out, "  %s[%s]%s %s%s\n", color, keyHint, Reset, a.Label, marker)
	}

	var numbers, hotkeys []string
	for i, a := range m.Accounts {
		if i < 9 {
			numbers = append(numbers, fmt.Sprintf("%d", i+1))
		}
		if a.Hotkey != "" {
			hotkeys = append(hotkeys, a.Hotkey)
		}
	}
	hint := strings.Join(numbers, "/")
	if len(hotkeys) > 0 {
		hint += " or " + strings.Join(hotkeys, "/")
	}
	fmt.Fprintf(m.Out, "  %s[c]%s Configure accounts...\n", Dim, Reset)
	fmt.Fprintf(m.Out, "\n%sPress %s, Enter=default, c=config, q=quit%s > ", Dim, hint, Reset)
}
