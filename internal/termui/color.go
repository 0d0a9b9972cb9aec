// Package termui renders the account picker: ANSI colors, the Windows
// Terminal tab-color escape, single-key raw-mode menus, and line prompts.
package termui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Basic SGR sequences.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"
)

// TabColorReset restores the default Windows Terminal tab color
// (OSC 104;264).
const TabColorReset = "\x1b]104;264\x07"

// HexToRGB parses "#RRGGBB" or "RRGGBB".
func HexToRGB(color string) (r, g, b uint8, err error) {
	color = strings.TrimPrefix(color, "#")
	if len(color) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", color)
	}
	var parts [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(color[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid hex color: %s", color)
		}
		parts[i] = uint8(v)
	}
	return parts[0], parts[1], parts[2], nil
}

// ANSI256 maps an RGB color to the nearest xterm-256 index: the grayscale
// ramp (232-255) for pure grays, the 6x6x6 cube (16-231) otherwise.
func ANSI256(r, g, b uint8) int {
	if r == g && g == b {
		switch {
		case r < 8:
			return 16
		case r > 248:
			return 231
		default:
			return int(math.Round(float64(r-8)/247*24)) + 232
		}
	}
	ri := int(math.Round(float64(r) / 255 * 5))
	gi := int(math.Round(float64(g) / 255 * 5))
	bi := int(math.Round(float64(b) / 255 * 5))
	return 16 + 36*ri + 6*gi + bi
}

// Foreground returns the SGR sequence selecting an xterm-256 foreground.
func Foreground(index int) string {
	return fmt.Sprintf("\033[38;5;%dm", index)
}

// ColorSequence resolves a hex color to its foreground escape, or "" when
// the color is malformed (the menu then renders uncolored).
func ColorSequence(hex string) string {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return ""
	}
	return Foreground(ANSI256(r, g, b))
}

// TabColor returns the OSC 4;264 sequence that colors the Windows Terminal
// tab. Terminals that don't understand it ignore it.
func TabColor(r, g, b uint8) string {
	return fmt.Sprintf("\x1b]4;264;rgb:%02x/%02x/%02x\x07", r, g, b)
}
