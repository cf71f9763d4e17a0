// Package console is the terminal front end: it reads commands from a line
// stream and renders exploration events, the clue report, and the verdict.
package console

import (
	"fmt"
	"strings"
)

// ANSI escape codes used by the renderer.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Palette applies ANSI styling when enabled. When disabled it strips any
// escapes already in the text, so case-file content cannot color a pipe.
type Palette struct {
	Enabled bool
}

// Colorize wraps text with color and a reset suffix.
//
// Postcondition: Returns text without ANSI sequences when the palette is disabled.
func (p Palette) Colorize(color, text string) string {
	if !p.Enabled {
		return StripANSI(text)
	}
	return color + text + Reset
}

// Colorf formats its arguments and colorizes the result.
func (p Palette) Colorf(color, format string, args ...any) string {
	return p.Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			if end := strings.IndexByte(s[i+2:], 'm'); end >= 0 {
				i += end + 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
