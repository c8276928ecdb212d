// Package render turns controller views into text or HTML.
package render

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// EscapeHTML escapes s so it is displayed as literal text inside HTML.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// EscapeTerminal makes control characters visible so user text cannot
// move the cursor, change colors or ring the bell. "\x1b[31m" is shown as
// the literal characters `\x1b[31m`. Newlines and tabs become spaces.
func EscapeTerminal(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteByte(' ')
		case r < 0x80 && unicode.IsControl(r):
			fmt.Fprintf(&b, `\x%02x`, r)
		case unicode.IsControl(r):
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fit truncates s to width terminal cells, marking the cut with "…".
// A width of zero or less disables truncation.
func Fit(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// Pad right-pads s with spaces to width terminal cells.
func Pad(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
