package mastodon

import (
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
	scriptRe    = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

// stripHTML removes HTML tags and decodes entities.
// Good enough for terminal display; not a security boundary.
func stripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	// Replace paragraph ends and breaks with newlines
	s = lineBreakRe.ReplaceAllString(s, "\n")
	// Strip all remaining tags
	s = htmlTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return sanitizeForTerminal(strings.TrimSpace(s))
}

// sanitizeForTerminal drops escape sequences and control characters so
// remote text cannot drive the terminal.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			return -1
		default:
			return r
		}
	}, s)
}
