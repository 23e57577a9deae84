package mastodon

import (
	"strings"
	"testing"
)

func TestStripHTML_MentionsAndHashtags(t *testing.T) {
	in := `<p>Hi <span class="h-card"><a href="https://mastodon.social/@bob" class="u-url mention">@<span>bob</span></a></span>` +
		` see <a href="https://mastodon.social/tags/golang" class="mention hashtag" rel="tag">#<span>golang</span></a></p>` +
		`<p>second &amp; last</p>`
	want := "Hi @bob see #golang\nsecond & last"
	if got := stripHTML(in); got != want {
		t.Fatalf("stripHTML() = %q, want %q", got, want)
	}
}

func TestStripHTML_DropsScriptsKeepsBreaks(t *testing.T) {
	in := `<p>line one<br>line two</p><style>p{color:red}</style><script>alert(1)</script>`
	if got := stripHTML(in); got != "line one\nline two" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestSanitizeForTerminal_DisplayNameEscapes(t *testing.T) {
	got := sanitizeForTerminal("\x1b]0;pwned\x07Alice\x1b[2J")
	if strings.ContainsAny(got, "\x1b\x07") {
		t.Fatalf("expected escape sequences removed: %q", got)
	}
	if !strings.Contains(got, "Alice") {
		t.Fatalf("expected name preserved: %q", got)
	}
	if got := sanitizeForTerminal("bob\x01\x7f"); got != "bob" {
		t.Fatalf("expected controls removed: %q", got)
	}
}

func TestSanitizeForTerminal_KeepsNewlines(t *testing.T) {
	if got := sanitizeForTerminal("a\nb\tc"); got != "a\nb\tc" {
		t.Fatalf("newlines and tabs must survive: %q", got)
	}
}
