package timeline

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/tootline/app/feed"
	"github.com/CrestNiraj12/tootline/domain"
	"github.com/CrestNiraj12/tootline/tui/common"
)

const (
	contentLines = 4
	gapLabel     = "┄┄ missing statuses, press enter to load ┄┄"
)

// View renders the tab.
func (m Model) View() string {
	var b strings.Builder

	if m.loading {
		fmt.Fprintf(&b, "%s %s\n\n", m.spinner.View(), loadingLabel(m.pending))
	}
	if m.err != "" {
		b.WriteString(common.ErrorStyle.Render(m.err))
		b.WriteString("\n")
		b.WriteString("Press r to retry.\n\n")
	}

	n := m.snap.Len()
	if n == 0 {
		if !m.loading && m.err == "" {
			b.WriteString("No statuses yet. Press r to refresh.\n")
		}
		return b.String()
	}

	end := min(m.start+m.visibleCount(), n)
	for i := m.start; i < end; i++ {
		st := m.snap.At(i)
		b.WriteString(m.renderStatus(st, i == m.cursor))
		b.WriteString("\n")
		if m.gapAt(i) {
			b.WriteString(common.GapStyle.Render(gapLabel))
			b.WriteString("\n")
		}
	}
	if end < n {
		fmt.Fprintf(&b, "  … %d more\n", n-end)
	}
	return b.String()
}

func (m Model) renderStatus(st domain.Status, selected bool) string {
	width := m.width - 4
	if width < 20 {
		width = 76
	}

	var b strings.Builder
	if st.RebloggedBy != "" {
		b.WriteString(common.BoostStyle.Render("♺ boosted by @" + st.RebloggedBy))
		b.WriteString("\n")
	}
	b.WriteString(common.AuthorStyle.Render(st.Author))
	b.WriteString(" ")
	b.WriteString(common.AcctStyle.Render("@" + st.Acct))
	if ts := common.RelativeTime(st.CreatedAt, m.now()); ts != "" {
		b.WriteString(" ")
		b.WriteString(common.TimestampStyle.Render("· " + ts))
	}
	b.WriteString("\n")
	b.WriteString(common.ContentStyle.Render(common.ClampLines(st.Content, width-4, contentLines)))

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(b.String())
}

func loadingLabel(req feed.Request) string {
	switch req {
	case feed.RequestNewer:
		return "Fetching newer statuses..."
	case feed.RequestOlder:
		return "Fetching older statuses..."
	case feed.RequestGap:
		return "Filling gap..."
	default:
		return "Loading timeline..."
	}
}
