package timeline

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tootline/app/feed"
)

// Update handles messages for this tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		if msg.Tab != m.index {
			return m, nil
		}
		return m.applyLoaded(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) applyLoaded(msg LoadedMsg) Model {
	m.loading = false
	if msg.Snapshot == nil {
		m.err = fmt.Sprintf("No usable credentials for account %q.", m.tab.Account)
		return m
	}

	var selected int64
	if m.cursor < m.snap.Len() {
		selected = m.snap.At(m.cursor).ID
	}
	m.snap = msg.Snapshot

	switch msg.Request {
	case feed.RequestInitial:
		m.cursor, m.start = 0, 0
	default:
		// Keep the selection on the same status when it survived the merge.
		m.cursor = min(m.cursor, max(m.snap.Len()-1, 0))
		for i := range m.snap.Len() {
			if m.snap.At(i).ID == selected {
				m.cursor = i
				break
			}
		}
	}
	m.ensureVisible()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := m.snap.Len()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
			m.ensureVisible()
			return m, nil
		}
		// Scrolling past the end pages in older statuses.
		if n > 0 && !m.loading {
			return m.load(feed.RequestOlder, 0)
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor, m.start = 0, 0
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		return m.load(feed.RequestNewer, 0)

	case key.Matches(msg, m.keys.LoadMore):
		if m.loading {
			return m, nil
		}
		return m.load(feed.RequestOlder, 0)

	case key.Matches(msg, m.keys.FillGap):
		if m.loading || m.cursor >= n {
			return m, nil
		}
		st := m.snap.At(m.cursor)
		switch {
		case m.gapAt(m.cursor):
			return m.load(feed.RequestGap, st.ID)
		case st.IsGap:
			// Nothing is known below the last status, so there is no range
			// to fill; page further back instead.
			return m.load(feed.RequestOlder, 0)
		}
		return m, nil
	}
	return m, nil
}

// gapAt reports whether a gap marker belongs below status i. A gap needs a
// known status on both sides, so the last status never shows one.
func (m Model) gapAt(i int) bool {
	return i < m.snap.Len()-1 && m.snap.At(i).IsGap
}

// visibleCount estimates how many statuses fit on screen.
func (m Model) visibleCount() int {
	const itemLines = 7
	avail := m.height - 6 // tab bar, header and status bar
	if avail <= 0 {
		return 1
	}
	return max(avail/itemLines, 1)
}

func (m *Model) ensureVisible() {
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if v := m.visibleCount(); m.cursor >= m.start+v {
		m.start = m.cursor - v + 1
	}
	if m.start < 0 {
		m.start = 0
	}
}
