// Package timeline is the view of a single tab: a scrolling list of
// statuses with refresh, load-older and gap-fill actions.
package timeline

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/tootline/app/feed"
	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/app/tab"
	"github.com/CrestNiraj12/tootline/tui/common"
)

// Loader runs loads for tabs by index. *feed.Feed implements it.
type Loader interface {
	Load(ctx context.Context, i int, req feed.Request, current *loader.Snapshot, gapID int64) *loader.Snapshot
}

// --- Messages ---

// LoadedMsg is sent when a load for tab Tab finishes. A nil Snapshot means
// the tab's account has no usable credentials.
type LoadedMsg struct {
	Tab      int
	Request  feed.Request
	Snapshot *loader.Snapshot
}

// --- Model ---

// Model holds the state of one tab.
type Model struct {
	loader  Loader
	index   int
	tab     tab.Tab
	snap    *loader.Snapshot
	cursor  int
	start   int
	started bool
	loading bool
	pending feed.Request
	err     string
	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
	now     func() time.Time
}

// New creates the model for the tab at index i.
func New(l Loader, i int, t tab.Tab) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#6364FF"))

	return Model{
		loader:  l,
		index:   i,
		tab:     t,
		keys:    common.DefaultKeyMap(),
		spinner: s,
		now:     time.Now,
	}
}

// Start marks the tab as opened and returns its first load. Later calls
// return nil.
func (m Model) Start() (Model, tea.Cmd) {
	if m.started {
		return m, nil
	}
	return m.load(feed.RequestInitial, 0)
}

// Tab returns the tab shown by this model.
func (m Model) Tab() tab.Tab { return m.tab }

// Snapshot returns the statuses currently shown.
func (m Model) Snapshot() *loader.Snapshot { return m.snap }

// Cursor returns the index of the selected status.
func (m Model) Cursor() int { return m.cursor }

// Loading reports whether a load is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the message of the last failed load, if any.
func (m Model) Err() string { return m.err }

func (m Model) load(req feed.Request, gapID int64) (Model, tea.Cmd) {
	m.started = true
	m.loading = true
	m.pending = req
	m.err = ""

	l, i, current := m.loader, m.index, m.snap
	fetch := func() tea.Msg {
		snap := l.Load(context.Background(), i, req, current, gapID)
		return LoadedMsg{Tab: i, Request: req, Snapshot: snap}
	}
	return m, tea.Batch(fetch, m.spinner.Tick)
}
