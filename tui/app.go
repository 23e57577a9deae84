// Package tui is the tabbed terminal timeline viewer.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/tootline/app/tab"
	"github.com/CrestNiraj12/tootline/infra/config"
	"github.com/CrestNiraj12/tootline/tui/common"
	"github.com/CrestNiraj12/tootline/tui/timeline"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Loader      timeline.Loader
	Tabs        []tab.Tab
	SelectedTab string // name of the tab to open first
	StatePath   string // UI state file; empty disables saving
	Logger      *zap.Logger
}

// App is the root Bubble Tea model. It owns the tab bar and routes
// messages to the tab models.
type App struct {
	deps   Deps
	tabs   []timeline.Model
	active int
	keys   common.KeyMap
	status string
	init   tea.Cmd
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	a := App{deps: deps, keys: common.DefaultKeyMap()}
	for i, t := range deps.Tabs {
		a.tabs = append(a.tabs, timeline.New(deps.Loader, i, t))
		if t.Name == deps.SelectedTab {
			a.active = i
		}
	}
	if len(a.tabs) > 0 {
		a.tabs[a.active], a.init = a.tabs[a.active].Start()
	}
	return a
}

// Init opens the selected tab. Other tabs load when first shown.
func (a App) Init() tea.Cmd {
	return a.init
}

// Update handles global keys and routes everything else.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(a.tabs) == 0 {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextTab):
			return a.selectTab((a.active + 1) % len(a.tabs))
		case key.Matches(msg, a.keys.PrevTab):
			return a.selectTab((a.active - 1 + len(a.tabs)) % len(a.tabs))
		}
		if n, ok := tabNumber(msg); ok && n < len(a.tabs) {
			return a.selectTab(n)
		}
		a.status = ""
		var cmd tea.Cmd
		a.tabs[a.active], cmd = a.tabs[a.active].Update(msg)
		return a, cmd

	case tea.WindowSizeMsg:
		// Every tab needs the size, not only the visible one.
		for i := range a.tabs {
			a.tabs[i], _ = a.tabs[i].Update(msg)
		}
		return a, nil

	case timeline.LoadedMsg:
		if msg.Tab < 0 || msg.Tab >= len(a.tabs) {
			return a, nil
		}
		var cmd tea.Cmd
		a.tabs[msg.Tab], cmd = a.tabs[msg.Tab].Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for i := range a.tabs {
			var cmd tea.Cmd
			a.tabs[i], cmd = a.tabs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}
	return a, nil
}

func (a App) selectTab(i int) (tea.Model, tea.Cmd) {
	a.active = i
	a.saveState()
	var cmd tea.Cmd
	a.tabs[i], cmd = a.tabs[i].Start()
	return a, cmd
}

func (a *App) saveState() {
	if a.deps.StatePath == "" {
		return
	}
	st := config.UIState{SelectedTab: a.tabs[a.active].Tab().Name}
	if err := config.SaveUIState(a.deps.StatePath, st); err != nil {
		a.deps.Logger.Warn("saving ui state", zap.Error(err))
		a.status = "Could not save selected tab."
	}
}

// ActiveTab returns the index of the visible tab.
func (a App) ActiveTab() int { return a.active }

// View renders the tab bar, the active tab and the status bar.
func (a App) View() string {
	if len(a.tabs) == 0 {
		return common.ErrorStyle.Render("No tabs configured.") + "\n"
	}

	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("tootline"))
	b.WriteString(a.tabBar())
	b.WriteString("\n\n")
	b.WriteString(a.tabs[a.active].View())

	help := a.status
	if help == "" {
		var parts []string
		for _, k := range a.keys.ShortHelp() {
			h := k.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		help = strings.Join(parts, " • ")
	}
	b.WriteString(common.StatusBarStyle.Render(help))
	return b.String()
}

func (a App) tabBar() string {
	var parts []string
	for i, m := range a.tabs {
		t := m.Tab()
		label := t.Name
		if conf, err := tab.Lookup(t.Kind); err == nil && conf.Icon() != "" {
			label = conf.Icon() + " " + label
		}
		style := common.TabInactiveStyle
		if i == a.active {
			style = common.TabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

// tabNumber maps the keys 1-9 to tab indexes.
func tabNumber(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
