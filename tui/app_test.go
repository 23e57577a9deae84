package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tootline/app/feed"
	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/app/tab"
	"github.com/CrestNiraj12/tootline/domain"
	"github.com/CrestNiraj12/tootline/infra/config"
	"github.com/CrestNiraj12/tootline/tui/timeline"
)

type countingLoader struct {
	tabs []int
}

func (c *countingLoader) Load(_ context.Context, i int, _ feed.Request, _ *loader.Snapshot, _ int64) *loader.Snapshot {
	c.tabs = append(c.tabs, i)
	return loader.NewSnapshot([]domain.Status{{ID: int64(i + 1), Author: "A", Acct: "a@example.com"}})
}

func testTabs() []tab.Tab {
	return []tab.Tab{
		{Name: "Home", Kind: domain.KindHome, Account: "main", Position: 0},
		{Name: "Local", Kind: domain.KindLocal, Account: "main", Position: 1},
	}
}

func TestNewApp_OpensSelectedTab(t *testing.T) {
	a := NewApp(Deps{Loader: &countingLoader{}, Tabs: testTabs(), SelectedTab: "Local"})
	if a.ActiveTab() != 1 {
		t.Fatalf("expected Local to be active, got %d", a.ActiveTab())
	}
	if a.Init() == nil {
		t.Fatalf("expected the selected tab to load on start")
	}
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if model.(App).ActiveTab() != 1 || cmd != nil {
		t.Fatalf("reselecting a started tab should not load again")
	}
}

func TestApp_NextTabStartsLoadAndSavesState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "ui.json")
	cl := &countingLoader{}
	a := NewApp(Deps{Loader: cl, Tabs: testTabs(), StatePath: statePath})

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.ActiveTab() != 1 {
		t.Fatalf("expected tab 1, got %d", a.ActiveTab())
	}
	if cmd == nil {
		t.Fatalf("expected first load of the new tab")
	}
	st, err := config.LoadUIState(statePath)
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st.SelectedTab != "Local" {
		t.Fatalf("expected saved tab Local, got %q", st.SelectedTab)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.(App).ActiveTab() != 0 {
		t.Fatalf("expected wrap back to tab 0")
	}
}

func TestApp_NumberKeySelectsTab(t *testing.T) {
	a := NewApp(Deps{Loader: &countingLoader{}, Tabs: testTabs()})
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if model.(App).ActiveTab() != 1 {
		t.Fatalf("expected key 2 to open the second tab")
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if model.(App).ActiveTab() != 0 {
		t.Fatalf("out of range tab number should be ignored")
	}
}

func TestApp_RoutesLoadedMsgByTab(t *testing.T) {
	a := NewApp(Deps{Loader: &countingLoader{}, Tabs: testTabs()})
	snap := loader.NewSnapshot([]domain.Status{{ID: 7, Author: "Bob", Acct: "bob@example.com", Content: "routed"}})
	model, _ := a.Update(timeline.LoadedMsg{Tab: 1, Snapshot: snap})
	a = model.(App)
	if strings.Contains(a.View(), "routed") {
		t.Fatalf("background tab content should not be visible")
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(model.(App).View(), "routed") {
		t.Fatalf("expected loaded content on tab 1")
	}
}

func TestApp_QuitAndEmpty(t *testing.T) {
	a := NewApp(Deps{})
	if !strings.Contains(a.View(), "No tabs configured.") {
		t.Fatalf("expected empty view")
	}
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("expected quit command")
	}
}
