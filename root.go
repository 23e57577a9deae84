package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/tootline/app/feed"
	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/app/tab"
	"github.com/CrestNiraj12/tootline/domain"
	"github.com/CrestNiraj12/tootline/infra/cache"
	"github.com/CrestNiraj12/tootline/infra/config"
	"github.com/CrestNiraj12/tootline/infra/filterdb"
	"github.com/CrestNiraj12/tootline/infra/logging"
	"github.com/CrestNiraj12/tootline/infra/mastodon"
	"github.com/CrestNiraj12/tootline/infra/prefs"
	"github.com/CrestNiraj12/tootline/tui"
)

// appEnv is everything a command needs, built once per invocation.
type appEnv struct {
	cfg      config.Config
	log      *zap.Logger
	prefs    *prefs.Store
	filters  *filterdb.Store
	cache    *cache.FileStore
	accounts *mastodon.Accounts
	tabs     []tab.Tab
	feed     *feed.Feed
}

var env *appEnv

var rootCmd = &cobra.Command{
	Use:   "tootline",
	Short: "Tabbed Mastodon timelines in the terminal",
	Long: `tootline shows Mastodon timelines in tabs. Statuses are cached per tab,
ranges that were never fetched are marked as gaps, and local mute rules
hide users, domains and keywords.

Tokens are read from $TOOTLINE_AUTH_DIR/<account>.token.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsEnv(cmd) {
			return nil
		}
		// A failed RunE skips the post-run hook.
		closeEnv()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// The TUI owns the terminal; one-shot commands log to stderr.
		logPath := ""
		if cmd == cmd.Root() {
			logPath = cfg.LogPath()
		}
		log, err := logging.New(logPath, cfg.Debug)
		if err != nil {
			return err
		}
		e, err := newAppEnv(cfg, log)
		if err != nil {
			_ = log.Sync()
			return err
		}
		env = e
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		closeEnv()
		return nil
	},
	RunE: runTUI,
}

// needsEnv reports whether cmd touches config, storage or the network.
// Help, version and shell completion, including completion's per-shell
// subcommands, do not.
func needsEnv(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func newAppEnv(cfg config.Config, log *zap.Logger) (*appEnv, error) {
	e := &appEnv{cfg: cfg, log: log, cache: cache.NewFileStore(cfg.CacheDir)}

	var err error
	if e.prefs, err = prefs.Open(cfg.PrefsPath()); err != nil {
		return nil, err
	}
	if e.filters, err = filterdb.Open(cfg.FilterDBPath(), log); err != nil {
		return nil, fmt.Errorf("failed to open filter database: %w", err)
	}

	accounts := make([]mastodon.Account, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		accounts = append(accounts, mastodon.Account{Key: a.Key, InstanceURL: a.Instance, TokenPath: a.TokenPath})
	}
	e.accounts = mastodon.NewAccounts(accounts)

	if e.tabs, err = buildTabs(cfg.Tabs); err != nil {
		_ = e.filters.Close()
		return nil, err
	}
	e.feed, err = feed.New(loader.Deps{
		Clients: e.accounts,
		Filters: e.filters,
		Prefs:   e.prefs,
		Cache:   e.cache,
		Logger:  log,
	}, e.tabs)
	if err != nil {
		_ = e.filters.Close()
		return nil, err
	}
	return e, nil
}

func closeEnv() {
	if env != nil {
		env.close()
		env = nil
	}
}

func (e *appEnv) close() {
	if err := e.filters.Close(); err != nil {
		e.log.Warn("closing filter database", zap.Error(err))
	}
	_ = e.log.Sync()
}

// defaultAccount is the account used by commands that take --account.
func (e *appEnv) defaultAccount() string {
	return e.cfg.Accounts[0].Key
}

// buildTabs turns configured tabs into tabs with positions and checked
// extras.
func buildTabs(in []config.Tab) ([]tab.Tab, error) {
	out := make([]tab.Tab, 0, len(in))
	for i, ct := range in {
		t, _, err := tab.New(ct.Name, domain.TimelineKind(ct.Kind), ct.Account, i, ct.Args)
		if err != nil {
			return nil, fmt.Errorf("config: tab %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	state, err := config.LoadUIState(env.cfg.UIStatePath())
	if err != nil {
		env.log.Warn("loading ui state", zap.Error(err))
	}
	app := tui.NewApp(tui.Deps{
		Loader:      env.feed,
		Tabs:        env.tabs,
		SelectedTab: state.SelectedTab,
		StatePath:   env.cfg.UIStatePath(),
		Logger:      env.log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tootline: %w", err)
	}
	return nil
}
