package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/tootline/domain"
	"github.com/CrestNiraj12/tootline/infra/config"
)

func TestResolveVersionInfo(t *testing.T) {
	tests := []struct {
		name     string
		in       [3]string
		module   string
		settings map[string]string
		want     [3]string
	}{
		{
			name:     "ldflags win",
			in:       [3]string{"v1.2.3", "abc", "2024-01-01"},
			module:   "v9.9.9",
			settings: map[string]string{"vcs.revision": "ffff"},
			want:     [3]string{"v1.2.3", "abc", "2024-01-01"},
		},
		{
			name:     "build info fills placeholders",
			in:       [3]string{"dev", "none", "unknown"},
			module:   "v0.4.0",
			settings: map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2024-06-01T10:00:00Z"},
			want:     [3]string{"v0.4.0", "0123456789ab", "2024-06-01T10:00:00Z"},
		},
		{
			name:     "devel module keeps dev",
			in:       [3]string{"dev", "none", "unknown"},
			module:   "(devel)",
			settings: map[string]string{},
			want:     [3]string{"dev", "none", "unknown"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.in[0], tc.in[1], tc.in[2], tc.module, tc.settings)
			if got := [3]string{v, c, d}; got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildSettingsMap(t *testing.T) {
	m := buildSettingsMap([]debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}})
	if m["vcs.revision"] != "abc" {
		t.Fatalf("unexpected map: %v", m)
	}
}

func TestBuildTabs(t *testing.T) {
	tabs, err := buildTabs([]config.Tab{
		{Name: "Home", Kind: "home", Account: "main"},
		{Name: "Go", Kind: "hashtag", Account: "main", Args: map[string]string{"hashtag": "GoLang"}},
	})
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.Equal(t, 1, tabs[1].Position)
	assert.Equal(t, []string{"hashtag", "main", "golang"}, tabs[1].CacheKey())

	_, err = buildTabs([]config.Tab{{Name: "x", Kind: "bogus", Account: "main"}})
	assert.ErrorIs(t, err, domain.ErrUnknownTab)
}

func TestPrintStatuses(t *testing.T) {
	var buf bytes.Buffer
	printStatuses(&buf, []domain.Status{
		{ID: 3, Acct: "alice@example.com", Content: "first line\nsecond line", IsGap: true},
		{ID: 2, Acct: "bob@example.com", RebloggedBy: "carol@example.com", Content: "boosted"},
		{ID: 1, Acct: "dave@example.com", Content: "not printed"},
	}, 2)

	out := buf.String()
	assert.Contains(t, out, "first line …")
	assert.NotContains(t, out, "second line")
	assert.Contains(t, out, "┄ gap ┄")
	assert.Contains(t, out, "@bob@example.com (boosted by @carol@example.com)")
	assert.NotContains(t, out, "not printed")
}

func TestPrintStatuses_NoGapBelowOldest(t *testing.T) {
	var buf bytes.Buffer
	printStatuses(&buf, []domain.Status{
		{ID: 10, Acct: "alice@example.com", Content: "newer"},
		{ID: 8, Acct: "bob@example.com", Content: "oldest", IsGap: true},
	}, 0)
	assert.NotContains(t, buf.String(), "gap")
}

func TestFirstLine_Truncates(t *testing.T) {
	assert.Equal(t, "abcd…", firstLine("abcdefgh", 5))
	assert.Equal(t, "short", firstLine("short", 5))
}

func TestCompletion_SkipsEnv(t *testing.T) {
	dir := setupEnv(t, "")

	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
	_, statErr := os.Stat(filepath.Join(dir, "data", "filters.db"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "completion opened the filter database")

	assert.False(t, needsEnv(versionCmd))
	assert.True(t, needsEnv(prefsSetCmd))
}

// setupEnv points every tootline directory into a temp dir.
func setupEnv(t *testing.T, configYAML string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TOOTLINE_AUTH_DIR", filepath.Join(dir, "auth"))
	t.Setenv("TOOTLINE_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("TOOTLINE_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("TOOTLINE_INSTANCE", "")
	t.Setenv("TOOTLINE_DEBUG", "")
	cfgPath := filepath.Join(dir, "config.yaml")
	if configYAML != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o600))
	}
	t.Setenv("TOOTLINE_CONFIG", cfgPath)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPrefsCommands(t *testing.T) {
	setupEnv(t, "")

	out, err := execute(t, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "load_item_limit")
	assert.Contains(t, out, "20")

	_, err = execute(t, "prefs", "set", "load_item_limit", "40")
	require.NoError(t, err)

	out, err = execute(t, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "40")

	_, err = execute(t, "prefs", "set", "nope", "1")
	assert.Error(t, err)
	_, err = execute(t, "prefs", "set", "load_item_limit", "zero")
	assert.Error(t, err)
}

func TestFiltersCommands(t *testing.T) {
	setupEnv(t, "")

	_, err := execute(t, "filters", "add-user", "@spam@example.com")
	require.NoError(t, err)
	_, err = execute(t, "filters", "add-keyword", "--regex", "crypto|nft")
	require.NoError(t, err)

	out, err := execute(t, "filters", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "spam@example.com")
	assert.Contains(t, out, "/crypto|nft/")

	out, err = execute(t, "filters", "remove", "user", "spam@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")

	_, err = execute(t, "filters", "remove", "bogus", "x")
	assert.Error(t, err)
}

func TestFetch_WithoutTokenReportsMissingCredentials(t *testing.T) {
	setupEnv(t, "")

	_, err := execute(t, "fetch", "Home")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoCredentials), "got %v", err)
	assert.Contains(t, err.Error(), "main.token")

	_, err = execute(t, "fetch", "Nope")
	assert.ErrorIs(t, err, domain.ErrUnknownTab)
}

func TestRefresh_ReportsEveryTab(t *testing.T) {
	setupEnv(t, `
tabs:
  - name: Home
    kind: home
  - name: Go
    kind: hashtag
    args: {hashtag: golang}
`)

	out, err := execute(t, "refresh")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Home: no credentials"))
	assert.True(t, strings.HasPrefix(lines[1], "Go: no credentials"))
}
