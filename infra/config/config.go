package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultAccountKey = "main"

// Config holds application-level configuration.
type Config struct {
	InstanceURL string // e.g. "https://mastodon.social"
	AuthDir     string // Token files, one per account
	ConfigPath  string // Optional YAML file with accounts and tabs
	CacheDir    string // Cached timelines
	DataDir     string // Filter database, preferences, UI state
	Debug       bool

	Accounts []Account
	Tabs     []Tab
}

// Account is a login on one instance.
type Account struct {
	Key       string `yaml:"key"`
	Instance  string `yaml:"instance"`
	TokenPath string `yaml:"token_path"`
}

// Tab is one timeline shown in the tab bar. Args carry the extra
// configuration of the tab kind (hashtag, list, user).
type Tab struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	Account string            `yaml:"account"`
	Args    map[string]string `yaml:"args"`
}

// FilterDBPath is the SQLite file holding mute rules.
func (c Config) FilterDBPath() string { return filepath.Join(c.DataDir, "filters.db") }

// PrefsPath is the TOML preferences file.
func (c Config) PrefsPath() string { return filepath.Join(c.DataDir, "prefs.toml") }

// UIStatePath is the JSON file remembering the selected tab.
func (c Config) UIStatePath() string { return filepath.Join(c.DataDir, "ui_state.json") }

// LogPath is where the TUI writes its log.
func (c Config) LogPath() string { return filepath.Join(c.DataDir, "tootline.log") }

// Load reads configuration from environment variables and the optional
// config file.
//
//	TOOTLINE_INSTANCE   — Mastodon instance URL (default: https://mastodon.social)
//	TOOTLINE_AUTH_DIR   — Token directory (default: ~/.config/tootline/auth)
//	TOOTLINE_CONFIG     — YAML config file (default: ~/.config/tootline/config.yaml)
//	TOOTLINE_CACHE_DIR  — Timeline cache (default: ~/.cache/tootline)
//	TOOTLINE_DATA_DIR   — Local state (default: ~/.local/share/tootline)
//	TOOTLINE_DEBUG      — Debug logging when true
func Load() (Config, error) {
	instance, err := normalizeInstance(os.Getenv("TOOTLINE_INSTANCE"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOOTLINE_INSTANCE: %w", err)
	}

	cfg := Config{InstanceURL: instance}
	if cfg.AuthDir, err = dirFromEnv("TOOTLINE_AUTH_DIR", "XDG_CONFIG_HOME", ".config", "auth"); err != nil {
		return Config{}, err
	}
	if cfg.CacheDir, err = dirFromEnv("TOOTLINE_CACHE_DIR", "XDG_CACHE_HOME", ".cache", ""); err != nil {
		return Config{}, err
	}
	if cfg.DataDir, err = dirFromEnv("TOOTLINE_DATA_DIR", "XDG_DATA_HOME", filepath.Join(".local", "share"), ""); err != nil {
		return Config{}, err
	}
	cfg.ConfigPath = os.Getenv("TOOTLINE_CONFIG")
	if cfg.ConfigPath == "" {
		dir, err := dirFromEnv("", "XDG_CONFIG_HOME", ".config", "")
		if err != nil {
			return Config{}, err
		}
		cfg.ConfigPath = filepath.Join(dir, "config.yaml")
	}
	if v := os.Getenv("TOOTLINE_DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}

	file, err := loadFile(cfg.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.apply(file); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// apply merges the config file, synthesizing a default account and a home
// tab when the file does not define them.
func (c *Config) apply(f fileConfig) error {
	c.Accounts = nil
	seen := map[string]bool{}
	for _, a := range f.Accounts {
		if a.Key == "" {
			return errors.New("config: account without key")
		}
		if seen[a.Key] {
			return fmt.Errorf("config: duplicate account %q", a.Key)
		}
		seen[a.Key] = true

		instance, err := normalizeInstance(a.Instance)
		if err != nil {
			return fmt.Errorf("config: account %q: %w", a.Key, err)
		}
		a.Instance = instance
		if a.TokenPath == "" {
			a.TokenPath = filepath.Join(c.AuthDir, a.Key+".token")
		}
		c.Accounts = append(c.Accounts, a)
	}
	if len(c.Accounts) == 0 {
		c.Accounts = []Account{{
			Key:       defaultAccountKey,
			Instance:  c.InstanceURL,
			TokenPath: filepath.Join(c.AuthDir, defaultAccountKey+".token"),
		}}
	}

	c.Tabs = nil
	for i, t := range f.Tabs {
		if t.Kind == "" {
			return fmt.Errorf("config: tab %d has no kind", i)
		}
		if t.Account == "" {
			t.Account = c.Accounts[0].Key
		}
		if !seen[t.Account] && t.Account != c.Accounts[0].Key {
			return fmt.Errorf("config: tab %d uses unknown account %q", i, t.Account)
		}
		c.Tabs = append(c.Tabs, t)
	}
	if len(c.Tabs) == 0 {
		c.Tabs = []Tab{{Name: "Home", Kind: "home", Account: c.Accounts[0].Key}}
	}
	return nil
}

func normalizeInstance(instance string) (string, error) {
	if instance == "" {
		instance = "https://mastodon.social"
	}
	parsed, err := url.Parse(instance)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("only https is allowed")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// dirFromEnv returns $env, else $xdg/tootline/sub, else ~/fallback/tootline/sub.
func dirFromEnv(env, xdg, fallback, sub string) (string, error) {
	if env != "" {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	base := os.Getenv(xdg)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, "tootline", sub), nil
}
