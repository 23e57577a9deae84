// Package filterdb keeps mute rules in SQLite and evaluates them for the
// timeline loader.
package filterdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const driverName = "sqlite3_tootline"

var registerDriver sync.Once

// RuleKind names a filter table.
type RuleKind string

const (
	RuleUser    RuleKind = "user"
	RuleKeyword RuleKind = "keyword"
	RuleDomain  RuleKind = "domain"
)

// Rule is one mute rule as listed to the user.
type Rule struct {
	Kind  RuleKind `db:"kind"`
	Value string   `db:"value"`
	Regex bool     `db:"is_regex"`
}

// Store implements app.FilterStore on SQLite.
type Store struct {
	db  *sqlx.DB
	log *zap.Logger
}

var regexCache sync.Map // pattern -> *regexp2.Regexp

func compileRegex(pattern string) (*regexp2.Regexp, error) {
	if re, ok := regexCache.Load(pattern); ok {
		return re.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}

func regexHelper(re, s string) (bool, error) {
	compiled, err := compileRegex(re)
	if err != nil {
		return false, err
	}
	return compiled.MatchString(s)
}

// Open opens (creating if needed) the filter database at path and applies
// pending migrations.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("regexp", regexHelper, true)
			},
		})
	})

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating filter db dir: %w", err)
	}
	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening filter db: %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log.Sugar()})
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating filter db: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddUser mutes an account. accountID may be empty when only the acct is
// known.
func (s *Store) AddUser(ctx context.Context, accountID, acct string) error {
	acct = normalizeAcct(acct)
	if acct == "" {
		return errors.New("acct is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO filtered_users (account_id, acct) VALUES (?, ?)
		 ON CONFLICT (acct) DO UPDATE SET account_id = excluded.account_id
		 WHERE excluded.account_id != ''`,
		accountID, acct)
	if err != nil {
		return fmt.Errorf("adding user filter: %w", err)
	}
	return nil
}

// AddKeyword mutes statuses containing pattern. Regex patterns use .NET
// syntax and match case-insensitively.
func (s *Store) AddKeyword(ctx context.Context, pattern string, regex bool) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return errors.New("pattern is required")
	}
	if regex {
		if _, err := compileRegex(pattern); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO filtered_keywords (pattern, is_regex) VALUES (?, ?)`,
		pattern, regex)
	if err != nil {
		return fmt.Errorf("adding keyword filter: %w", err)
	}
	return nil
}

// AddDomain mutes every account on an instance.
func (s *Store) AddDomain(ctx context.Context, domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return errors.New("domain is required")
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO filtered_domains (domain) VALUES (?)`, domain)
	if err != nil {
		return fmt.Errorf("adding domain filter: %w", err)
	}
	return nil
}

// Remove deletes a rule and reports whether it existed.
func (s *Store) Remove(ctx context.Context, kind RuleKind, value string) (bool, error) {
	var query string
	switch kind {
	case RuleUser:
		query, value = `DELETE FROM filtered_users WHERE acct = ?`, normalizeAcct(value)
	case RuleKeyword:
		query, value = `DELETE FROM filtered_keywords WHERE pattern = ?`, strings.TrimSpace(value)
	case RuleDomain:
		query, value = `DELETE FROM filtered_domains WHERE domain = ?`, strings.ToLower(strings.TrimSpace(value))
	default:
		return false, fmt.Errorf("unknown rule kind %q", kind)
	}
	res, err := s.db.ExecContext(ctx, query, value)
	if err != nil {
		return false, fmt.Errorf("removing %s filter: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Rules lists every rule grouped by kind.
func (s *Store) Rules(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	err := s.db.SelectContext(ctx, &rules, `
		SELECT 'user' AS kind, acct AS value, 0 AS is_regex FROM filtered_users
		UNION ALL
		SELECT 'keyword', pattern, is_regex FROM filtered_keywords
		UNION ALL
		SELECT 'domain', domain, 0 FROM filtered_domains
		ORDER BY kind, value`)
	if err != nil {
		return nil, fmt.Errorf("listing filters: %w", err)
	}
	return rules, nil
}

func (s *Store) MatchesUser(ctx context.Context, accountID, acct string) bool {
	return s.exists(ctx, "user",
		`SELECT COUNT(*) FROM filtered_users
		 WHERE (account_id != '' AND account_id = ?) OR acct = ?`,
		accountID, normalizeAcct(acct))
}

func (s *Store) MatchesDomain(ctx context.Context, acct string) bool {
	_, domain, ok := strings.Cut(normalizeAcct(acct), "@")
	if !ok || domain == "" {
		return false
	}
	return s.exists(ctx, "domain", `SELECT COUNT(*) FROM filtered_domains WHERE domain = ?`, domain)
}

func (s *Store) MatchesText(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}
	return s.exists(ctx, "keyword",
		`SELECT COUNT(*) FROM filtered_keywords
		 WHERE (is_regex = 0 AND instr(lower(?), lower(pattern)) > 0)
		    OR (is_regex = 1 AND ? REGEXP pattern)`,
		text, text)
}

func (s *Store) exists(ctx context.Context, kind, query string, args ...any) bool {
	var n int
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		s.log.Warn("evaluating filter", zap.String("kind", kind), zap.Error(err))
		return false
	}
	return n > 0
}

func normalizeAcct(acct string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(acct), "@"))
}

// gooseLogger routes migration output to zap instead of stdout.
type gooseLogger struct {
	*zap.SugaredLogger
}

func (l gooseLogger) Print(v ...interface{})                 { l.Debug(v...) }
func (l gooseLogger) Println(v ...interface{})               { l.Debug(v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.Debugf(format, v...) }
