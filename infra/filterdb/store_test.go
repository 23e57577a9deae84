package filterdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/CrestNiraj12/tootline/app"
)

var _ app.FilterStore = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "filters.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_UserRules(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.AddUser(ctx, "", "@Loud@Example.Social"))
	assert.True(t, s.MatchesUser(ctx, "", "loud@example.social"))
	assert.True(t, s.MatchesUser(ctx, "999", "LOUD@example.social"))
	assert.False(t, s.MatchesUser(ctx, "999", "quiet@example.social"))

	// A later mute with the ID matches renamed accounts too.
	require.NoError(t, s.AddUser(ctx, "123", "loud@example.social"))
	assert.True(t, s.MatchesUser(ctx, "123", "renamed@example.social"))

	assert.Error(t, s.AddUser(ctx, "1", "  "))
}

func TestStore_KeywordRules(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.AddKeyword(ctx, "Spoiler", false))
	require.NoError(t, s.AddKeyword(ctx, `\bcrypto(currency)?\b`, true))

	assert.True(t, s.MatchesText(ctx, "big SPOILER ahead"))
	assert.True(t, s.MatchesText(ctx, "talking Crypto again"))
	assert.False(t, s.MatchesText(ctx, "cryptography is fine"))
	assert.False(t, s.MatchesText(ctx, ""))

	assert.Error(t, s.AddKeyword(ctx, "(unclosed", true))
	assert.Error(t, s.AddKeyword(ctx, " ", false))
}

func TestStore_DomainRules(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.AddDomain(ctx, "Spam.Example"))
	require.NoError(t, s.AddDomain(ctx, "spam.example"))
	assert.True(t, s.MatchesDomain(ctx, "anyone@spam.example"))
	assert.False(t, s.MatchesDomain(ctx, "anyone@ok.example"))
	assert.False(t, s.MatchesDomain(ctx, "localuser"))
}

func TestStore_RulesAndRemove(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.AddUser(ctx, "", "a@x.social"))
	require.NoError(t, s.AddKeyword(ctx, "^ad:", true))
	require.NoError(t, s.AddDomain(ctx, "x.social"))

	rules, err := s.Rules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Rule{
		{Kind: RuleDomain, Value: "x.social"},
		{Kind: RuleKeyword, Value: "^ad:", Regex: true},
		{Kind: RuleUser, Value: "a@x.social"},
	}, rules)

	removed, err := s.Remove(ctx, RuleKeyword, "^ad:")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Remove(ctx, RuleKeyword, "^ad:")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.Remove(ctx, RuleKind("bogus"), "x")
	assert.Error(t, err)
}

func TestStore_ReopenKeepsRules(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "filters.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.AddDomain(ctx, "gone.example"))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.MatchesDomain(ctx, "u@gone.example"))
}
