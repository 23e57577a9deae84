package tab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/domain"
)

func TestListTab_RequiresList(t *testing.T) {
	conf, err := Lookup(domain.KindList)
	require.NoError(t, err)
	assert.Equal(t, "List timeline", conf.Name())
	assert.Equal(t, FlagHasAccount|FlagAccountRequired, conf.AccountFlags())
	require.Len(t, conf.ExtraConfigurations(), 1)

	tb := Tab{Name: "Friends", Kind: domain.KindList, Account: "main"}
	assert.False(t, conf.ApplyExtra(&tb, ExtraList, "  "))
	assert.False(t, conf.ApplyExtra(&tb, ExtraHashtag, "go"), "list tabs ignore hashtag extras")

	_, err = conf.Source(tb)
	assert.Error(t, err)

	require.True(t, conf.ApplyExtra(&tb, ExtraList, "42"))
	src, err := conf.Source(tb)
	require.NoError(t, err)
	ts, ok := src.(loader.TimelineSource)
	require.True(t, ok)
	assert.Equal(t, domain.TimelineQuery{Kind: domain.KindList, ListID: "42"}, ts.Query)
	assert.True(t, ts.GapEnabled())
}

func TestNew_AppliesArgs(t *testing.T) {
	tb, conf, err := New("", domain.KindHashtag, "main", 2, map[string]string{"hashtag": "#GoLang", "list": "9"})
	require.NoError(t, err)
	assert.Equal(t, "Hashtag", tb.Name)
	assert.Equal(t, "GoLang", tb.Args.Hashtag)
	assert.Empty(t, tb.Args.ListID)
	assert.Equal(t, []string{"hashtag", "main", "golang"}, tb.CacheKey())
	assert.Equal(t, "#", conf.Icon())
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New("x", "bogus", "main", 0, nil)
	assert.True(t, errors.Is(err, domain.ErrUnknownTab))

	_, _, err = New("x", domain.KindHome, "", 0, nil)
	assert.Error(t, err)

	_, _, err = New("x", domain.KindUser, "main", 0, map[string]string{"user": ""})
	assert.Error(t, err)
}

func TestPublicTab_DisablesGaps(t *testing.T) {
	tb, conf, err := New("", domain.KindPublic, "main", 0, nil)
	require.NoError(t, err)
	src, err := conf.Source(tb)
	require.NoError(t, err)
	assert.False(t, src.GapEnabled())
	assert.Equal(t, []string{"public", "main"}, tb.CacheKey())
}

func TestKinds_Sorted(t *testing.T) {
	assert.Equal(t, []domain.TimelineKind{
		domain.KindHashtag, domain.KindHome, domain.KindList,
		domain.KindLocal, domain.KindPublic, domain.KindUser,
	}, Kinds())
}
