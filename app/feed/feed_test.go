package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/tootline/app"
	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/app/tab"
	"github.com/CrestNiraj12/tootline/domain"
)

func shown(ids ...int64) []domain.Status {
	out := make([]domain.Status, len(ids))
	for i, id := range ids {
		out[i] = domain.Status{ID: id}
	}
	return out
}

var homeTab = tab.Tab{Name: "Home", Kind: domain.KindHome, Account: "main", Position: 0}

func TestOptions_Requests(t *testing.T) {
	cur := shown(30, 29, 10, 9)

	o := Options(homeTab, RequestInitial, cur, 0)
	assert.Nil(t, o.Data)
	assert.Equal(t, []string{"home", "main"}, o.CacheKey)

	o = Options(homeTab, RequestNewer, cur, 0)
	assert.Equal(t, int64(30), o.SinceID)
	assert.Zero(t, o.MaxID)

	o = Options(homeTab, RequestOlder, cur, 0)
	assert.Equal(t, int64(9), o.MaxID)
	assert.Zero(t, o.SinceID)

	o = Options(homeTab, RequestGap, cur, 29)
	assert.Equal(t, int64(29), o.MaxID)
	assert.Equal(t, int64(10), o.SinceID)

	o = Options(homeTab, RequestGap, cur, 9)
	assert.Equal(t, int64(9), o.MaxID)
	assert.Zero(t, o.SinceID)
}

func TestOptions_NewerOnEmptyTabIsNotFirstLoad(t *testing.T) {
	o := Options(homeTab, RequestNewer, nil, 0)
	assert.NotNil(t, o.Data)
	assert.True(t, o.FromUser)
}

type pageAPI struct{ page []domain.Status }

func (p pageAPI) FetchTimeline(context.Context, domain.TimelineQuery, domain.Paging) ([]domain.Status, error) {
	return p.page, nil
}

type oneClient struct{ api app.TimelineService }

func (c oneClient) Timeline(string) (app.TimelineService, error) { return c.api, nil }

func TestFeed_LoadAndFind(t *testing.T) {
	listTab := tab.Tab{Name: "Friends", Kind: domain.KindList, Account: "main", Position: 1, Args: tab.Arguments{ListID: "3"}}
	f, err := New(loader.Deps{Clients: oneClient{api: pageAPI{page: shown(5, 4)}}}, []tab.Tab{homeTab, listTab})
	require.NoError(t, err)
	require.Len(t, f.Entries(), 2)

	i, err := f.Find("Friends")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	_, err = f.Find("Nope")
	assert.ErrorIs(t, err, domain.ErrUnknownTab)

	snap := f.Load(context.Background(), i, RequestInitial, nil, 0)
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "main", snap.At(0).AccountKey)
}

func TestNew_RejectsIncompleteTab(t *testing.T) {
	_, err := New(loader.Deps{}, []tab.Tab{{Name: "Broken", Kind: domain.KindList, Account: "main"}})
	assert.Error(t, err)
}
