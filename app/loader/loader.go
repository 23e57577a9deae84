// Package loader merges pages of remote statuses into a locally cached
// timeline.
//
// A StatusesLoader runs one load cycle: it fetches a page bounded by
// since/max IDs, replaces statuses it already knows, marks a gap when the
// page did not reach the previously newest status, drops filtered
// statuses, sorts, and writes a capped snapshot to the status cache.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/tootline/app"
	"github.com/CrestNiraj12/tootline/domain"
)

// Deps holds the collaborators shared by every load.
type Deps struct {
	Clients app.ClientProvider
	Filters app.FilterStore // optional
	Prefs   app.Preferences // optional, defaults apply
	Cache   app.StatusCache // optional
	Logger  *zap.Logger     // optional
}

// Options are the per-load arguments.
type Options struct {
	AccountKey string
	SinceID    int64
	MaxID      int64

	// Data is the collection currently shown. A nil Data marks the first
	// load of a timeline, which may be answered from the cache.
	Data []domain.Status

	// CacheKey names the cache entry. Empty disables caching.
	CacheKey []string

	// TabPosition is the index of the owning tab, or -1 when the timeline
	// is not shown in a tab. Only tabs read the cache on first load.
	TabPosition int

	// FromUser is false for automatic loads, which never hit the network.
	FromUser bool
}

// StatusesLoader runs a single fetch-merge-cache cycle.
type StatusesLoader struct {
	deps       Deps
	source     Source
	opts       Options
	comparator domain.Comparator
}

// New creates a loader for one timeline source.
func New(deps Deps, source Source, opts Options) *StatusesLoader {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &StatusesLoader{deps: deps, source: source, opts: opts}
}

// SetComparator replaces the default newest-first ordering.
func (l *StatusesLoader) SetComparator(c domain.Comparator) {
	l.comparator = c
}

// Load runs the cycle and returns the merged timeline. It returns nil when
// the account has no usable client. Fetch and cache failures are logged
// and never returned: a failed fetch yields the input collection.
func (l *StatusesLoader) Load(ctx context.Context) *Snapshot {
	log := l.deps.Logger.With(
		zap.String("load_id", uuid.NewString()),
		zap.String("account", l.opts.AccountKey),
		zap.String("cache_key", strings.Join(l.opts.CacheKey, ".")),
	)

	firstLoad := l.opts.Data == nil
	data := slices.Clone(l.opts.Data)
	if firstLoad && l.opts.TabPosition >= 0 && l.cacheEnabled() {
		if cached, ok := l.readCache(log); ok {
			data = append(data, cached...)
			l.sort(data)
			return NewSnapshot(data)
		}
	}
	if !l.opts.FromUser {
		return NewSnapshot(data)
	}

	api, err := l.deps.Clients.Timeline(l.opts.AccountKey)
	if err != nil {
		log.Warn("resolving timeline client", zap.Error(err))
		return nil
	}
	if api == nil {
		return nil
	}

	noItemsBefore := len(data) == 0
	paging := domain.Paging{Count: l.pref(app.KeyLoadItemLimit, app.DefaultLoadItemLimit)}
	if l.opts.MaxID > 0 {
		paging.MaxID = l.opts.MaxID
	}
	if l.opts.SinceID > 0 {
		paging.SinceID = l.opts.SinceID - 1
	}

	page, err := l.source.Statuses(ctx, api, paging)
	if err != nil {
		log.Warn("fetching statuses", zap.Error(err))
		return NewSnapshot(data)
	}
	statuses, truncated := truncateStatuses(page, l.opts.SinceID)

	minID, minIdx := minIDIndex(statuses)
	rowsDeleted := 0
	for _, st := range statuses {
		var deleted bool
		if data, deleted = deleteStatus(data, st.ID); deleted {
			rowsDeleted++
		}
	}

	// The previous gap sits at MaxID when this load is filling it. Seeing
	// it again means the range was re-fetched and may still be incomplete.
	deletedOldGap := rowsDeleted > 0 && containsID(statuses, l.opts.MaxID)
	insertGap := minID > 0 && (rowsDeleted == 0 || deletedOldGap) && !truncated &&
		!noItemsBefore && len(statuses) > 1
	for i, st := range statuses {
		st.AccountKey = l.opts.AccountKey
		st.IsGap = insertGap && l.source.GapEnabled() && i == minIdx
		data = append(data, st)
	}

	merged := slices.Clone(data)
	for i, st := range merged {
		if st.IsGap || i == len(merged)-1 {
			continue
		}
		if l.source.ShouldFilter(ctx, l.deps.Filters, st) {
			data, _ = deleteStatus(data, st.ID)
		}
	}

	l.sort(data)
	l.writeCache(log, data)
	log.Debug("statuses loaded",
		zap.Int("fetched", len(page)),
		zap.Int("replaced", rowsDeleted),
		zap.Bool("gap", insertGap),
		zap.Int("total", len(data)),
	)
	return NewSnapshot(data)
}

func (l *StatusesLoader) sort(data []domain.Status) {
	c := l.comparator
	if c == nil {
		c = domain.NewestFirst
	}
	slices.SortStableFunc(data, c)
}

func (l *StatusesLoader) pref(key string, def int) int {
	if l.deps.Prefs == nil {
		return def
	}
	return l.deps.Prefs.Int(key, def)
}

func (l *StatusesLoader) cacheEnabled() bool {
	return l.deps.Cache != nil && len(l.opts.CacheKey) > 0
}

func (l *StatusesLoader) readCache(log *zap.Logger) ([]domain.Status, bool) {
	cached, err := l.deps.Cache.Load(l.opts.CacheKey)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("reading status cache", zap.Error(err))
		}
		return nil, false
	}
	return cached, true
}

func (l *StatusesLoader) writeCache(log *zap.Logger, data []domain.Status) {
	if !l.cacheEnabled() {
		return
	}
	limit := max(l.pref(app.KeyDatabaseItemLimit, app.DefaultDatabaseItemLimit), 0)
	if err := l.deps.Cache.Save(l.opts.CacheKey, data[:min(limit, len(data))]); err != nil {
		log.Warn("writing status cache", zap.Error(err))
	}
}
