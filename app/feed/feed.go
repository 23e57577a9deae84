// Package feed turns user actions on a tab into loader runs.
package feed

import (
	"context"
	"fmt"

	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/app/tab"
	"github.com/CrestNiraj12/tootline/domain"
)

// Request is the kind of load the user asked for.
type Request int

const (
	// RequestInitial opens a tab, preferring the cache.
	RequestInitial Request = iota
	// RequestNewer fetches statuses newer than the newest shown.
	RequestNewer
	// RequestOlder fetches statuses older than the oldest shown.
	RequestOlder
	// RequestGap fills the gap below a gap marker.
	RequestGap
)

func (r Request) String() string {
	switch r {
	case RequestInitial:
		return "initial"
	case RequestNewer:
		return "newer"
	case RequestOlder:
		return "older"
	case RequestGap:
		return "gap"
	default:
		return fmt.Sprintf("Request(%d)", int(r))
	}
}

// Entry is a tab with its resolved loader source.
type Entry struct {
	Tab    tab.Tab
	Source loader.Source
}

// Feed holds the configured tabs and the loader collaborators.
type Feed struct {
	deps    loader.Deps
	entries []Entry
}

// New resolves a source for every tab.
func New(deps loader.Deps, tabs []tab.Tab) (*Feed, error) {
	f := &Feed{deps: deps}
	for _, t := range tabs {
		conf, err := tab.Lookup(t.Kind)
		if err != nil {
			return nil, err
		}
		src, err := conf.Source(t)
		if err != nil {
			return nil, err
		}
		f.entries = append(f.entries, Entry{Tab: t, Source: src})
	}
	return f, nil
}

// Entries returns the tabs in display order.
func (f *Feed) Entries() []Entry {
	return f.entries
}

// Find returns the index of the tab with name.
func (f *Feed) Find(name string) (int, error) {
	for i, e := range f.entries {
		if e.Tab.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", domain.ErrUnknownTab, name)
}

// Load runs one loader cycle for tab i. gapID names the gap marker for
// RequestGap and is ignored otherwise.
func (f *Feed) Load(ctx context.Context, i int, req Request, current *loader.Snapshot, gapID int64) *loader.Snapshot {
	e := f.entries[i]
	opts := Options(e.Tab, req, current.Statuses(), gapID)
	return loader.New(f.deps, e.Source, opts).Load(ctx)
}

// Options maps a request on the shown statuses to loader options. The
// statuses are expected newest first.
func Options(t tab.Tab, req Request, shown []domain.Status, gapID int64) loader.Options {
	opts := loader.Options{
		AccountKey:  t.Account,
		Data:        shown,
		CacheKey:    t.CacheKey(),
		TabPosition: t.Position,
		FromUser:    true,
	}
	switch req {
	case RequestInitial:
		opts.Data = nil
	case RequestNewer:
		if len(shown) > 0 {
			opts.SinceID = shown[0].ID
		}
		if opts.Data == nil {
			opts.Data = []domain.Status{}
		}
	case RequestOlder:
		if len(shown) > 0 {
			opts.MaxID = shown[len(shown)-1].ID
		}
	case RequestGap:
		for i, st := range shown {
			if st.ID != gapID {
				continue
			}
			opts.MaxID = st.ID
			if i+1 < len(shown) {
				opts.SinceID = shown[i+1].ID
			}
			break
		}
	}
	return opts
}
