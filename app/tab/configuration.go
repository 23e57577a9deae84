// Package tab binds timeline kinds to the tab bar: a display name, an
// icon, the account requirements, and the extra settings a tab of that
// kind needs before it can build its loader source.
package tab

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/tootline/app/loader"
	"github.com/CrestNiraj12/tootline/domain"
)

// AccountFlags describe how a tab kind relates to accounts.
type AccountFlags int

const (
	FlagHasAccount AccountFlags = 1 << iota
	FlagAccountRequired
)

// Extra keys understood by ApplyExtra.
const (
	ExtraHashtag = "hashtag"
	ExtraList    = "list"
	ExtraUser    = "user"
)

// Tab is a configured timeline tab.
type Tab struct {
	Name     string
	Kind     domain.TimelineKind
	Account  string
	Position int
	Args     Arguments
}

// Arguments are the kind-specific settings of a tab.
type Arguments struct {
	Hashtag   string
	ListID    string
	AccountID string
}

// CacheKey names the status cache entry of the tab.
func (t Tab) CacheKey() []string {
	key := []string{string(t.Kind), t.Account}
	switch {
	case t.Args.Hashtag != "":
		key = append(key, strings.ToLower(t.Args.Hashtag))
	case t.Args.ListID != "":
		key = append(key, t.Args.ListID)
	case t.Args.AccountID != "":
		key = append(key, t.Args.AccountID)
	}
	return key
}

// ExtraConfiguration is a setting a tab kind asks for.
type ExtraConfiguration struct {
	Key   string
	Title string
}

// Configuration describes one tab kind.
type Configuration interface {
	Name() string
	Icon() string
	AccountFlags() AccountFlags
	ExtraConfigurations() []ExtraConfiguration

	// ApplyExtra stores an extra setting on tab. It returns false when the
	// value is unusable.
	ApplyExtra(tab *Tab, key, value string) bool

	// Source builds the loader source for a fully configured tab.
	Source(tab Tab) (loader.Source, error)
}

// base is shared by the built-in configurations.
type base struct {
	kind   domain.TimelineKind
	name   string
	icon   string
	flags  AccountFlags
	extras []ExtraConfiguration
	noGaps bool
}

func (b base) Name() string                              { return b.name }
func (b base) Icon() string                              { return b.icon }
func (b base) AccountFlags() AccountFlags                { return b.flags }
func (b base) ExtraConfigurations() []ExtraConfiguration { return b.extras }

func (b base) ApplyExtra(tab *Tab, key, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, e := range b.extras {
		if e.Key != key {
			continue
		}
		switch key {
		case ExtraHashtag:
			tab.Args.Hashtag = strings.TrimPrefix(value, "#")
		case ExtraList:
			tab.Args.ListID = value
		case ExtraUser:
			tab.Args.AccountID = value
		}
		return true
	}
	return false
}

func (b base) Source(tab Tab) (loader.Source, error) {
	q := domain.TimelineQuery{
		Kind:      b.kind,
		Hashtag:   tab.Args.Hashtag,
		ListID:    tab.Args.ListID,
		AccountID: tab.Args.AccountID,
	}
	if err := b.validate(q); err != nil {
		return nil, fmt.Errorf("tab %q: %w", tab.Name, err)
	}
	src := loader.NewTimelineSource(q)
	src.NoGaps = b.noGaps
	return src, nil
}

func (b base) validate(q domain.TimelineQuery) error {
	for _, e := range b.extras {
		var v string
		switch e.Key {
		case ExtraHashtag:
			v = q.Hashtag
		case ExtraList:
			v = q.ListID
		case ExtraUser:
			v = q.AccountID
		}
		if v == "" {
			return fmt.Errorf("missing %s", e.Title)
		}
	}
	return nil
}
