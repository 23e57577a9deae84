package tab

import (
	"fmt"
	"sort"

	"github.com/CrestNiraj12/tootline/domain"
)

const accountTab = FlagHasAccount | FlagAccountRequired

var builtin = map[domain.TimelineKind]Configuration{}

func register(c base) {
	builtin[c.kind] = c
}

func init() {
	register(base{kind: domain.KindHome, name: "Home", icon: "⌂", flags: accountTab})
	register(base{kind: domain.KindLocal, name: "Local", icon: "◎", flags: accountTab})
	register(base{kind: domain.KindPublic, name: "Federated", icon: "◍", flags: accountTab, noGaps: true})
	register(base{
		kind:   domain.KindHashtag,
		name:   "Hashtag",
		icon:   "#",
		flags:  accountTab,
		extras: []ExtraConfiguration{{Key: ExtraHashtag, Title: "hashtag"}},
	})
	register(base{
		kind:   domain.KindList,
		name:   "List timeline",
		icon:   "☰",
		flags:  accountTab,
		extras: []ExtraConfiguration{{Key: ExtraList, Title: "user list"}},
	})
	register(base{
		kind:   domain.KindUser,
		name:   "User timeline",
		icon:   "@",
		flags:  accountTab,
		extras: []ExtraConfiguration{{Key: ExtraUser, Title: "user"}},
	})
}

// Lookup returns the configuration of a tab kind.
func Lookup(kind domain.TimelineKind) (Configuration, error) {
	c, ok := builtin[kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %q", domain.ErrUnknownTab, kind)
	}
	return c, nil
}

// Kinds lists the registered tab kinds, sorted.
func Kinds() []domain.TimelineKind {
	kinds := make([]domain.TimelineKind, 0, len(builtin))
	for k := range builtin {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New builds a tab of kind and applies every extra from args. Unknown
// extras are ignored; a rejected value is an error.
func New(name string, kind domain.TimelineKind, account string, position int, args map[string]string) (Tab, Configuration, error) {
	conf, err := Lookup(kind)
	if err != nil {
		return Tab{}, nil, err
	}
	if name == "" {
		name = conf.Name()
	}
	t := Tab{Name: name, Kind: kind, Account: account, Position: position}
	if conf.AccountFlags()&FlagAccountRequired != 0 && account == "" {
		return Tab{}, nil, fmt.Errorf("tab %q requires an account", name)
	}
	for _, e := range conf.ExtraConfigurations() {
		v, ok := args[e.Key]
		if !ok {
			continue
		}
		if !conf.ApplyExtra(&t, e.Key, v) {
			return Tab{}, nil, fmt.Errorf("tab %q: invalid %s %q", name, e.Title, v)
		}
	}
	return t, conf, nil
}
