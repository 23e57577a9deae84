package app

import "context"

// FilterStore answers mute rules. Lookup failures report "not filtered".
type FilterStore interface {
	// MatchesUser reports whether the author is muted.
	MatchesUser(ctx context.Context, accountID, acct string) bool

	// MatchesDomain reports whether the author's instance is muted.
	MatchesDomain(ctx context.Context, acct string) bool

	// MatchesText reports whether any keyword rule matches text.
	MatchesText(ctx context.Context, text string) bool
}
