package domain

import (
	"cmp"
	"time"
)

// Status represents a single post in a timeline.
type Status struct {
	ID          int64
	AccountKey  string // Local account the status was loaded for
	AuthorID    string
	Author      string
	Acct        string // user@domain, or bare user for local accounts
	Content     string // Plain text, HTML stripped
	CreatedAt   time.Time
	URL         string
	InReplyToID string
	RebloggedBy string // Acct of the booster, empty when not a boost

	// IsGap marks the oldest status of a page that did not reach the
	// previously known newest status. Statuses between it and the next
	// older one have not been fetched yet.
	IsGap bool
}

// Comparator orders statuses for display.
type Comparator func(a, b Status) int

// NewestFirst is the default timeline ordering: descending by ID.
func NewestFirst(a, b Status) int {
	return cmp.Compare(b.ID, a.ID)
}
