package domain

// TimelineKind identifies a family of timelines.
type TimelineKind string

const (
	KindHome    TimelineKind = "home"
	KindLocal   TimelineKind = "local"
	KindPublic  TimelineKind = "public"
	KindHashtag TimelineKind = "hashtag"
	KindList    TimelineKind = "list"
	KindUser    TimelineKind = "user"
)

// TimelineQuery selects one concrete timeline.
type TimelineQuery struct {
	Kind      TimelineKind
	Hashtag   string // KindHashtag, without '#'
	ListID    string // KindList
	AccountID string // KindUser
}

// List is a user-curated list of accounts.
type List struct {
	ID    string
	Title string
}
