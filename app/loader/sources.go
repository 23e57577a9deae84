package loader

import (
	"context"

	"github.com/CrestNiraj12/tootline/app"
	"github.com/CrestNiraj12/tootline/domain"
)

// Source supplies the fetch call and the mute policy of one timeline.
type Source interface {
	// Statuses fetches one page from api.
	Statuses(ctx context.Context, api app.TimelineService, paging domain.Paging) ([]domain.Status, error)

	// ShouldFilter reports whether st is hidden from this timeline.
	ShouldFilter(ctx context.Context, filters app.FilterStore, st domain.Status) bool

	// GapEnabled reports whether this timeline tracks unfetched ranges.
	GapEnabled() bool
}

// TimelineSource is a Source for any Mastodon timeline query.
type TimelineSource struct {
	Query  domain.TimelineQuery
	NoGaps bool
}

// NewTimelineSource returns a gap-tracking source for q.
func NewTimelineSource(q domain.TimelineQuery) TimelineSource {
	return TimelineSource{Query: q}
}

func (s TimelineSource) Statuses(ctx context.Context, api app.TimelineService, paging domain.Paging) ([]domain.Status, error) {
	return api.FetchTimeline(ctx, s.Query, paging)
}

// ShouldFilter applies keyword rules everywhere. User and domain rules are
// skipped on a user's own timeline, which was opened on purpose.
func (s TimelineSource) ShouldFilter(ctx context.Context, filters app.FilterStore, st domain.Status) bool {
	if filters == nil {
		return false
	}
	if filters.MatchesText(ctx, st.Content) {
		return true
	}
	if s.Query.Kind == domain.KindUser {
		return false
	}
	if filters.MatchesUser(ctx, st.AuthorID, st.Acct) || filters.MatchesDomain(ctx, st.Acct) {
		return true
	}
	return st.RebloggedBy != "" && filters.MatchesUser(ctx, "", st.RebloggedBy)
}

func (s TimelineSource) GapEnabled() bool {
	return !s.NoGaps
}
