package app

import (
	"context"

	"github.com/CrestNiraj12/tootline/domain"
)

// TimelineService fetches pages of statuses from a social timeline.
type TimelineService interface {
	// FetchTimeline returns one page of the queried timeline, newest first.
	FetchTimeline(ctx context.Context, q domain.TimelineQuery, paging domain.Paging) ([]domain.Status, error)
}

// ClientProvider resolves the timeline API of a configured account.
// A nil service with a nil error means the account has no usable client.
type ClientProvider interface {
	Timeline(accountKey string) (TimelineService, error)
}
