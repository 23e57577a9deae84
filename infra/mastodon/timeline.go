package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/CrestNiraj12/tootline/domain"
)

// timelineService implements app.TimelineService using the Mastodon API.
type timelineService struct {
	client *Client
}

// NewTimelineService creates a TimelineService backed by Mastodon.
func NewTimelineService(client *Client) *timelineService {
	return &timelineService{client: client}
}

// mastodonStatus is the subset of Mastodon's Status entity we care about.
type mastodonStatus struct {
	ID          string          `json:"id"`
	Content     string          `json:"content"` // HTML
	CreatedAt   string          `json:"created_at"`
	URL         string          `json:"url"`
	InReplyToID any             `json:"in_reply_to_id"`
	Account     mastodonAccount `json:"account"`
	Reblog      *mastodonStatus `json:"reblog"`
}

type mastodonAccount struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Acct        string `json:"acct"`
}

func timelinePath(q domain.TimelineQuery) (string, url.Values, error) {
	v := url.Values{}
	switch q.Kind {
	case domain.KindHome:
		return "/api/v1/timelines/home", v, nil
	case domain.KindLocal:
		v.Set("local", "true")
		return "/api/v1/timelines/public", v, nil
	case domain.KindPublic:
		return "/api/v1/timelines/public", v, nil
	case domain.KindHashtag:
		if q.Hashtag == "" {
			return "", nil, fmt.Errorf("hashtag timeline without hashtag")
		}
		return "/api/v1/timelines/tag/" + url.PathEscape(q.Hashtag), v, nil
	case domain.KindList:
		if q.ListID == "" {
			return "", nil, fmt.Errorf("list timeline without list id")
		}
		return "/api/v1/timelines/list/" + url.PathEscape(q.ListID), v, nil
	case domain.KindUser:
		if q.AccountID == "" {
			return "", nil, fmt.Errorf("user timeline without account id")
		}
		return "/api/v1/accounts/" + url.PathEscape(q.AccountID) + "/statuses", v, nil
	default:
		return "", nil, fmt.Errorf("unsupported timeline kind %q", q.Kind)
	}
}

func (s *timelineService) FetchTimeline(ctx context.Context, q domain.TimelineQuery, paging domain.Paging) ([]domain.Status, error) {
	path, query, err := timelinePath(q)
	if err != nil {
		return nil, err
	}
	if paging.Count > 0 {
		query.Set("limit", strconv.Itoa(paging.Count))
	}
	// Mastodon's max_id is exclusive; Paging.MaxID is inclusive so that a
	// gap fill re-fetches the gap status itself.
	if paging.MaxID > 0 {
		query.Set("max_id", strconv.FormatInt(paging.MaxID+1, 10))
	}
	if paging.SinceID > 0 {
		query.Set("since_id", strconv.FormatInt(paging.SinceID, 10))
	}

	data, err := s.client.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("fetching %s timeline: %w", q.Kind, err)
	}

	var statuses []mastodonStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, fmt.Errorf("parsing %s timeline: %w", q.Kind, err)
	}
	return mapStatuses(statuses), nil
}

// mapStatuses converts API statuses, skipping any whose ID is not numeric.
// Boosts keep the boost's own ID so paging stays consistent.
func mapStatuses(statuses []mastodonStatus) []domain.Status {
	out := make([]domain.Status, 0, len(statuses))
	for _, st := range statuses {
		id, err := strconv.ParseInt(st.ID, 10, 64)
		if err != nil || id <= 0 {
			continue
		}

		shown, rebloggedBy := st, ""
		if st.Reblog != nil {
			shown = *st.Reblog
			rebloggedBy = sanitizeForTerminal(st.Account.Acct)
		}
		createdAt, _ := time.Parse(time.RFC3339, shown.CreatedAt)

		author := shown.Account.DisplayName
		if author == "" {
			author = shown.Account.Acct
		}

		out = append(out, domain.Status{
			ID:          id,
			AuthorID:    shown.Account.ID,
			Author:      sanitizeForTerminal(author),
			Acct:        sanitizeForTerminal(shown.Account.Acct),
			Content:     stripHTML(shown.Content),
			CreatedAt:   createdAt,
			URL:         shown.URL,
			InReplyToID: inReplyTo(shown.InReplyToID),
			RebloggedBy: rebloggedBy,
		})
	}
	return out
}

func inReplyTo(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}
