package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/tootline/domain"
)

// listService implements app.ListService using the Mastodon API.
type listService struct {
	client *Client
}

// NewListService creates a ListService backed by Mastodon.
func NewListService(client *Client) *listService {
	return &listService{client: client}
}

func (s *listService) Lists(ctx context.Context) ([]domain.List, error) {
	data, err := s.client.Get(ctx, "/api/v1/lists", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching lists: %w", err)
	}
	var lists []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parsing lists: %w", err)
	}
	out := make([]domain.List, 0, len(lists))
	for _, l := range lists {
		out = append(out, domain.List{ID: l.ID, Title: sanitizeForTerminal(l.Title)})
	}
	return out, nil
}

// AddMembers resolves every acct before adding anything, so a typo does
// not leave the list half-updated.
func (s *listService) AddMembers(ctx context.Context, listID string, accts []string) error {
	if len(accts) == 0 {
		return domain.ErrEmptyMembers
	}
	ids := make([]string, 0, len(accts))
	seen := make(map[string]struct{}, len(accts))
	for _, acct := range accts {
		id, err := s.lookupAccountID(ctx, acct)
		if err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	form := url.Values{}
	for _, id := range ids {
		form.Add("account_ids[]", id)
	}
	path := fmt.Sprintf("/api/v1/lists/%s/accounts", url.PathEscape(listID))
	if _, err := s.client.Post(ctx, path, form); err != nil {
		return fmt.Errorf("adding list members: %w", err)
	}
	return nil
}

func (s *listService) lookupAccountID(ctx context.Context, acct string) (string, error) {
	acct = strings.TrimPrefix(strings.TrimSpace(acct), "@")
	if acct == "" {
		return "", fmt.Errorf("empty account name")
	}
	data, err := s.client.Get(ctx, "/api/v1/accounts/lookup", url.Values{"acct": {acct}})
	if err != nil {
		return "", fmt.Errorf("looking up %s: %w", acct, err)
	}
	var account mastodonAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return "", fmt.Errorf("parsing account %s: %w", acct, err)
	}
	if account.ID == "" {
		return "", fmt.Errorf("account %s has no id", acct)
	}
	return account.ID, nil
}
