package app

import (
	"context"

	"github.com/CrestNiraj12/tootline/domain"
)

// ListService manages the authenticated user's lists.
type ListService interface {
	// Lists returns the user's lists.
	Lists(ctx context.Context) ([]domain.List, error)

	// AddMembers resolves each acct and adds the accounts to the list.
	AddMembers(ctx context.Context, listID string, accts []string) error
}
