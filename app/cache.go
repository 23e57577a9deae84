package app

import "github.com/CrestNiraj12/tootline/domain"

// StatusCache persists timeline snapshots keyed by loader arguments.
type StatusCache interface {
	// Load returns the cached statuses. A missing entry is an error
	// wrapping fs.ErrNotExist.
	Load(key []string) ([]domain.Status, error)

	// Save replaces the cached statuses for key.
	Save(key []string, statuses []domain.Status) error
}
