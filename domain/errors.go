package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoCredentials indicates no token is stored for the account.
	ErrNoCredentials = errors.New("no credentials for account")

	// ErrUnknownAccount indicates the account key is not configured.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrUnknownTab indicates a tab name or kind that is not configured.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrEmptyMembers indicates an add-members request without accounts.
	ErrEmptyMembers = errors.New("no accounts to add")
)

// APIError is returned for non-2xx responses from the remote API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
