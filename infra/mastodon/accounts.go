package mastodon

import (
	"errors"
	"fmt"
	"sync"

	"github.com/CrestNiraj12/tootline/app"
	"github.com/CrestNiraj12/tootline/domain"
	"github.com/CrestNiraj12/tootline/infra/auth"
)

// Account is a configured login on one instance.
type Account struct {
	Key         string
	InstanceURL string
	TokenPath   string
}

// Accounts builds one Client per configured account on first use.
// It implements app.ClientProvider.
type Accounts struct {
	mu       sync.Mutex
	accounts map[string]Account
	clients  map[string]*Client
}

// NewAccounts indexes accounts by key.
func NewAccounts(accounts []Account) *Accounts {
	a := &Accounts{
		accounts: make(map[string]Account, len(accounts)),
		clients:  make(map[string]*Client, len(accounts)),
	}
	for _, acc := range accounts {
		a.accounts[acc.Key] = acc
	}
	return a
}

// Client returns the API client of an account. It fails with
// domain.ErrNoCredentials when no token is stored yet.
func (a *Accounts) Client(key string) (*Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	acc, ok := a.accounts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAccount, key)
	}
	if c, ok := a.clients[key]; ok {
		return c, nil
	}
	tp := auth.NewFileTokenProvider(acc.TokenPath)
	if _, err := tp.AccessToken(); err != nil {
		return nil, err
	}
	c := NewClient(acc.InstanceURL, tp)
	a.clients[key] = c
	return c, nil
}

// Timeline returns the timeline API of an account, or nil without error
// when the account has no credentials.
func (a *Accounts) Timeline(key string) (app.TimelineService, error) {
	c, err := a.Client(key)
	if errors.Is(err, domain.ErrNoCredentials) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return NewTimelineService(c), nil
}

// Lists returns the list API of an account.
func (a *Accounts) Lists(key string) (app.ListService, error) {
	c, err := a.Client(key)
	if err != nil {
		return nil, err
	}
	return NewListService(c), nil
}
