package session

import (
	"context"

	"github.com/dmitrijs2005/plated/internal/logging"
)

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(route string)
}

// UnauthorizedPolicy is what happens, globally, whenever the server answers
// 401: the stored token is dropped and the user is sent to the login entry
// point. It runs before the failing call returns to its caller.
type UnauthorizedPolicy struct {
	store      TokenStore
	nav        Navigator
	loginRoute string
	log        logging.Logger
}

func NewUnauthorizedPolicy(store TokenStore, nav Navigator, loginRoute string, log logging.Logger) *UnauthorizedPolicy {
	return &UnauthorizedPolicy{store: store, nav: nav, loginRoute: loginRoute, log: log}
}

func (p *UnauthorizedPolicy) HandleUnauthorized(ctx context.Context) {
	if err := p.store.Clear(ctx); err != nil {
		p.log.Error(ctx, "failed to clear session token", "err", err)
	}
	p.log.Warn(ctx, "session rejected by server, redirecting to login")
	p.nav.Navigate(p.loginRoute)
}
