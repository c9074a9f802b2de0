package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/plated/internal/logging"
)

// Guard answers "does the stored token still look usable?". The answer is
// recomputed on every call from the store and the clock, so it can turn
// false without any local change.
type Guard struct {
	store TokenStore
	now   func() time.Time
	log   logging.Logger
}

func NewGuard(store TokenStore, log logging.Logger) *Guard {
	return &Guard{store: store, now: time.Now, log: log}
}

// WithClock replaces the wall clock, for tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// IsAuthenticated is true iff a token is stored, decodes, and its expiry
// is strictly after the current second. Any failure reads as false.
func (g *Guard) IsAuthenticated(ctx context.Context) bool {
	token, err := g.store.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			g.log.Warn(ctx, "session token unreadable", "err", err)
		}
		return false
	}

	claims, err := Decode(token)
	if err != nil {
		g.log.Debug(ctx, "session token rejected", "err", err)
		return false
	}

	exp, ok := claims.ExpiresAtUnix()
	if !ok {
		return false
	}
	return exp > g.now().Unix()
}
