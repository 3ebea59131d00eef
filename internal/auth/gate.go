package auth

import (
	"context"
	"time"

	"github.com/desertthunder/vinyl/internal/store"
	"golang.org/x/sync/singleflight"
)

// Gate returns a currently valid access token, refreshing lazily.
//
// Concurrent callers that observe an expired token share one in-flight
// refresh request and resume with the same new token.
type Gate struct {
	store store.Store
	flow  *Flow
	group singleflight.Group
	now   func() time.Time
}

// NewGate creates a Gate reading cached tokens from st and refreshing
// through flow.
func NewGate(st store.Store, flow *Flow) *Gate {
	return &Gate{store: st, flow: flow, now: time.Now}
}

// Token returns an access token valid at the time of the call.
//
// A stored token past its expiry is never returned; there is no preemptive
// refresh margin before the expiry instant.
func (g *Gate) Token(ctx context.Context) (string, error) {
	token, ok, err := g.store.Get(store.KeyAccessToken)
	if err != nil {
		return "", err
	}

	if ok && token != "" && !g.expired() {
		return token, nil
	}

	return g.refresh(ctx)
}

// ForceRefresh discards the cached token and performs a refresh. Used by the
// API client when the remote rejects a token that looked valid locally.
func (g *Gate) ForceRefresh(ctx context.Context) (string, error) {
	return g.refresh(ctx)
}

// refresh coalesces concurrent refreshes into a single network call.
func (g *Gate) refresh(ctx context.Context) (string, error) {
	v, err, _ := g.group.Do("refresh", func() (any, error) {
		return g.flow.Refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// expired reports whether the stored expiry has passed. A missing or
// unparseable expiry counts as expired.
func (g *Gate) expired() bool {
	ms, ok, err := store.ExpiresAt(g.store)
	if err != nil || !ok {
		return true
	}
	return g.now().UnixMilli() >= ms
}
