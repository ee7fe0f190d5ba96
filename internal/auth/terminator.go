package auth

import (
	"context"
	"sync"

	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/logger"
)

// Terminator ends the session when renewal is impossible: it clears the
// credential store and fires the injected redirect side effect. It is
// the only component besides explicit logout allowed to clear
// credentials.
type Terminator struct {
	store       credentials.Store
	onTerminate func()

	mu         sync.Mutex
	terminated bool
}

// NewTerminator creates a terminator. onTerminate is the navigation
// side effect (redirect to the login surface); nil is allowed for
// environments without one.
func NewTerminator(store credentials.Store, onTerminate func()) *Terminator {
	return &Terminator{store: store, onTerminate: onTerminate}
}

// Terminate clears stored credentials and fires the redirect. Safe to
// call when credentials are already absent; the redirect fires at most
// once per terminator, so queued callers failing together do not stack
// redirects.
func (t *Terminator) Terminate(ctx context.Context) {
	if err := t.store.Clear(ctx); err != nil {
		logger.Get().Warn().Err(err).Msg("Failed to clear credentials on session termination")
	}

	t.mu.Lock()
	alreadyTerminated := t.terminated
	t.terminated = true
	t.mu.Unlock()

	if !alreadyTerminated && t.onTerminate != nil {
		t.onTerminate()
	}
}
