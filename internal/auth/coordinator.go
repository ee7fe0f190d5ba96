package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/logger"
)

// renewalTimeout bounds the renewal call itself. The outcome is shared
// by every queued caller, so it must not inherit any single caller's
// deadline.
const renewalTimeout = 30 * time.Second

// RefreshFunc exchanges a refresh token for a new credential pair. A
// returned pair without a refresh token means the backend chose not to
// reissue one; the coordinator reuses the prior refresh token then.
type RefreshFunc func(ctx context.Context, refreshToken string) (*credentials.Pair, error)

// Coordinator serializes credential renewal. However many requests fail
// with 401 at once, at most one renewal call is in flight; every other
// caller queues behind it and observes its single outcome. Without this
// gate, N expiring requests would race N renewal calls against a
// single-use refresh token and all but the winner would log the user
// out.
type Coordinator struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan error

	store      credentials.Store
	refresh    RefreshFunc
	terminator *Terminator
}

// NewCoordinator creates a coordinator. Each coordinator owns its own
// gate and queue; clients sharing a session must share one instance.
func NewCoordinator(store credentials.Store, refresh RefreshFunc, terminator *Terminator) *Coordinator {
	return &Coordinator{
		store:      store,
		refresh:    refresh,
		terminator: terminator,
	}
}

// Await returns once a renewal attempt has settled: nil when the store
// now holds a fresh pair, ErrSessionExpired when the session is over.
// The first caller in performs the renewal; later callers queue and are
// notified in arrival order. The store is updated strictly before
// anyone is released, so a replay can never pick up the stale token.
func (c *Coordinator) Await(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.renew(ctx)

	c.mu.Lock()
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

// renew performs one renewal attempt. Any failure terminates the
// session exactly once; the error fans out to every queued caller.
func (c *Coordinator) renew(ctx context.Context) error {
	renewCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), renewalTimeout)
	defer cancel()

	pair, err := c.store.Get(renewCtx)
	if err != nil {
		if !errors.Is(err, credentials.ErrNotFound) {
			logger.Get().Error().Err(err).Msg("Failed to read credentials for renewal")
		}
		c.terminator.Terminate(renewCtx)
		return fmt.Errorf("%w: no renewal credential", ErrSessionExpired)
	}

	newPair, err := c.refresh(renewCtx, pair.RefreshToken)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("Token renewal rejected, terminating session")
		c.terminator.Terminate(renewCtx)
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	if newPair.RefreshToken == "" {
		newPair.RefreshToken = pair.RefreshToken
	}

	if err := c.store.Set(renewCtx, newPair); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to store renewed credentials")
		c.terminator.Terminate(renewCtx)
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	logger.Get().Debug().Msg("Token renewed")
	return nil
}
