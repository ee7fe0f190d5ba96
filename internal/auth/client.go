package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/httpx"
	"github.com/pagecraft/studio/internal/logger"
)

// Client issues authenticated requests against the backend. Each call
// carries the current access token from the store; on an unauthorized
// response the coordinator renews the token once and the call is
// replayed with the fresh one. Callers never see any of that machinery,
// only the final response or a terminal error.
type Client struct {
	doer        httpx.Doer
	store       credentials.Store
	coordinator *Coordinator
}

// NewClient creates a client around an existing coordinator. Clients
// that share a session must share the coordinator, otherwise each one
// races its own renewal.
func NewClient(doer httpx.Doer, store credentials.Store, coordinator *Coordinator) *Client {
	return &Client{
		doer:        doer,
		store:       store,
		coordinator: coordinator,
	}
}

// NewSessionClient wires a complete client for one session: dispatcher,
// coordinator against the backend's renewal endpoint, and terminator
// with the given redirect side effect.
func NewSessionClient(store credentials.Store, baseURL string, onTerminate func()) *Client {
	doer := httpx.New()
	terminator := NewTerminator(store, onTerminate)
	coordinator := NewCoordinator(store, NewRefreshFunc(doer, baseURL), terminator)
	return NewClient(doer, store, coordinator)
}

// Do sends the descriptor and resolves it through the renewal protocol.
// On success the caller owns the response body. ErrSessionExpired and
// ErrReplayExhausted are the only terminal authorization outcomes.
func (c *Client) Do(ctx context.Context, d *Descriptor) (*http.Response, error) {
	for {
		resp, err := c.send(ctx, d)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusUnauthorized {
			return resp, nil
		}
		resp.Body.Close()

		if d.retried {
			logger.Get().Warn().
				Str("request_id", d.ID.String()).
				Str("url", d.URL).
				Msg("Request unauthorized after replay, giving up")
			return nil, fmt.Errorf("%w: %s %s", ErrReplayExhausted, d.Method, d.URL)
		}
		d.retried = true

		logger.Get().Debug().
			Str("request_id", d.ID.String()).
			Str("url", d.URL).
			Msg("Request unauthorized, awaiting token renewal")

		if err := c.coordinator.Await(ctx); err != nil {
			return nil, err
		}
		// Loop replays the descriptor; send reads the store again, so
		// the replay carries the renewed token.
	}
}

// RenewIfExpiring renews the pair when the access token is expired or
// expires within skew. Long-running deployments call this periodically
// to avoid taking the 401 round trip on a live request. Renewal goes
// through the coordinator, so it cannot race a 401-triggered one.
func (c *Client) RenewIfExpiring(ctx context.Context, skew time.Duration) error {
	pair, err := c.store.Get(ctx)
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return nil
		}
		return err
	}
	if !pair.ExpiresSoon(skew) {
		return nil
	}

	logger.Get().Info().Msg("Access token expired or expiring soon, renewing")
	return c.coordinator.Await(ctx)
}

// send issues the descriptor once with the current access token. No
// retry logic lives here.
func (c *Client) send(ctx context.Context, d *Descriptor) (*http.Response, error) {
	var accessToken string
	pair, err := c.store.Get(ctx)
	switch {
	case err == nil:
		accessToken = pair.AccessToken
	case errors.Is(err, credentials.ErrNotFound):
		// No stored pair: send unauthenticated and let the server decide.
	default:
		return nil, fmt.Errorf("unable to get credentials: %w", err)
	}

	req, err := d.request(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request execution error: %w", err)
	}
	return resp, nil
}
