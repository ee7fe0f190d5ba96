package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pagecraft/studio/internal/auth"
	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/logger"
)

// Client is a typed client for the Pagecraft Studio backend. All calls
// go through the authenticated client, so token renewal is handled
// transparently.
type Client struct {
	baseURL string
	authc   *auth.Client
	store   credentials.Store
}

// NewClient creates a backend client on top of an authenticated client.
func NewClient(baseURL string, authc *auth.Client, store credentials.Store) *Client {
	return &Client{
		baseURL: baseURL,
		authc:   authc,
		store:   store,
	}
}

// Login exchanges email and password for a credential pair and persists
// it. This and a successful renewal are the only writes to the store.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair credentials.Pair
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &pair)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := c.store.Set(ctx, &pair); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	logger.Get().Info().Str("store", c.store.Name()).Msg("Logged in")
	return nil
}

// Logout revokes the session server-side (best effort) and clears the
// stored pair.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		logger.Get().Warn().Err(err).Msg("Server-side logout failed, clearing local credentials anyway")
	}
	return c.store.Clear(ctx)
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do issues one JSON request through the authenticated client and
// decodes the response into out when given.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	if body != nil {
		header.Set("Content-Type", "application/json")
	}

	desc := auth.NewDescriptor(method, c.baseURL+path, header, body)
	resp, err := c.authc.Do(ctx, desc)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("could not unmarshal response body: %w", err)
		}
	}
	return nil
}
