package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/studio/internal/credentials"
)

func newProxyStack(t *testing.T) (*httptest.Server, *credentials.MemoryStore) {
	t.Helper()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/refresh":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "fresh"})
		case r.Header.Get("Authorization") != "Bearer fresh":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			json.NewEncoder(w).Encode(map[string]string{
				"path":  r.URL.Path,
				"query": r.URL.RawQuery,
			})
		}
	}))
	t.Cleanup(backend.Close)

	store := credentials.NewMemoryStore()
	srv := NewServer(store, backend.URL)

	proxy := httptest.NewServer(srv)
	t.Cleanup(proxy.Close)
	return proxy, store
}

func seedPair(t *testing.T, store credentials.Store, access string) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), &credentials.Pair{
		AccessToken:  access,
		RefreshToken: "renewal",
	}))
}

func TestProxyForwardsWithStoredToken(t *testing.T) {
	proxy, store := newProxyStack(t)
	seedPair(t, store, "fresh")

	resp, err := http.Get(proxy.URL + "/api/projects?status=active")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "/projects", body["path"], "the /api prefix must be stripped")
	assert.Equal(t, "status=active", body["query"])
}

func TestProxyRenewsStaleToken(t *testing.T) {
	proxy, store := newProxyStack(t)
	seedPair(t, store, "stale")

	resp, err := http.Get(proxy.URL + "/api/articles")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the proxy must renew and replay, not surface the 401")

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", pair.AccessToken)
}

func TestProxyDropsCallerAuthorization(t *testing.T) {
	proxy, store := newProxyStack(t)
	seedPair(t, store, "fresh")

	req, err := http.NewRequest(http.MethodGet, proxy.URL+"/api/projects", nil)
	require.NoError(t, err)
	// A caller-supplied token must never reach the backend.
	req.Header.Set("Authorization", "Bearer attacker")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProxyWithoutCredentials(t *testing.T) {
	proxy, _ := newProxyStack(t)

	resp, err := http.Get(proxy.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminCredentialsLifecycle(t *testing.T) {
	t.Setenv("ADMIN_API_KEY", "admin-secret")
	proxy, store := newProxyStack(t)

	// Unauthorized without the admin key.
	resp, err := http.Post(proxy.URL+"/admin/credentials", "application/json",
		strings.NewReader(`{"access_token":"fresh","refresh_token":"renewal"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	adminReq := func(method, path, body string) *http.Response {
		req, err := http.NewRequest(method, proxy.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("X-API-Key", "admin-secret")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	// Seed the pair.
	resp = adminReq(http.MethodPost, "/admin/credentials", `{"access_token":"fresh","refresh_token":"renewal"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", pair.AccessToken)

	// Status reflects the stored pair.
	resp = adminReq(http.MethodGet, "/admin/credentials/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.Equal(t, true, status["credentials"])

	// Incomplete pairs are rejected.
	resp = adminReq(http.MethodPost, "/admin/credentials", `{"access_token":"only-half"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Clear.
	resp = adminReq(http.MethodDelete, "/admin/credentials", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestHealthz(t *testing.T) {
	proxy, _ := newProxyStack(t)

	resp, err := http.Get(proxy.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
