package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagecraft/studio/internal/auth"
	"github.com/pagecraft/studio/internal/credentials"
)

// newTestStack spins up a fake backend and a fully wired client. The
// backend accepts only "fresh" as access token and renews "stale"
// sessions through /auth/refresh.
func newTestStack(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*Client, *credentials.MemoryStore, *atomic.Int32) {
	t.Helper()

	store := credentials.NewMemoryStore()
	refreshCalls := &atomic.Int32{}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "editor@example.com" || req.Password != "hunter2" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "fresh",
			"refresh_token": "renewal",
		})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "fresh",
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handle(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	terminator := auth.NewTerminator(store, nil)
	coordinator := auth.NewCoordinator(store, auth.NewRefreshFunc(srv.Client(), srv.URL), terminator)
	authc := auth.NewClient(srv.Client(), store, coordinator)
	return NewClient(srv.URL, authc, store), store, refreshCalls
}

func seedPair(t *testing.T, store credentials.Store, access string) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), &credentials.Pair{
		AccessToken:  access,
		RefreshToken: "renewal",
	}))
}

func TestLoginStoresPair(t *testing.T) {
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {})

	require.NoError(t, client.Login(context.Background(), "editor@example.com", "hunter2"))

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", pair.AccessToken)
	assert.Equal(t, "renewal", pair.RefreshToken)
}

func TestLoginRejected(t *testing.T) {
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {})

	err := client.Login(context.Background(), "editor@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, credentials.ErrNotFound, "a failed login must not store anything")
}

func TestListProjects(t *testing.T) {
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects", r.URL.Path)
		json.NewEncoder(w).Encode([]Project{
			{ID: "p1", Name: "Launch site", Status: "active"},
			{ID: "p2", Name: "Blog", Status: "archived"},
		})
	})
	seedPair(t, store, "fresh")

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Launch site", projects[0].Name)
}

func TestRenewalIsTransparentToTypedCalls(t *testing.T) {
	client, store, refreshCalls := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Article{{ID: "a1", Title: "Hello"}})
	})
	// Stale token: the first attempt 401s, renewal kicks in, the replay
	// succeeds without the caller noticing.
	seedPair(t, store, "stale")

	articles, err := client.ListArticles(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Hello", articles[0].Title)
	assert.Equal(t, int32(1), refreshCalls.Load())

	pair, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", pair.AccessToken)
	assert.Equal(t, "renewal", pair.RefreshToken, "refresh token is reused when the backend does not reissue one")
}

func TestCreateProject(t *testing.T) {
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/projects", r.URL.Path)

		var in ProjectInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(Project{ID: "p9", Name: in.Name, Slug: in.Slug, Status: "active"})
	})
	seedPair(t, store, "fresh")

	project, err := client.CreateProject(context.Background(), ProjectInput{Name: "Docs", Slug: "docs"})
	require.NoError(t, err)
	assert.Equal(t, "p9", project.ID)
	assert.Equal(t, "Docs", project.Name)
}

func TestListArticlesScopedToProject(t *testing.T) {
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "p1", r.URL.Query().Get("project_id"))
		json.NewEncoder(w).Encode([]Article{})
	})
	seedPair(t, store, "fresh")

	_, err := client.ListArticles(context.Background(), "p1")
	require.NoError(t, err)
}

func TestSocialLinksRoundtrip(t *testing.T) {
	var stored SocialLinks
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/settings/social-links"))
		if r.Method == http.MethodPut {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
		}
		json.NewEncoder(w).Encode(stored)
	})
	seedPair(t, store, "fresh")

	updated, err := client.SetSocialLinks(context.Background(), SocialLinks{Twitter: "https://twitter.com/pagecraft"})
	require.NoError(t, err)
	assert.Equal(t, "https://twitter.com/pagecraft", updated.Twitter)

	got, err := client.GetSocialLinks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestLogoutClearsCredentials(t *testing.T) {
	client, store, _ := newTestStack(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	seedPair(t, store, "fresh")

	require.NoError(t, client.Logout(context.Background()))
	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}
