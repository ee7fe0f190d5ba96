package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pagecraft/studio/internal/auth"
	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/env"
	"github.com/pagecraft/studio/internal/logger"
)

// hop-by-hop headers that must not be forwarded in either direction
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Server is the authenticated edge proxy: browser callers hit /api/*
// without holding tokens, the proxy forwards through the session client
// which attaches and renews the credential pair.
type Server struct {
	client     *auth.Client
	store      credentials.Store
	backendURL string
	mux        *http.ServeMux
}

// NewServer creates a proxy server over the given store and backend.
func NewServer(store credentials.Store, backendURL string) *Server {
	client := auth.NewSessionClient(store, backendURL, func() {
		logger.Get().Warn().Msg("Session terminated, admin must seed new credentials")
	})

	s := &Server{
		client:     client,
		store:      store,
		backendURL: strings.TrimRight(backendURL, "/"),
		mux:        http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Start launches the proxy server
func (s *Server) Start(addr string) error {
	s.startRenewalLoop()

	logger.Get().Info().Str("addr", addr).Str("backend", s.backendURL).Msg("Starting studio proxy")
	return http.ListenAndServe(addr, s)
}

// startRenewalLoop periodically renews the credential pair before it
// expires, so live requests rarely pay the 401 round trip.
func (s *Server) startRenewalLoop() {
	interval := env.GetDuration("TOKEN_RENEWAL_INTERVAL", 5*time.Minute)
	logger.Get().Info().Dur("interval", interval).Msg("Starting periodic token renewal")

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := s.client.RenewIfExpiring(ctx, interval); err != nil {
				logger.Get().Error().Err(err).Msg("Periodic token renewal failed")
			}
			cancel()
		}
	}()
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/", s.proxyHandler)
	s.mux.HandleFunc("/admin/credentials", s.adminMiddleware(s.credentialsHandler))
	s.mux.HandleFunc("/admin/credentials/status", s.adminMiddleware(s.credentialsStatusHandler))
	s.mux.HandleFunc("/healthz", s.healthHandler)
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loggingMiddleware(s.mux).ServeHTTP(w, r)
}

// proxyHandler forwards /api/* to the backend through the session
// client. The incoming Authorization header is dropped; the client
// attaches the stored token.
func (s *Server) proxyHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	target := s.backendURL + strings.TrimPrefix(r.URL.Path, "/api")
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	header := r.Header.Clone()
	for _, h := range hopHeaders {
		header.Del(h)
	}

	desc := auth.NewDescriptor(r.Method, target, header, body)
	resp, err := s.client.Do(r.Context(), desc)
	if err != nil {
		logger.Get().Error().Err(err).Str("target", target).Msg("Proxy request failed")
		if isAuthFailure(err) {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Upstream request failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		if isHopHeader(key) {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Get().Warn().Err(err).Msg("Failed to copy upstream response")
	}
}

// healthHandler reports liveness
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func isAuthFailure(err error) bool {
	return errors.Is(err, auth.ErrSessionExpired) || errors.Is(err, auth.ErrReplayExhausted)
}

func isHopHeader(key string) bool {
	for _, h := range hopHeaders {
		if strings.EqualFold(key, h) {
			return true
		}
	}
	return false
}
