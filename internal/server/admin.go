package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/env"
	"github.com/pagecraft/studio/internal/logger"
)

// adminMiddleware checks for a valid admin API key from either
// 'Authorization: Bearer <key>' or 'X-API-Key: <key>' headers.
func (s *Server) adminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminKey, ok := env.Get("ADMIN_API_KEY")
		if !ok || adminKey == "" {
			logger.Get().Error().Msg("ADMIN_API_KEY environment variable not set")
			http.Error(w, "Admin API not configured", http.StatusInternalServerError)
			return
		}

		var providedToken string
		authHeader := r.Header.Get("Authorization")
		xAPIKeyHeader := r.Header.Get("X-API-Key")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}
			providedToken = parts[1]
		} else if xAPIKeyHeader != "" {
			providedToken = xAPIKeyHeader
		} else {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if providedToken != adminKey {
			logger.Get().Warn().
				Str("method", r.Method).
				Str("url", r.RequestURI).
				Str("remote_addr", r.RemoteAddr).
				Msg("Invalid admin API key")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// credentialsHandler handles POST /admin/credentials for seeding the
// credential pair and DELETE for clearing it.
func (s *Server) credentialsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var pair credentials.Pair
		if err := json.NewDecoder(r.Body).Decode(&pair); err != nil {
			logger.Get().Error().Err(err).Msg("Failed to decode credentials request")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.store.Set(r.Context(), &pair); err != nil {
			if errors.Is(err, credentials.ErrIncompletePair) {
				http.Error(w, "Both access_token and refresh_token are required", http.StatusBadRequest)
				return
			}
			logger.Get().Error().Err(err).Msg("Failed to save credentials")
			http.Error(w, "Failed to save credentials", http.StatusInternalServerError)
			return
		}

		logger.Get().Info().Str("store", s.store.Name()).Msg("Credentials updated via admin API")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})

	case http.MethodDelete:
		if err := s.store.Clear(r.Context()); err != nil {
			logger.Get().Error().Err(err).Msg("Failed to clear credentials")
			http.Error(w, "Failed to clear credentials", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// credentialsStatusHandler handles GET /admin/credentials/status
func (s *Server) credentialsStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	status := map[string]any{
		"store":       s.store.Name(),
		"credentials": false,
	}

	pair, err := s.store.Get(r.Context())
	if err == nil {
		status["credentials"] = true
		status["expires_soon"] = pair.ExpiresSoon(5 * time.Minute)
	} else if !errors.Is(err, credentials.ErrNotFound) {
		logger.Get().Error().Err(err).Msg("Failed to read credentials for status")
		http.Error(w, "Failed to read credentials", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
