package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/httpx"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiryDate   int64  `json:"expiry_date,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// NewRefreshFunc returns a RefreshFunc that exchanges the refresh token
// at the backend's renewal endpoint. Any non-2xx status is treated
// uniformly as a rejected renewal.
func NewRefreshFunc(doer httpx.Doer, baseURL string) RefreshFunc {
	return func(ctx context.Context, refreshToken string) (*credentials.Pair, error) {
		if refreshToken == "" {
			return nil, fmt.Errorf("no refresh token available")
		}

		bodyBytes, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
		if err != nil {
			return nil, fmt.Errorf("could not marshal refresh request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/refresh", bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, fmt.Errorf("could not create refresh request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := doer.Do(req)
		if err != nil {
			return nil, fmt.Errorf("refresh request execution error: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("could not read refresh response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("token refresh failed with status %d: %s", resp.StatusCode, string(respBody))
		}

		var parsed refreshResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, fmt.Errorf("could not unmarshal refresh response: %w", err)
		}
		if parsed.AccessToken == "" {
			return nil, fmt.Errorf("refresh response contained no access token")
		}

		return &credentials.Pair{
			AccessToken:  parsed.AccessToken,
			RefreshToken: parsed.RefreshToken,
			ExpiryDate:   parsed.ExpiryDate,
			TokenType:    parsed.TokenType,
		}, nil
	}
}
