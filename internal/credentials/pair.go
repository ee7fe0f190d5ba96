package credentials

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Pair holds the access/refresh credential pair issued by the backend.
// The two tokens live and die together: a pair missing either one is not
// a valid state and is rejected by every Store implementation.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiryDate   int64  `json:"expiry_date,omitempty"` // unix milliseconds, 0 when the backend omits it
	TokenType    string `json:"token_type,omitempty"`
}

// Complete reports whether both tokens are present.
func (p *Pair) Complete() bool {
	return p != nil && p.AccessToken != "" && p.RefreshToken != ""
}

// ExpiresSoon reports whether the access token is expired or expires
// within the given skew. When the backend did not send an expiry_date,
// the unverified exp claim of the access token is probed instead; a
// token carrying neither is assumed valid until the server says 401.
func (p *Pair) ExpiresSoon(skew time.Duration) bool {
	expiry := p.expiryTime()
	if expiry.IsZero() {
		return false
	}
	return time.Now().After(expiry.Add(-skew))
}

func (p *Pair) expiryTime() time.Time {
	if p.ExpiryDate > 0 {
		return time.UnixMilli(p.ExpiryDate)
	}

	// Probe the exp claim without verifying the signature. Verification
	// is the server's job; we only need the timestamp.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(p.AccessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
