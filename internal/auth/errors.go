package auth

import "errors"

var (
	// ErrSessionExpired means the renewal credential was absent, invalid
	// or rejected by the backend. The session has been terminated; the
	// caller has to log in again.
	ErrSessionExpired = errors.New("auth: session expired")

	// ErrReplayExhausted means a request that was already replayed once
	// received another unauthorized response. It is rejected without a
	// second renewal so a bad token can't loop forever.
	ErrReplayExhausted = errors.New("auth: request unauthorized after replay")
)
