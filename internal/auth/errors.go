package auth

import "errors"

var (
	// ErrValidation covers malformed or missing input. 400 at the boundary.
	ErrValidation = errors.New("validation")
	// ErrAuthenticationFailed is the uniform bad-credentials error. 401.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrToken covers invalid, expired and already-revoked refresh tokens. 400.
	ErrToken = errors.New("token is expired or invalid")
)
