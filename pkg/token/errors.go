package token

import "errors"

var (
	ErrMalformedToken       = errors.New("malformed token")
	ErrTokenTooLarge        = errors.New("token exceeds maximum length")
	ErrUnsupportedVersion   = errors.New("unsupported token version")
	ErrAuthenticationFailed = errors.New("token authentication failed")
	ErrInvalidToken         = errors.New("invalid token fields")
	ErrInvalidKey           = errors.New("invalid token key")
	ErrSealFailed           = errors.New("token sealing failed")
)
