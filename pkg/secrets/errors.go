package secrets

import "errors"

var (
	// Input validation errors
	ErrInvalidInput = errors.New("invalid key derivation input")
	ErrEmptySecret  = errors.New("secret must not be empty")
	ErrShortSalt    = errors.New("salt is too short")
	ErrInvalidParam = errors.New("invalid key derivation parameters")

	// Key derivation errors
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
