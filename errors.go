package securepipe

import (
	"errors"

	"github.com/dmitrymomot/securepipe/pkg/expiry"
	"github.com/dmitrymomot/securepipe/pkg/payload"
	"github.com/dmitrymomot/securepipe/pkg/token"
)

var (
	// ErrDecryptFailed is the only error Decrypt returns.
	ErrDecryptFailed = errors.New("securepipe: cannot decrypt token")

	// Construction and configuration errors
	ErrInvalidInput  = errors.New("securepipe: invalid input")
	ErrInvalidConfig = errors.New("securepipe: invalid configuration")

	// Identity errors
	ErrIdentityMismatch = errors.New("securepipe: token identity does not match")
	ErrContextMismatch  = errors.New("securepipe: token identity mode does not match")

	ErrUnsupportedType      = payload.ErrUnsupportedType
	ErrMalformedToken       = token.ErrMalformedToken
	ErrUnsupportedVersion   = token.ErrUnsupportedVersion
	ErrTokenTooLarge        = token.ErrTokenTooLarge
	ErrAuthenticationFailed = token.ErrAuthenticationFailed
	ErrExpired              = expiry.ErrExpired
	ErrNotYetValid          = expiry.ErrNotYetValid
)

// Stage names the step of Decrypt that failed.
type Stage string

const (
	StageParse        Stage = "parse"
	StageDerive       Stage = "derive"
	StageAuthenticate Stage = "authenticate"
	StageContext      Stage = "context"
	StageExpiry       Stage = "expiry"
	StagePayload      Stage = "payload"
)

// DecryptError carries the cause of a failed Decrypt. It is delivered to the
// failure hook and the logger, never returned by Decrypt.
type DecryptError struct {
	Stage Stage
	Err   error
}

func (e *DecryptError) Error() string {
	return "securepipe: decrypt failed at " + string(e.Stage) + ": " + e.Err.Error()
}

func (e *DecryptError) Unwrap() error {
	return e.Err
}
