package securepipe

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/securepipe/pkg/clock"
	"github.com/dmitrymomot/securepipe/pkg/expiry"
	"github.com/dmitrymomot/securepipe/pkg/secrets"
	"github.com/dmitrymomot/securepipe/pkg/token"
)

// Option configures a SecurePipe.
type Option func(*options)

type options struct {
	binding   Binding
	tolerance time.Duration
	version   token.Version
	kdf       secrets.Params
	clock     clock.Clocker
	logger    *slog.Logger
	onFailure func(*DecryptError)
	err       error
}

func defaultOptions() *options {
	return &options{
		binding:   Dynamic{},
		tolerance: expiry.DefaultTolerance,
		version:   token.DefaultVersion,
		kdf:       secrets.DefaultParams,
		clock:     clock.New(),
	}
}

// WithIdentity selects shared mode bound to id.
func WithIdentity(id uuid.UUID) Option {
	return func(o *options) {
		o.binding = Shared{Identity: id}
	}
}

// WithIdentityString parses s as a UUID and selects shared mode.
func WithIdentityString(s string) Option {
	return func(o *options) {
		id, err := uuid.Parse(s)
		if err != nil {
			o.err = fmt.Errorf("%w: identity %q: %w", ErrInvalidInput, s, err)
			return
		}
		o.binding = Shared{Identity: id}
	}
}

// WithTolerance sets the clock-skew allowance applied when decrypting.
func WithTolerance(d time.Duration) Option {
	return func(o *options) { o.tolerance = d }
}

// WithCipher selects the token version, and with it the AEAD, used by Encrypt.
// Decrypt accepts every supported version regardless.
func WithCipher(v token.Version) Option {
	return func(o *options) { o.version = v }
}

// WithKDFParams overrides the Argon2id parameters. Issuer and verifier must use
// the same parameters.
func WithKDFParams(p secrets.Params) Option {
	return func(o *options) { o.kdf = p }
}

// WithClock replaces the time source. Nil is ignored.
func WithClock(c clock.Clocker) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger receives decrypt failure diagnostics at debug level. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFailureHook registers fn to receive the cause of every failed Decrypt.
// fn may be called concurrently.
func WithFailureHook(fn func(*DecryptError)) Option {
	return func(o *options) { o.onFailure = fn }
}

// EncryptOption configures a single Encrypt call.
type EncryptOption func(*encryptOptions)

type encryptOptions struct {
	expiresIn time.Duration
	expires   bool
}

// ExpiresIn limits the token lifetime to d, counted from issuance.
// Timestamps have second precision, so d must be a whole number of seconds
// and at least one second; Encrypt rejects other values with ErrInvalidInput.
func ExpiresIn(d time.Duration) EncryptOption {
	return func(o *encryptOptions) {
		o.expiresIn = d
		o.expires = true
	}
}
