package securepipe

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/securepipe/pkg/clock"
	"github.com/dmitrymomot/securepipe/pkg/expiry"
	"github.com/dmitrymomot/securepipe/pkg/logger"
	"github.com/dmitrymomot/securepipe/pkg/payload"
	"github.com/dmitrymomot/securepipe/pkg/secrets"
	"github.com/dmitrymomot/securepipe/pkg/token"
)

// SecurePipe encrypts payloads into tokens and decrypts them back.
type SecurePipe struct {
	secret    []byte
	binding   Binding
	policy    expiry.Policy
	version   token.Version
	kdf       secrets.Params
	clock     clock.Clocker
	log       *slog.Logger
	onFailure func(*DecryptError)
}

// TokenInfo is the public metadata of a token.
type TokenInfo struct {
	Version   token.Version
	Salt      []byte
	Identity  uuid.UUID
	Mode      Mode
	IssuedAt  time.Time
	ExpiresAt *time.Time
}

// New creates a SecurePipe holding a copy of secret.
func New(secret []byte, opts ...Option) (*SecurePipe, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if len(secret) == 0 {
		return nil, errors.Join(ErrInvalidInput, secrets.ErrEmptySecret)
	}
	if shared, ok := o.binding.(Shared); ok && shared.Identity == uuid.Nil {
		return nil, fmt.Errorf("%w: shared identity must not be the nil UUID", ErrInvalidInput)
	}
	policy, err := expiry.New(o.tolerance)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	if !o.version.Known() {
		return nil, errors.Join(ErrInvalidInput, fmt.Errorf("%w: 0x%02x", token.ErrUnsupportedVersion, byte(o.version)))
	}
	if err := o.kdf.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	log := o.logger
	if log == nil {
		log = logger.Discard()
	}

	return &SecurePipe{
		secret:    append([]byte(nil), secret...),
		binding:   o.binding,
		policy:    policy,
		version:   o.version,
		kdf:       o.kdf,
		clock:     o.clock,
		log:       log.With(logger.Component("securepipe")),
		onFailure: o.onFailure,
	}, nil
}

// NewString is New for text secrets.
func NewString(secret string, opts ...Option) (*SecurePipe, error) {
	return New([]byte(secret), opts...)
}

// Binding returns the identity binding chosen at construction.
func (p *SecurePipe) Binding() Binding {
	return p.binding
}

// Mode reports whether the instance runs in shared or dynamic mode.
func (p *SecurePipe) Mode() Mode {
	return p.binding.Mode()
}

// Identity returns the shared identity. The boolean is false in dynamic mode.
func (p *SecurePipe) Identity() (uuid.UUID, bool) {
	if shared, ok := p.binding.(Shared); ok {
		return shared.Identity, true
	}
	return uuid.Nil, false
}

// Encrypt serializes v and seals it into a token issued now.
//
// The text token is limited to token.MaxTokenLength (64 KiB), which leaves
// room for roughly 48 KiB of serialized payload. Larger payloads fail with
// ErrTokenTooLarge.
func (p *SecurePipe) Encrypt(v payload.Value, opts ...EncryptOption) (string, error) {
	var eo encryptOptions
	for _, opt := range opts {
		opt(&eo)
	}
	if eo.expires && (eo.expiresIn < time.Second || eo.expiresIn%time.Second != 0) {
		return "", fmt.Errorf("%w: expiry must be a whole number of seconds, got %s", ErrInvalidInput, eo.expiresIn)
	}

	plaintext, err := payload.Serialize(v)
	if err != nil {
		return "", err
	}
	defer secrets.Wipe(plaintext)

	salt, err := secrets.GenerateSalt()
	if err != nil {
		return "", err
	}

	header := token.Header{
		Version:  p.version,
		Salt:     salt,
		IssuedAt: time.Unix(p.clock.Now().Unix(), 0),
	}
	switch b := p.binding.(type) {
	case Shared:
		header.Identity = b.Identity
	case Dynamic:
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate identity: %w", err)
		}
		header.Identity = id
		header.Dynamic = true
	}
	if eo.expires {
		exp := time.Unix(header.IssuedAt.Add(eo.expiresIn).Unix(), 0)
		header.ExpiresAt = &exp
	}

	key, err := p.kdf.Derive(p.secret, header.Identity, salt)
	if err != nil {
		return "", err
	}
	defer secrets.Wipe(key)

	sealed, err := token.Seal(key, header, plaintext)
	if err != nil {
		return "", err
	}

	return token.Encode(sealed)
}

// Decrypt reverses Encrypt. Every failure, whatever its cause, is reported
// as ErrDecryptFailed; see WithLogger and WithFailureHook for the cause.
func (p *SecurePipe) Decrypt(s string) (payload.Value, error) {
	v, err := p.decrypt(s)
	if err != nil {
		p.reportFailure(err)
		return nil, ErrDecryptFailed
	}
	return v, nil
}

func (p *SecurePipe) decrypt(s string) (payload.Value, *DecryptError) {
	tok, err := token.Decode(s)
	if err != nil {
		return nil, &DecryptError{Stage: StageParse, Err: err}
	}

	// Shared mode derives with its own identity, so a foreign identity fails
	// authentication. Mode checks run only after authentication succeeds.
	identity := tok.Identity
	if shared, ok := p.binding.(Shared); ok {
		identity = shared.Identity
	}

	key, err := p.kdf.Derive(p.secret, identity, tok.Salt)
	if err != nil {
		return nil, &DecryptError{Stage: StageDerive, Err: err}
	}
	defer secrets.Wipe(key)

	plaintext, err := token.Open(key, tok)
	if err != nil {
		return nil, &DecryptError{Stage: StageAuthenticate, Err: err}
	}
	defer secrets.Wipe(plaintext)

	if err := p.checkContext(tok.Header); err != nil {
		return nil, &DecryptError{Stage: StageContext, Err: err}
	}

	if err := p.policy.Validate(tok.IssuedAt, tok.ExpiresAt, p.clock.Now()); err != nil {
		return nil, &DecryptError{Stage: StageExpiry, Err: err}
	}

	v, err := payload.Deserialize(plaintext)
	if err != nil {
		return nil, &DecryptError{Stage: StagePayload, Err: err}
	}
	return v, nil
}

func (p *SecurePipe) checkContext(h token.Header) error {
	switch b := p.binding.(type) {
	case Shared:
		if h.Dynamic {
			return fmt.Errorf("%w: shared instance received a dynamic token", ErrContextMismatch)
		}
		if h.Identity != b.Identity {
			return ErrIdentityMismatch
		}
	case Dynamic:
		if !h.Dynamic {
			return fmt.Errorf("%w: dynamic instance received a shared token", ErrContextMismatch)
		}
	}
	return nil
}

func (p *SecurePipe) reportFailure(err *DecryptError) {
	p.log.Debug("decrypt failed",
		logger.Stage(string(err.Stage)),
		logger.Mode(string(p.Mode())),
		logger.Error(err.Err),
	)
	if p.onFailure != nil {
		p.onFailure(err)
	}
}

// DecodeTokenInfo reads the metadata of a token without using the secret.
func (p *SecurePipe) DecodeTokenInfo(s string) (TokenInfo, error) {
	return Inspect(s)
}

// Inspect reads the metadata of a token. It needs no key material.
func Inspect(s string) (TokenInfo, error) {
	h, err := token.Inspect(s)
	if err != nil {
		return TokenInfo{}, err
	}

	mode := ModeShared
	if h.Dynamic {
		mode = ModeDynamic
	}

	return TokenInfo{
		Version:   h.Version,
		Salt:      h.Salt,
		Identity:  h.Identity,
		Mode:      mode,
		IssuedAt:  h.IssuedAt,
		ExpiresAt: h.ExpiresAt,
	}, nil
}
