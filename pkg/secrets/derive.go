package secrets

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// hkdfInfo is the domain separation prefix for token keys. The identity
// bytes are appended to it. Changing it invalidates every issued token.
const hkdfInfo = "securepipe.token.v1"

// Params tunes the Argon2id stretching stage.
type Params struct {
	Time    uint32 // number of passes
	Memory  uint32 // memory in KiB
	Threads uint8
}

// DefaultParams is the OWASP minimum recommendation for Argon2id.
var DefaultParams = Params{
	Time:    2,
	Memory:  19 * 1024,
	Threads: 1,
}

// Validate reports whether all parameters are usable.
func (p Params) Validate() error {
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return errors.Join(ErrInvalidInput, ErrInvalidParam)
	}
	// argon2 requires at least 8 KiB per lane.
	if p.Memory < 8*uint32(p.Threads) {
		return errors.Join(ErrInvalidInput, ErrInvalidParam)
	}
	return nil
}

// Derive derives a KeySize key with DefaultParams.
func Derive(secret []byte, identity uuid.UUID, salt []byte) ([]byte, error) {
	return DefaultParams.Derive(secret, identity, salt)
}

// Derive turns (secret, identity, salt) into a KeySize key.
// The same inputs always yield the same key. The caller owns the result
// and should Wipe it after use.
func (p Params) Derive(secret []byte, identity uuid.UUID, salt []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, errors.Join(ErrInvalidInput, ErrEmptySecret)
	}
	if len(salt) < MinSaltSize {
		return nil, errors.Join(ErrInvalidInput, ErrShortSalt)
	}

	stretched := argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, KeySize)
	defer clearBytes(stretched)

	info := make([]byte, 0, len(hkdfInfo)+len(identity))
	info = append(info, hkdfInfo...)
	info = append(info, identity[:]...)

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, stretched, salt, info), key); err != nil {
		clearBytes(key)
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return key, nil
}
