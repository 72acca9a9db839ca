package token

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Version identifies the token layout and its AEAD suite.
type Version byte

const (
	// V1 seals with AES-256-GCM.
	V1 Version = 0x01
	// V2 seals with XChaCha20-Poly1305.
	V2 Version = 0x02

	// DefaultVersion is used when no version is chosen explicitly.
	DefaultVersion = V1
)

// KeySize is the AEAD key length for every version.
const KeySize = 32

// Known reports whether v is a supported version.
func (v Version) Known() bool {
	return v == V1 || v == V2
}

// NonceSize returns the nonce length for v, or 0 for unknown versions.
func (v Version) NonceSize() int {
	switch v {
	case V1:
		return 12
	case V2:
		return chacha20poly1305.NonceSizeX
	default:
		return 0
	}
}

func (v Version) String() string {
	switch v {
	case V1:
		return "aes-256-gcm"
	case V2:
		return "xchacha20-poly1305"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(v))
	}
}

// ParseVersion maps a cipher name to its version.
func ParseVersion(name string) (Version, error) {
	switch name {
	case "", "aes-gcm", "aes-256-gcm", "v1":
		return V1, nil
	case "xchacha20", "xchacha20-poly1305", "v2":
		return V2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, name)
	}
}

func (v Version) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	switch v {
	case V1:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, errors.Join(ErrInvalidKey, err)
		}
		aesGCM, err := cipher.NewGCM(block)
		if err != nil {
			return nil, errors.Join(ErrInvalidKey, err)
		}
		return aesGCM, nil
	case V2:
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, errors.Join(ErrInvalidKey, err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, byte(v))
	}
}
