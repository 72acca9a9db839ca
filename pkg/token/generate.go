package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Seal encrypts plaintext under key with a fresh random nonce. The binary
// header is authenticated as additional data.
func Seal(key []byte, h Header, plaintext []byte) (Token, error) {
	if err := h.validate(); err != nil {
		return Token{}, err
	}

	aead, err := h.Version.aead(key)
	if err != nil {
		return Token{}, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Token{}, errors.Join(ErrSealFailed, err)
	}

	sealed := aead.Seal(nil, nonce, plaintext, h.appendHeader(nil))
	split := len(sealed) - aead.Overhead()

	return Token{
		Header:     h,
		Nonce:      nonce,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}, nil
}

// Encode renders t in its text form.
func Encode(t Token) (string, error) {
	if err := t.validate(); err != nil {
		return "", err
	}
	if len(t.Nonce) != t.Version.NonceSize() {
		return "", errors.Join(ErrInvalidToken, fmt.Errorf("nonce must be %d bytes, got %d", t.Version.NonceSize(), len(t.Nonce)))
	}
	if len(t.Tag) != TagSize {
		return "", errors.Join(ErrInvalidToken, fmt.Errorf("tag must be %d bytes, got %d", TagSize, len(t.Tag)))
	}

	size := t.size() + len(t.Nonce) + len(t.Tag) + len(t.Ciphertext)
	if base64.RawURLEncoding.EncodedLen(size) > MaxTokenLength {
		return "", ErrTokenTooLarge
	}

	buf := make([]byte, 0, size)
	buf = t.appendHeader(buf)
	buf = append(buf, t.Nonce...)
	buf = append(buf, t.Tag...)
	buf = append(buf, t.Ciphertext...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
