package token

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// Decode parses the text form of a token without any key material.
func Decode(s string) (Token, error) {
	if len(s) > MaxTokenLength {
		return Token{}, errors.Join(ErrMalformedToken, ErrTokenTooLarge)
	}

	// Strict rejects non-zero padding bits, so every text mutation changes the bytes.
	data, err := base64.RawURLEncoding.Strict().DecodeString(s)
	if err != nil {
		return Token{}, errors.Join(ErrMalformedToken, err)
	}

	h, off, err := parseHeader(data)
	if err != nil {
		return Token{}, err
	}

	nonceSize := h.Version.NonceSize()
	if len(data)-off < nonceSize+TagSize {
		return Token{}, fmt.Errorf("%w: %d bytes after header, need at least %d", ErrMalformedToken, len(data)-off, nonceSize+TagSize)
	}

	t := Token{Header: h}
	t.Nonce = data[off : off+nonceSize]
	off += nonceSize
	t.Tag = data[off : off+TagSize]
	off += TagSize
	t.Ciphertext = data[off:]

	return t, nil
}

// Inspect returns the header of a token without decrypting it.
func Inspect(s string) (Header, error) {
	t, err := Decode(s)
	if err != nil {
		return Header{}, err
	}
	return t.Header, nil
}

// Open authenticates and decrypts t under key.
func Open(key []byte, t Token) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	aead, err := t.Version.aead(key)
	if err != nil {
		return nil, err
	}
	if len(t.Nonce) != aead.NonceSize() || len(t.Tag) != aead.Overhead() {
		return nil, fmt.Errorf("%w: bad nonce or tag length", ErrMalformedToken)
	}

	sealed := make([]byte, 0, len(t.Ciphertext)+len(t.Tag))
	sealed = append(sealed, t.Ciphertext...)
	sealed = append(sealed, t.Tag...)

	plaintext, err := aead.Open(nil, t.Nonce, sealed, t.appendHeader(nil))
	if err != nil {
		return nil, errors.Join(ErrAuthenticationFailed, err)
	}

	return plaintext, nil
}
