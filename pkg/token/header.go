package token

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/securepipe/pkg/secrets"
)

const (
	// SaltSize is the length of the salt field.
	SaltSize = secrets.SaltSize

	// TagSize is the length of the authentication tag for every version.
	TagSize = 16

	// MaxTokenLength bounds the text form accepted by Decode.
	MaxTokenLength = 64 * 1024

	// MinHeaderSize is the header length of a token without expiry.
	MinHeaderSize = 1 + SaltSize + 16 + 8 + 1

	flagExpires byte = 1 << 0
	flagDynamic byte = 1 << 1
	knownFlags       = flagExpires | flagDynamic
)

// Header is the authenticated, unencrypted part of a token.
type Header struct {
	Version   Version
	Salt      []byte
	Identity  uuid.UUID
	IssuedAt  time.Time
	ExpiresAt *time.Time
	// Dynamic reports that Identity was generated for this token alone.
	Dynamic bool
}

// Token is a parsed token.
type Token struct {
	Header
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

func (h Header) size() int {
	if h.ExpiresAt != nil {
		return MinHeaderSize + 8
	}
	return MinHeaderSize
}

func (h Header) validate() error {
	if !h.Version.Known() {
		return fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, byte(h.Version))
	}
	if len(h.Salt) != SaltSize {
		return errors.Join(ErrInvalidToken, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(h.Salt)))
	}
	return nil
}

// appendHeader appends the binary header to dst.
func (h Header) appendHeader(dst []byte) []byte {
	var flags byte
	if h.ExpiresAt != nil {
		flags |= flagExpires
	}
	if h.Dynamic {
		flags |= flagDynamic
	}

	dst = append(dst, byte(h.Version))
	dst = append(dst, h.Salt...)
	dst = append(dst, h.Identity[:]...)
	dst = binary.BigEndian.AppendUint64(dst, uint64(h.IssuedAt.Unix()))
	dst = append(dst, flags)
	if h.ExpiresAt != nil {
		dst = binary.BigEndian.AppendUint64(dst, uint64(h.ExpiresAt.Unix()))
	}
	return dst
}

// parseHeader reads a header from the start of data and returns the number
// of bytes consumed.
func parseHeader(data []byte) (Header, int, error) {
	if len(data) == 0 {
		return Header{}, 0, fmt.Errorf("%w: empty", ErrMalformedToken)
	}

	version := Version(data[0])
	if !version.Known() {
		return Header{}, 0, fmt.Errorf("%w: 0x%02x", ErrUnsupportedVersion, data[0])
	}

	if len(data) < MinHeaderSize {
		return Header{}, 0, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformedToken, len(data), MinHeaderSize)
	}

	h := Header{Version: version}
	off := 1

	h.Salt = append([]byte(nil), data[off:off+SaltSize]...)
	off += SaltSize

	copy(h.Identity[:], data[off:off+16])
	off += 16

	h.IssuedAt = time.Unix(int64(binary.BigEndian.Uint64(data[off:])), 0)
	off += 8

	flags := data[off]
	off++
	if flags&^knownFlags != 0 {
		return Header{}, 0, fmt.Errorf("%w: unknown flags 0x%02x", ErrMalformedToken, flags)
	}
	h.Dynamic = flags&flagDynamic != 0

	if flags&flagExpires != 0 {
		if len(data) < off+8 {
			return Header{}, 0, fmt.Errorf("%w: truncated expiry", ErrMalformedToken)
		}
		exp := time.Unix(int64(binary.BigEndian.Uint64(data[off:])), 0)
		h.ExpiresAt = &exp
		off += 8
	}

	return h, off, nil
}
