// Package token assembles, parses, seals and opens SecurePipe tokens.
//
// A token is the base64url (unpadded) text form of a fixed-order binary
// structure:
//
//	[version:1][salt:16][identity:16][issued_at:8][flags:1][expires_at:8?]
//	[nonce:N][tag:16][ciphertext:*]
//
// issued_at and expires_at are big-endian epoch seconds. flags bit 0 marks a
// present expires_at, bit 1 marks an identity generated per token (dynamic
// mode); every other bit must be zero. N depends on the version.
//
// The header (version through expires_at) is the additional authenticated
// data of the AEAD, so altering any header byte fails authentication just like
// altering the ciphertext.
//
// # Versions
//
//   - V1: AES-256-GCM with a random 12-byte nonce.
//   - V2: XChaCha20-Poly1305 with a random 24-byte nonce.
//
// Decode rejects unknown versions with ErrUnsupportedVersion so the format can
// evolve without breaking older tokens.
//
// # Usage
//
//	tok, err := token.Seal(key, token.Header{
//	    Version:  token.V1,
//	    Salt:     salt,
//	    Identity: identity,
//	    IssuedAt: time.Now(),
//	}, plaintext)
//	s, err := token.Encode(tok)
//
//	parsed, err := token.Decode(s)
//	plaintext, err := token.Open(key, parsed)
//
// Tag verification is performed by the AEAD in constant time and no
// plaintext is returned when it fails.
package token
