// Package securepipe turns structured payloads into opaque, tamper-evident,
// optionally expiring text tokens bound to a secret and an identity UUID, and
// reverses the transform given the same secret and identity.
//
// Key Features:
//
//   - Per-token keys: Argon2id + HKDF over (secret, identity, random salt)
//   - Authenticated encryption: AES-256-GCM (default) or XChaCha20-Poly1305
//   - Expiry with a clock-skew tolerance owned by the decoding instance
//   - Uniform decrypt failure: callers cannot tell a wrong key from an
//     expired or tampered token
//   - Metadata inspection without the secret
//
// Basic Usage:
//
//	pipe, err := securepipe.NewString("my-super-secret-key",
//		securepipe.WithIdentityString("a1b2c3d4-e5f6-7890-1234-567890abcdef"),
//	)
//	if err != nil {
//		return err
//	}
//
//	tok, err := pipe.Encrypt(map[string]any{"user_id": 123, "role": "admin"},
//		securepipe.ExpiresIn(time.Hour),
//	)
//
//	v, err := pipe.Decrypt(tok)
//	if errors.Is(err, securepipe.ErrDecryptFailed) {
//		// wrong key, wrong identity, tampered, expired or malformed
//	}
//	// v == map[string]any{"role": "admin", "user_id": "123"}
//
// Identity Modes:
//
// An instance is bound to its identity once, at construction. WithIdentity
// selects shared mode: every token carries that identity and only tokens for
// it are accepted. Without it the instance runs in dynamic mode: each token
// gets a fresh random identity that is embedded in the token and used for key
// derivation on decrypt. Tokens never decrypt across modes.
//
// Payload Types:
//
// Payloads are limited to text, numbers, booleans, sequences and mappings with
// text keys. Numbers and booleans come back as text ("42", "true"), so callers
// re-parse them with strconv. See package payload.
//
// Diagnostics:
//
// Decrypt always reports ErrDecryptFailed. The underlying cause is available
// only through WithLogger (debug level) and WithFailureHook, which receives a
// *DecryptError with the failing Stage.
//
// Concurrency:
//
// A SecurePipe is immutable after New and safe for concurrent use.
package securepipe
