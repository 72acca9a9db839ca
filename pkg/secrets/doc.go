// Package secrets derives per-token symmetric keys from a long-term secret,
// an identity UUID and a random per-token salt.
//
// Derivation runs in two stages. The secret is first stretched with
// Argon2id under the salt, so offline brute force of the secret from a
// captured token costs a full memory-hard evaluation per guess. The
// stretched value is then expanded with HKDF-SHA-256 using an info string
// that carries the identity, so two identities under the same secret and
// salt produce unrelated keys.
//
// # Architecture
//
//  1. Input validation: the secret must be non-empty and the salt at least
//     MinSaltSize bytes. Violations are reported as ErrInvalidInput.
//  2. Stretching: argon2.IDKey(secret, salt, Time, Memory, Threads, KeySize).
//  3. Expansion: HKDF(SHA-256, stretched, salt, "securepipe.token.v1" || identity).
//
// Intermediate key material is zeroed before Derive returns. Callers own the
// returned key and should release it with Wipe once the AEAD operation is done.
//
// # Usage
//
//	import "github.com/dmitrymomot/securepipe/pkg/secrets"
//
//	salt, _ := secrets.GenerateSalt()
//	key, err := secrets.Derive([]byte("long-term-secret"), identity, salt)
//	if err != nil {
//	    // handle error
//	}
//	defer secrets.Wipe(key)
//
// # Parameters
//
// DefaultParams follows the OWASP minimum for Argon2id (19 MiB, two passes,
// one lane). Encoder and decoder must agree on the parameters: they are not
// embedded in tokens.
//
// # Error Handling
//
// All failures wrap ErrInvalidInput or ErrKeyDerivationFailed and can be
// matched with errors.Is.
package secrets
