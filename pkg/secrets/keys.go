package secrets

import (
	"crypto/rand"
	"errors"
)

const (
	// KeySize is the size of every derived key and of generated secrets.
	KeySize = 32 // 256 bits

	// SaltSize is the size of salts produced by GenerateSalt.
	SaltSize = 16

	// MinSaltSize is the shortest salt Derive accepts.
	MinSaltSize = 16
)

// GenerateKey creates a new random 32-byte secret suitable for a SecurePipe instance.
func GenerateKey() ([]byte, error) {
	return randomBytes(KeySize)
}

// GenerateSalt returns SaltSize fresh random bytes.
func GenerateSalt() ([]byte, error) {
	return randomBytes(SaltSize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return b, nil
}

// Wipe zeroes b in place. Use it on derived keys once they are no longer needed.
func Wipe(b []byte) {
	clearBytes(b)
}

// clearBytes securely zeros out a byte slice to remove sensitive data from memory.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
