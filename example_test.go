package securepipe_test

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/securepipe"
)

// Example_sharedIdentity issues and reads a token bound to a fixed identity.
func Example_sharedIdentity() {
	pipe, err := securepipe.NewString("my-super-secret-key",
		securepipe.WithIdentityString("a1b2c3d4-e5f6-7890-1234-567890abcdef"),
	)
	if err != nil {
		panic(err)
	}

	tok, err := pipe.Encrypt(map[string]any{
		"user_id":     123,
		"role":        "admin",
		"permissions": []string{"read", "write"},
	}, securepipe.ExpiresIn(time.Hour))
	if err != nil {
		panic(err)
	}

	v, err := pipe.Decrypt(tok)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)

	// Output: map[permissions:[read write] role:admin user_id:123]
}

// Example_tokenInfo reads token metadata without the secret.
func Example_tokenInfo() {
	pipe, err := securepipe.NewString("my-super-secret-key")
	if err != nil {
		panic(err)
	}

	tok, err := pipe.Encrypt("sensitive information", securepipe.ExpiresIn(10*time.Minute))
	if err != nil {
		panic(err)
	}

	info, err := securepipe.Inspect(tok)
	if err != nil {
		panic(err)
	}
	fmt.Println(info.Mode, info.Version, info.ExpiresAt.Sub(info.IssuedAt))

	// Output: dynamic aes-256-gcm 10m0s
}
