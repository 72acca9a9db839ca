package securepipe

import "github.com/google/uuid"

// Mode names how an instance handles identities.
type Mode string

const (
	// ModeShared binds every token to one identity fixed at construction.
	ModeShared Mode = "shared"
	// ModeDynamic generates a fresh identity for every token.
	ModeDynamic Mode = "dynamic"
)

// Binding is the identity binding of an instance: either Shared or Dynamic.
type Binding interface {
	Mode() Mode
	binding()
}

// Shared binds an instance to a single identity.
type Shared struct {
	Identity uuid.UUID
}

func (Shared) Mode() Mode { return ModeShared }
func (Shared) binding()   {}

// Dynamic gives every token its own identity.
type Dynamic struct{}

func (Dynamic) Mode() Mode { return ModeDynamic }
func (Dynamic) binding()   {}
