package expiry

import (
	"fmt"
	"time"
)

// DefaultTolerance is the recommended clock-skew allowance.
const DefaultTolerance = 30 * time.Second

// Policy validates issued-at and expires-at timestamps.
type Policy struct {
	Tolerance time.Duration
}

// New returns a Policy with the given tolerance.
func New(tolerance time.Duration) (Policy, error) {
	if tolerance < 0 {
		return Policy{}, ErrNegativeTolerance
	}
	return Policy{Tolerance: tolerance}, nil
}

// Validate checks the timestamps against now. A nil expiresAt means the
// token never expires.
func (p Policy) Validate(issuedAt time.Time, expiresAt *time.Time, now time.Time) error {
	// Token timestamps carry whole seconds only.
	now = time.Unix(now.Unix(), 0)

	if issuedAt.After(now.Add(p.Tolerance)) {
		return fmt.Errorf("%w: issued at %s", ErrNotYetValid, issuedAt.UTC().Format(time.RFC3339))
	}

	if expiresAt == nil {
		return nil
	}

	if now.After(expiresAt.Add(p.Tolerance)) {
		return fmt.Errorf("%w: expired at %s", ErrExpired, expiresAt.UTC().Format(time.RFC3339))
	}

	return nil
}
