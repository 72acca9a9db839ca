// Package clock provides a tiny time abstraction.
//
// Token issuance and expiry checks read the time through the Clocker
// interface instead of calling time.Now directly, so tests can move time
// forward deterministically with Mock instead of sleeping.
package clock
