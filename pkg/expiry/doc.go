// Package expiry validates token timestamps against the current time.
//
// A Policy carries a tolerance that absorbs clock skew between the issuing and
// the validating side. The tolerance belongs to the validator; it is never
// stored in a token.
//
// Rules, evaluated at whole-second precision:
//
//   - A token without an expiry never expires.
//   - A token with an expiry is valid while now <= expires_at + tolerance,
//     otherwise Validate returns ErrExpired.
//   - A token issued more than tolerance in the future is rejected with
//     ErrNotYetValid, guarding against manipulated clocks.
package expiry
