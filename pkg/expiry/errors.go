package expiry

import "errors"

var (
	ErrExpired           = errors.New("token has expired")
	ErrNotYetValid       = errors.New("token not valid yet")
	ErrNegativeTolerance = errors.New("tolerance must not be negative")
)
