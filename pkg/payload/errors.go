package payload

import "errors"

var (
	ErrUnsupportedType  = errors.New("unsupported payload type")
	ErrNestingTooDeep   = errors.New("payload nesting too deep")
	ErrMalformedPayload = errors.New("malformed payload encoding")
)
