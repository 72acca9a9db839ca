// Package payload serializes the restricted value model carried inside
// SecurePipe tokens.
//
// Accepted values are text, numbers, booleans, ordered sequences (slices and
// arrays) and mappings with text keys, nested up to MaxDepth levels. Anything
// else, including nil, byte slices, structs and pointers, fails with
// ErrUnsupportedType.
//
// Numbers and booleans are written as their text form, so they come back as
// strings: 42 decodes as "42", true as "true", 5.0 as "5". The codec
// guarantees lossless bytes, not lossless types, for scalars; callers re-parse
// with strconv when they need the original type.
//
// The wire format is CBOR with Core Deterministic Encoding (RFC 8949 §4.2).
// Map keys are sorted by the encoder, so the same logical value always
// produces identical bytes. Insertion order is not preserved.
//
// # Usage
//
//	b, err := payload.Serialize(map[string]any{"user_id": 123, "role": "admin"})
//	if err != nil {
//	    // handle error
//	}
//	v, err := payload.Deserialize(b)
//	// v == map[string]any{"role": "admin", "user_id": "123"}
package payload
