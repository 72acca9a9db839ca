package payload

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
)

// MaxDepth is the maximum number of nested sequences and mappings.
const MaxDepth = 32

// Value is a payload in the restricted value model.
type Value = any

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("payload: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		MaxNestedLevels: MaxDepth + 1,
	}.DecMode()
	if err != nil {
		panic("payload: CBOR decoder initialization failed: " + err.Error())
	}
}

// Serialize encodes v canonically. Scalars other than text are stored as text.
func Serialize(v Value) ([]byte, error) {
	normalized, err := normalize(reflect.ValueOf(v), 0)
	if err != nil {
		return nil, err
	}

	data, err := encMode.Marshal(normalized)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedType, err)
	}
	return data, nil
}

// Deserialize decodes bytes produced by Serialize. The result only contains
// string, []any and map[string]any values.
func Deserialize(data []byte) (Value, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	if err := verify(v, 0); err != nil {
		return nil, err
	}
	return v, nil
}

func normalize(rv reflect.Value, depth int) (any, error) {
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}

	switch rv.Kind() {
	case reflect.String:
		if !utf8.ValidString(rv.String()) {
			return nil, fmt.Errorf("%w: invalid UTF-8 text", ErrUnsupportedType)
		}
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
		}
		return normalize(rv.Elem(), depth)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, fmt.Errorf("%w: binary data %s", ErrUnsupportedType, rv.Type())
		}
		if depth >= MaxDepth {
			return nil, ErrNestingTooDeep
		}
		out := make([]any, rv.Len())
		for i := range out {
			item, err := normalize(rv.Index(i), depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key %s", ErrUnsupportedType, rv.Type().Key())
		}
		if depth >= MaxDepth {
			return nil, ErrNestingTooDeep
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if !utf8.ValidString(iter.Key().String()) {
				return nil, fmt.Errorf("%w: invalid UTF-8 map key", ErrUnsupportedType)
			}
			item, err := normalize(iter.Value(), depth+1)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

func verify(v any, depth int) error {
	switch x := v.(type) {
	case string:
		return nil
	case []any:
		if depth >= MaxDepth {
			return ErrNestingTooDeep
		}
		for _, item := range x {
			if err := verify(item, depth+1); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if depth >= MaxDepth {
			return ErrNestingTooDeep
		}
		for _, item := range x {
			if err := verify(item, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unexpected %T", ErrMalformedPayload, v)
	}
}
