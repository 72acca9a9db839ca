package payload_test

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/securepipe/pkg/payload"
)

type role string

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   payload.Value
		want payload.Value
	}{
		{"string", "Hello, World!", "Hello, World!"},
		{"empty string", "", ""},
		{"unicode", "Hello 世界 🌍", "Hello 世界 🌍"},
		{"named string", role("admin"), "admin"},
		{"int", 42, "42"},
		{"negative int", int64(-7), "-7"},
		{"uint", uint16(65535), "65535"},
		{"float", 5.0, "5"},
		{"fraction", 3.25, "3.25"},
		{"float32", float32(0.1), "0.1"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{
			name: "list",
			in:   []any{1, 2, 3, "four", 5.0},
			want: []any{"1", "2", "3", "four", "5"},
		},
		{
			name: "typed slice",
			in:   []string{"read", "write"},
			want: []any{"read", "write"},
		},
		{
			name: "array",
			in:   [2]int{1, 2},
			want: []any{"1", "2"},
		},
		{
			name: "empty list",
			in:   []any{},
			want: []any{},
		},
		{
			name: "map",
			in:   map[string]any{"name": "John", "age": 30},
			want: map[string]any{"name": "John", "age": "30"},
		},
		{
			name: "typed map",
			in:   map[string]int{"a": 1},
			want: map[string]any{"a": "1"},
		},
		{
			name: "nested",
			in: map[string]any{
				"user_id":     123,
				"role":        "admin",
				"permissions": []any{"read", "write"},
				"meta":        map[string]any{"active": true},
			},
			want: map[string]any{
				"user_id":     "123",
				"role":        "admin",
				"permissions": []any{"read", "write"},
				"meta":        map[string]any{"active": "true"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := payload.Serialize(tt.in)
			require.NoError(t, err)

			got, err := payload.Deserialize(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeDeterministic(t *testing.T) {
	t.Parallel()

	a := map[string]any{"z": 1, "a": 2, "m": []any{"x", map[string]any{"k2": 1, "k1": 2}}}
	b := map[string]any{"m": []any{"x", map[string]any{"k1": 2, "k2": 1}}, "a": 2, "z": 1}

	first, err := payload.Serialize(a)
	require.NoError(t, err)

	for range 20 {
		again, err := payload.Serialize(b)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSerializeUnsupported(t *testing.T) {
	t.Parallel()

	type custom struct{ Name string }
	n := 1

	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"bytes", []byte("blob")},
		{"byte array", [4]byte{1, 2, 3, 4}},
		{"struct", custom{Name: "x"}},
		{"pointer", &n},
		{"nil pointer", (*int)(nil)},
		{"complex", complex(1, 2)},
		{"func", func() {}},
		{"channel", make(chan int)},
		{"int keys", map[int]string{1: "a"}},
		{"nil in list", []any{"a", nil}},
		{"nil in map", map[string]any{"a": nil}},
		{"nested struct", map[string]any{"a": []any{custom{}}}},
		{"invalid utf-8", "\xff"},
		{"invalid utf-8 key", map[string]any{"\xff": "v"}},
		{"invalid utf-8 in list", []any{"ok", "\xfe\xff"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := payload.Serialize(tt.in)
			require.Nil(t, data)
			require.ErrorIs(t, err, payload.ErrUnsupportedType)
		})
	}
}

func TestNestingLimit(t *testing.T) {
	t.Parallel()

	nest := func(levels int) any {
		var v any = "leaf"
		for range levels {
			v = []any{v}
		}
		return v
	}

	data, err := payload.Serialize(nest(payload.MaxDepth))
	require.NoError(t, err)
	_, err = payload.Deserialize(data)
	require.NoError(t, err)

	_, err = payload.Serialize(nest(payload.MaxDepth + 1))
	require.ErrorIs(t, err, payload.ErrNestingTooDeep)
}

func TestDeserializeMalformed(t *testing.T) {
	t.Parallel()

	integer, err := cbor.Marshal(42)
	require.NoError(t, err)
	intKeys, err := cbor.Marshal(map[int]string{1: "a"})
	require.NoError(t, err)
	bytesItem, err := cbor.Marshal([]byte{1, 2})
	require.NoError(t, err)
	boolInList, err := cbor.Marshal([]any{"a", true})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", []byte{0x82, 0x61}},
		{"trailing bytes", []byte{0x61, 'a', 0x61}},
		{"integer item", integer},
		{"integer keys", intKeys},
		{"byte string", bytesItem},
		{"bool in list", boolInList},
		{"duplicate keys", []byte{0xa2, 0x61, 'a', 0x61, 'x', 0x61, 'a', 0x61, 'y'}},
		{"indefinite length", []byte{0x9f, 0x61, 'a', 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := payload.Deserialize(tt.data)
			require.Nil(t, v)
			require.ErrorIs(t, err, payload.ErrMalformedPayload)
		})
	}
}
