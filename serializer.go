package dirstore

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
)

// Serialization errors.
var (
	ErrEncode   = errors.New("cannot encode value")
	ErrDecode   = errors.New("cannot decode data")
	ErrNilValue = errors.New("data decoded to nil value")
)

// Serializer converts between a typed value and its stored bytes.
//
// Implementations must be stateless and satisfy the round-trip law:
// Decode(Encode(v)) == v for every v in the supported domain.
type Serializer[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// SerializerFunc adapts an encode/decode closure pair into a
// [Serializer]. Any concrete codec satisfying the contract for T can
// be wrapped this way without a named type.
type SerializerFunc[T any] struct {
	EncodeFunc func(T) ([]byte, error)
	DecodeFunc func([]byte) (T, error)
}

func (s SerializerFunc[T]) Encode(value T) ([]byte, error) {
	return s.EncodeFunc(value)
}

func (s SerializerFunc[T]) Decode(data []byte) (T, error) {
	return s.DecodeFunc(data)
}

// Bytes returns the passthrough serializer: stored bytes are the value.
func Bytes() Serializer[[]byte] {
	return SerializerFunc[[]byte]{
		EncodeFunc: func(value []byte) ([]byte, error) { return value, nil },
		DecodeFunc: func(data []byte) ([]byte, error) { return data, nil },
	}
}

// envelope wraps the stored value in a single named field so top-level
// scalars (strings, numbers, bools) serialize uniformly with compound
// values and the stored JSON is always an object.
type envelope[T any] struct {
	Value T `json:"value"`
}

// JSON returns a serializer that stores values as JSON.
//
// This is the general-purpose codec: it handles arbitrary structs,
// maps, slices, and primitives, with the usual encoding/json caveats
// (exported fields only, unordered maps).
func JSON[T any]() Serializer[T] {
	return SerializerFunc[T]{
		EncodeFunc: func(value T) ([]byte, error) {
			data, err := json.Marshal(envelope[T]{Value: value})
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEncode, err)
			}

			return data, nil
		},
		DecodeFunc: func(data []byte) (T, error) {
			var env envelope[T]

			err := json.Unmarshal(data, &env)
			if err != nil {
				var zero T

				return zero, fmt.Errorf("%w: %w", ErrDecode, err)
			}

			return env.Value, nil
		},
	}
}

// Gob returns a serializer that stores values as gob-encoded object
// graphs. Use it for Go-native interop where JSON loses information
// (time precision, integer width, cyclic-free pointer graphs).
//
// Decoding an empty archive fails with [ErrNilValue].
func Gob[T any]() Serializer[T] {
	return SerializerFunc[T]{
		EncodeFunc: func(value T) ([]byte, error) {
			var buf bytes.Buffer

			err := gob.NewEncoder(&buf).Encode(envelope[T]{Value: value})
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEncode, err)
			}

			return buf.Bytes(), nil
		},
		DecodeFunc: func(data []byte) (T, error) {
			var env envelope[T]

			if len(data) == 0 {
				var zero T

				return zero, fmt.Errorf("%w: %w", ErrDecode, ErrNilValue)
			}

			err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env)
			if err != nil {
				var zero T

				return zero, fmt.Errorf("%w: %w", ErrDecode, err)
			}

			return env.Value, nil
		},
	}
}
