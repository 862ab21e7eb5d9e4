package api

import (
	"bytes"
	"encoding/json"
)

type optionalState uint8

const (
	optionalUnset optionalState = iota
	optionalSet
	optionalCleared
)

// Optional is a patch field with three states: unset, set to a value, or
// explicitly cleared.
//
// Fields of this type must carry the `omitzero` JSON option. An unset field
// is then absent from the payload, a set field is encoded as its value and a
// cleared field is encoded as null.
type Optional[T any] struct {
	state optionalState
	value T
}

// Set returns an Optional holding value.
func Set[T any](value T) Optional[T] {
	return Optional[T]{state: optionalSet, value: value}
}

// Clear returns an Optional that encodes as an explicit null.
func Clear[T any]() Optional[T] {
	return Optional[T]{state: optionalCleared}
}

// SetOrClear returns Set(*value), or Clear when value is nil.
func SetOrClear[T any](value *T) Optional[T] {
	if value == nil {
		return Clear[T]()
	}

	return Set(*value)
}

// IsZero reports whether the field is unset. encoding/json consults it for
// the omitzero option.
func (o Optional[T]) IsZero() bool {
	return o.state == optionalUnset
}

// IsSet reports whether the field holds a value.
func (o Optional[T]) IsSet() bool {
	return o.state == optionalSet
}

// IsCleared reports whether the field was explicitly cleared.
func (o Optional[T]) IsCleared() bool {
	return o.state == optionalCleared
}

// Get returns the held value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.state == optionalSet
}

// MarshalJSON encodes a set field as its value and anything else as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.state != optionalSet {
		return []byte("null"), nil
	}

	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as cleared and any other value as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Clear[T]()

		return nil
	}

	var value T

	err := json.Unmarshal(data, &value)
	if err != nil {
		return err
	}

	*o = Set(value)

	return nil
}
