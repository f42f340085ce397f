package models

import (
	"bytes"
	"encoding/json"
)

// Field is a tri-state JSON value: unset (key absent), null, or a value.
// Use it with the `omitzero` tag so unset fields are not marshaled.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Value[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

func Null[T any]() Field[T] { return Field[T]{Set: true, Null: true} }

func (f Field[T]) IsZero() bool { return !f.Set }

// Present reports a non-null value.
func (f Field[T]) Present() bool { return f.Set && !f.Null }

// Ptr returns nil for null, a pointer to the value otherwise.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}

// UnmarshalJSON só é chamado quando a chave existe no corpo.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ValidationValue feeds validator custom type funcs; nil means "nothing to validate".
// The value goes out as a pointer so zero values (0, "") still hit min/max rules.
func (f Field[T]) ValidationValue() any {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}
