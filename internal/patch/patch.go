// Package patch provides presence-tagged values for partial updates.
//
// A Field records whether a JSON request body contained the key at all, so
// an update applies exactly the fields the client sent. An explicit null is
// "present with the zero value".
package patch

import "encoding/json"

// Field is an optional request value that remembers whether it was sent.
type Field[T any] struct {
	Value T
	Set   bool
}

// Of returns a Field that is present with v.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key is
// present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON implements json.Marshaler.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present returns the value and whether it was sent.
func (f Field[T]) Present() (interface{}, bool) {
	return f.Value, f.Set
}

// Apply copies the value into dst when the field was sent and reports
// whether it did.
func (f Field[T]) Apply(dst *T) bool {
	if !f.Set {
		return false
	}
	*dst = f.Value
	return true
}

// Presence is implemented by every Field instantiation. The validator
// package uses it to validate the wrapped value.
type Presence interface {
	Present() (interface{}, bool)
}
