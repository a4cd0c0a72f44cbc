package dto

import "encoding/json"

// Optional distinguishes a JSON field that was absent from one that was
// present, including an explicit null. Updates use this so "leave the
// field alone" and "clear the field" stay distinguishable.
type Optional[T any] struct {
	Set   bool // field appeared in the request body
	Valid bool // field carried a non-null value
	Value T
}

// UnmarshalJSON records presence before decoding the value.
// It is only invoked for fields present in the input.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
