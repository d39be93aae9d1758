// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

// Field is a single named config entry destined for a struct field of type T.
//
// A Field either holds a concrete value, a raw value awaiting conversion or
// nothing at all. Resolving an empty Field only succeeds if it's optional.
type Field[T any] struct {
	key      string
	raw      Value[string]
	val      Value[T]
	optional bool
}

// NewField returns a Field holding the concrete value v.
func NewField[T any](key string, v T) Field[T] {
	return Field[T]{
		key: key,
		val: ValueOf(v),
	}
}

// EmptyField returns a required Field which holds no value yet.
func EmptyField[T any](key string) Field[T] {
	return Field[T]{key: key}
}

// OptionalField returns a Field which resolves to an unset Value
// unless a value is given to it later.
func OptionalField[T any](key string) Field[T] {
	return Field[T]{key: key, optional: true}
}

// DefaultField returns an optional Field whose raw value is def until
// another value is given to it. def is converted when the field is resolved,
// so an unconvertible default fails with a ParseError.
func DefaultField[T any](key, def string) Field[T] {
	return Field[T]{key: key, raw: ValueOf(def), optional: true}
}

// Key returns the config key of the field.
func (f Field[T]) Key() string {
	return f.key
}

// IsOptional reports whether the field may be left without a value.
func (f Field[T]) IsOptional() bool {
	return f.optional
}

// IsSet reports whether the field holds either a concrete or a raw value.
func (f Field[T]) IsSet() bool {
	return f.val.IsSet() || f.raw.IsSet()
}

// Value resolves the field.
//
// A concrete value is returned as is and a raw value is converted with ParseField.
// An empty field resolves to an unset Value if it's optional, otherwise
// a MissingKeyError is returned.
func (f Field[T]) Value() (Value[T], error) {
	if f.val.IsSet() {
		return f.val, nil
	}

	raw, ok := f.raw.Value()
	if !ok {
		if f.optional {
			return Value[T]{}, nil
		}
		return Value[T]{}, MissingKeyError{Key: f.key}
	}

	v, err := ParseField[T](f.key, raw)
	if err != nil {
		return Value[T]{}, err
	}
	return ValueOf(v), nil
}

// FieldBuilder collects the raw value and policy for a single Field
// and validates them when building it.
type FieldBuilder[T any] struct {
	key      string
	raw      Value[string]
	def      Value[string]
	optional bool
}

// NewFieldBuilder returns a FieldBuilder for a required field.
func NewFieldBuilder[T any](key string) FieldBuilder[T] {
	return FieldBuilder[T]{key: key}
}

// WithValue sets the raw value of the field.
func (b FieldBuilder[T]) WithValue(raw string) FieldBuilder[T] {
	b.raw = ValueOf(raw)
	return b
}

// WithLookup sets the raw value of the field from m, if m has the field's key.
func (b FieldBuilder[T]) WithLookup(m Map) FieldBuilder[T] {
	raw, ok := m.Lookup(b.key)
	if !ok {
		return b
	}
	return b.WithValue(raw)
}

// WithOptional marks whether the field may be left without a value.
func (b FieldBuilder[T]) WithOptional(optional bool) FieldBuilder[T] {
	b.optional = optional
	return b
}

// WithDefault sets a raw value to fall back on when no other raw
// value is given. A field with a default is always optional.
func (b FieldBuilder[T]) WithDefault(raw string) FieldBuilder[T] {
	b.def = ValueOf(raw)
	b.optional = true
	return b
}

// Build validates and converts the collected raw value.
//
// A required field without a raw value fails with a MissingKeyError and a
// raw value which can not be converted to T fails with a ParseError.
func (b FieldBuilder[T]) Build() (Field[T], error) {
	raw := b.raw
	if !raw.IsSet() {
		raw = b.def
	}

	f := Field[T]{
		key:      b.key,
		raw:      raw,
		optional: b.optional,
	}
	v, err := f.Value()
	if err != nil {
		return Field[T]{}, err
	}
	f.val = v
	return f, nil
}
