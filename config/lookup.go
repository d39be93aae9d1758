// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

// Required returns the raw value for key or a MissingKeyError.
func Required(m Map, key string) (string, error) {
	v, ok := m.Lookup(key)
	if !ok {
		return "", MissingKeyError{Key: key}
	}
	return v, nil
}

// RequiredParse looks up key and converts its raw value to a T.
func RequiredParse[T any](m Map, key string) (T, error) {
	raw, err := Required(m, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return ParseField[T](key, raw)
}

// OptionalParse looks up key and converts its raw value to a T.
// A missing key is not an error and results in an unset Value.
func OptionalParse[T any](m Map, key string) (Value[T], error) {
	raw, ok := m.Lookup(key)
	if !ok {
		return Value[T]{}, nil
	}
	v, err := ParseField[T](key, raw)
	if err != nil {
		return Value[T]{}, err
	}
	return ValueOf(v), nil
}
