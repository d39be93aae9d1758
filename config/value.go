// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

// Value represents a config value which may or may not be set. The zero
// Value is unset, which is distinct from being set to the zero value of T.
type Value[T any] struct {
	v   T
	set bool
}

// ValueOf returns a set Value holding v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// Value returns the underlying value and whether it was set.
func (v Value[T]) Value() (T, bool) {
	return v.v, v.set
}

// IsSet reports whether v holds a value.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Or returns the underlying value or def if v is unset.
func (v Value[T]) Or(def T) T {
	if !v.set {
		return def
	}
	return v.v
}

// OrZero returns the underlying value or the zero value of T if v is unset.
func (v Value[T]) OrZero() T {
	return v.v
}
