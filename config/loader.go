// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
)

// Loader converts a raw config Map into a T.
//
// Implementations should resolve fields in a fixed order and return the
// first error they encounter, without returning a partially populated T.
type Loader[T any] interface {
	FromMap(Map) (T, error)
}

// LoaderFunc is a functional implementation of the Loader interface.
type LoaderFunc[T any] func(Map) (T, error)

// FromMap implements the Loader interface.
func (f LoaderFunc[T]) FromMap(m Map) (T, error) {
	return f(m)
}

// Load merges the given sources, later ones overriding earlier ones,
// and hands the result to l. A failing source is reported as a LoadingError.
func Load[T any](l Loader[T], srcs ...Source) (T, error) {
	m := make(Map)
	for _, src := range srcs {
		err := src.Apply(m)
		if err != nil {
			var zero T
			return zero, LoadingError{
				Path:  sourceName(src),
				Cause: err,
			}
		}
	}
	return l.FromMap(m)
}

func sourceName(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
