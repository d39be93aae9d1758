// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config loads strongly typed settings from .env style KEY=VALUE text.
//
// Raw text is parsed into a [Map] which a [Loader] turns into a settings struct.
// Loaders are usually generated by cmd/envbuilder, which emits a builder with one
// [Field] per struct field, but any type with a FromMap method will do.
package config

import (
	"fmt"
	"maps"

	"github.com/v9107/nviron/config/key"
)

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, string) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// Map is the raw form of a config: config key to unparsed value.
// It is both a [Store] and a [Source].
type Map map[string]string

// EmptyKeyError occurs when a source tries to set a value without a key.
type EmptyKeyError struct {
	Value string
}

// Error implements the error interface.
func (e EmptyKeyError) Error() string {
	return fmt.Sprintf("attempted to set config value to an empty key: %q", e.Value)
}

// Set implements the Store interface. Setting an existing key overrides it.
func (m Map) Set(k key.Keyer, v string) error {
	name := k.Key()
	if len(name) == 0 {
		return EmptyKeyError{Value: v}
	}
	m[name] = v
	return nil
}

// Apply implements the Source interface.
func (m Map) Apply(store Store) error {
	for k, v := range m {
		err := store.Set(key.Name(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the raw value for k and whether it was present.
func (m Map) Lookup(k string) (string, bool) {
	v, ok := m[k]
	return v, ok
}

// Clone returns a shallow copy of m which is never nil.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	maps.Copy(c, m)
	return c
}

// Read merges the given sources into a single Map.
// Subsequent sources override previous sources.
func Read(srcs ...Source) (Map, error) {
	m := make(Map)
	for _, src := range srcs {
		err := src.Apply(m)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
