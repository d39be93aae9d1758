// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"strings"

	"github.com/v9107/nviron/config/key"

	"github.com/spf13/cast"
)

// UnsupportedValueError occurs when a nested source holds a value
// which has no raw string form, e.g. a list of objects.
type UnsupportedValueError struct {
	Key   string
	Value any
}

// Error implements the error interface.
func (e UnsupportedValueError) Error() string {
	return fmt.Sprintf("config key %q holds a value with no string form: %T", e.Key, e.Value)
}

// walkTree recursively walks a decoded document, setting every leaf on
// store under the chain of keys leading to it.
func walkTree(m map[string]any, store Store, chain key.Chain) error {
	for k, v := range m {
		err := walkValue(v, store, chain.Append(key.Name(k)))
		if err != nil {
			return err
		}
	}
	return nil
}

func walkValue(v any, store Store, chain key.Chain) error {
	switch x := v.(type) {
	case map[string]any:
		return walkTree(x, store, chain)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[cast.ToString(k)] = v
		}
		return walkTree(m, store, chain)
	case []any:
		s, err := joinList(chain, x)
		if err != nil {
			return err
		}
		return store.Set(chain, s)
	default:
		s, err := cast.ToStringE(x)
		if err != nil {
			return UnsupportedValueError{Key: chain.Key(), Value: x}
		}
		return store.Set(chain, s)
	}
}

func joinList(chain key.Chain, xs []any) (string, error) {
	ss := make([]string, len(xs))
	for i, x := range xs {
		s, err := cast.ToStringE(x)
		if err != nil {
			return "", UnsupportedValueError{Key: chain.Key(), Value: x}
		}
		ss[i] = s
	}
	return strings.Join(ss, ListSeparator), nil
}
