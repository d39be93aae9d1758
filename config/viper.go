// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"github.com/v9107/nviron/config/key"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Viper represents a Source backed by an existing viper instance.
// Viper keys are already flat and dotted, and are lower cased by viper.
type Viper struct {
	v *viper.Viper
}

// FromViper returns a Source which will apply every key known to v.
func FromViper(v *viper.Viper) Viper {
	return Viper{v: v}
}

// Apply implements the Source interface.
func (src Viper) Apply(store Store) error {
	for _, k := range src.v.AllKeys() {
		val := src.v.Get(k)

		var s string
		switch x := val.(type) {
		case []any:
			var err error
			s, err = joinList(key.Chain{key.Name(k)}, x)
			if err != nil {
				return err
			}
		case []string:
			s = joinStrings(x)
		default:
			var err error
			s, err = cast.ToStringE(x)
			if err != nil {
				return UnsupportedValueError{Key: k, Value: x}
			}
		}

		err := store.Set(key.Name(k), s)
		if err != nil {
			return err
		}
	}
	return nil
}

// String names the source in LoadingErrors.
func (Viper) String() string {
	return "viper"
}
