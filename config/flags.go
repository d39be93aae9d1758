// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"strings"

	"github.com/v9107/nviron/config/key"

	"github.com/spf13/pflag"
)

// Flags represents a Source backed by command line flags. Only flags
// which were explicitly set are applied, so defaults never override
// values coming from earlier sources.
type Flags struct {
	fs *pflag.FlagSet
}

// FromFlags returns a Source which will apply the changed flags of fs
// using the flag names as keys.
func FromFlags(fs *pflag.FlagSet) Flags {
	return Flags{fs: fs}
}

// Apply implements the Source interface.
func (src Flags) Apply(store Store) error {
	var err error
	src.fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			v = joinStrings(sv.GetSlice())
		}
		err = store.Set(key.Name(f.Name), v)
	})
	return err
}

// String names the source in LoadingErrors.
func (Flags) String() string {
	return "flags"
}

func joinStrings(ss []string) string {
	return strings.Join(ss, ListSeparator)
}
