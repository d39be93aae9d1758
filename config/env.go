// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/v9107/nviron/config/key"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// EnvOption represents options for configuring an Env source.
type EnvOption func(*Env)

// EnvPrefix only applies variables starting with prefix and strips
// the prefix from their keys, e.g. "APP_" turns APP_NAME into NAME.
func EnvPrefix(prefix string) EnvOption {
	return func(e *Env) {
		e.prefix = prefix
	}
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process.
func FromEnv(opts ...EnvOption) Env {
	e := Env{
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		k, ok = strings.CutPrefix(k, src.prefix)
		if !ok || len(k) == 0 {
			continue
		}
		err := store.Set(key.Name(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}

// String names the source in LoadingErrors.
func (Env) String() string {
	return "env"
}
