// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package configtmpl provides template functions for use in templated .env files.
//
//	DATABASE_URL={{ env "DATABASE_URL" | default "postgres://localhost:5432/app" }}
//	API_KEY={{ required "API_KEY" }}
package configtmpl

import (
	"fmt"
	"os"
	"reflect"

	"github.com/v9107/nviron/config"
)

// LookupFunc reports the value of an environment variable and whether it was set.
type LookupFunc func(key string) (string, bool)

// Option customizes the funcs returned by Options.
type Option func(*funcs)

// WithLookup replaces os.LookupEnv as the source of "env" and "required".
func WithLookup(f LookupFunc) Option {
	return func(fs *funcs) {
		fs.lookup = f
	}
}

type funcs struct {
	lookup LookupFunc
}

// UnsetVariableError is returned by the "required" func.
type UnsetVariableError struct {
	Name string
}

func (e UnsetVariableError) Error() string {
	return fmt.Sprintf("environment variable is not set: %s", e.Name)
}

// Options registers "env", "required" and "default" for use with
// config.FileTemplate or config.RenderTemplate.
func Options(opts ...Option) []config.TemplateOption {
	fs := &funcs{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(fs)
	}
	return []config.TemplateOption{
		config.TemplateFunc("env", fs.env),
		config.TemplateFunc("required", fs.required),
		config.TemplateFunc("default", Default),
	}
}

func (fs *funcs) env(name string) string {
	v, _ := fs.lookup(name)
	return v
}

func (fs *funcs) required(name string) (string, error) {
	v, ok := fs.lookup(name)
	if !ok || v == "" {
		return "", UnsetVariableError{Name: name}
	}
	return v, nil
}

// Default returns def when v is nil or the zero value of its type.
// The argument order allows piping: {{ env "PORT" | default "8080" }}.
func Default(def, v any) any {
	if v == nil || reflect.ValueOf(v).IsZero() {
		return def
	}
	return v
}
