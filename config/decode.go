// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Decode populates a T from m using struct tags instead of a generated builder.
//
// Keys are taken from `env` tags and defaults from `envDefault` tags. A field
// without a default is required. Only the first failing field is reported,
// as a MissingKeyError or a ParseError.
//
// A key which is present but empty is converted like any other raw value,
// the same as a generated loader does, so its default is not applied.
//
//	type Settings struct {
//		Name      string `env:"name"`
//		ServerEnv string `env:"server_env" envDefault:"local"`
//		Version   uint64 `env:"version"`
//	}
func Decode[T any](m Map) (T, error) {
	var v T
	var zero T
	err := env.ParseWithOptions(&v, env.Options{
		Environment:     m,
		RequiredIfNoDef: true,
	})
	if err != nil {
		return zero, translateDecodeError(reflect.TypeOf(v), m, err)
	}

	err = decodeEmpty(reflect.ValueOf(&v).Elem(), m)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// decodeEmpty converts the present but empty keys of the top level fields of rv.
// env treats those keys as unset, substituting their default or leaving them zero.
func decodeEmpty(rv reflect.Value, m Map) error {
	if rv.Kind() != reflect.Struct {
		return nil
	}
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		k, _, _ := strings.Cut(sf.Tag.Get("env"), ",")
		if len(k) == 0 || k == "-" {
			continue
		}
		raw, ok := m.Lookup(k)
		if !ok || len(raw) > 0 {
			continue
		}
		fv := rv.Field(i)
		fv.Set(reflect.Zero(fv.Type()))
		err := decodeRaw(k, raw, fv.Addr().Interface())
		if err != nil {
			return err
		}
	}
	return nil
}

func translateDecodeError(t reflect.Type, m Map, err error) error {
	errs := []error{err}
	var agg env.AggregateError
	if errors.As(err, &agg) && len(agg.Errors) > 0 {
		errs = agg.Errors
	}
	first := errs[0]

	var notSet env.VarIsNotSetError
	if errors.As(first, &notSet) {
		return MissingKeyError{Key: notSet.Key}
	}

	var perr env.ParseError
	if errors.As(first, &perr) {
		k, def := fieldKey(t, perr.Name)
		raw, ok := m.Lookup(k)
		if !ok {
			raw = def
		}
		return ParseError{
			Key:   k,
			Value: raw,
			Cause: perr.Err,
		}
	}
	return first
}

// fieldKey returns the env key and default of the named top level field.
func fieldKey(t reflect.Type, name string) (string, string) {
	if t.Kind() != reflect.Struct {
		return name, ""
	}
	sf, ok := t.FieldByName(name)
	if !ok {
		return name, ""
	}
	k, _, _ := strings.Cut(sf.Tag.Get("env"), ",")
	if len(k) == 0 {
		return name, sf.Tag.Get("envDefault")
	}
	return k, sf.Tag.Get("envDefault")
}
