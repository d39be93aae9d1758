// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their config key instead of their Go name
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("env"), ",")
		if name == "-" {
			return ""
		}
		if len(name) == 0 {
			return sf.Name
		}
		return name
	})
	return v
})

// Validated wraps l so every loaded T is also checked against its
// `validate` struct tags, e.g. `validate:"oneof=local dev prod"`.
//
// The first failing field is reported as a ParseError carrying the
// field's config key and its raw value from the Map.
func Validated[T any](l Loader[T]) Loader[T] {
	return LoaderFunc[T](func(m Map) (T, error) {
		v, err := l.FromMap(m)
		if err != nil {
			return v, err
		}

		var zero T
		err = structValidator().Struct(v)
		if err == nil {
			return v, nil
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return zero, err
		}

		fe := verrs[0]
		raw, ok := m.Lookup(fe.Field())
		if !ok {
			raw = fmt.Sprint(fe.Value())
		}
		return zero, ParseError{
			Key:   fe.Field(),
			Value: raw,
			Cause: fe,
		}
	})
}
