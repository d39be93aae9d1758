// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ListSeparator separates the elements of a raw value destined for a slice.
const ListSeparator = ","

// Parse converts a raw config value into a T. It can be used on its own,
// outside of any Field, in which case a returned ParseError has no Key.
//
// Supported types are strings, bools, ints, uints and floats of any size,
// time.Duration, any type whose pointer implements encoding.TextUnmarshaler
// and slices of all of those, written as comma separated lists.
func Parse[T any](raw string) (T, error) {
	return ParseField[T]("", raw)
}

// ParseField behaves like Parse but tags a returned ParseError with key.
func ParseField[T any](key, raw string) (T, error) {
	var v T
	err := decodeRaw(key, raw, &v)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// decodeRaw converts raw into the value out points to.
func decodeRaw(key, raw string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
			listHookFunc(ListSeparator),
			scalarHookFunc(),
		),
	})
	if err != nil {
		return err
	}

	err = dec.Decode(raw)
	if err == nil {
		return nil
	}

	var cerr coercionError
	if errors.As(err, &cerr) {
		err = cerr.Cause
	}
	return ParseError{
		Key:   key,
		Value: raw,
		Cause: err,
	}
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// coercionError lets ParseField recover the hook error from
// whatever mapstructure wraps it in.
type coercionError struct {
	Cause error
}

func (e coercionError) Error() string {
	return e.Cause.Error()
}

func (e coercionError) Unwrap() error {
	return e.Cause
}

// composeDecodeHooks runs the hooks in order until one applies.
// If none apply the value is passed through to mapstructure untouched.
func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, coercionError{Cause: err}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t)
		u, ok := result.Interface().(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(reflect.ValueOf(data).String()))
		if err != nil {
			return nil, err
		}
		return result.Elem().Interface(), nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		return time.ParseDuration(reflect.ValueOf(data).String())
	}
}

// listHookFunc splits a raw value into its elements. mapstructure then
// decodes each element on its own, running these hooks again.
func listHookFunc(sep string) mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return nil, errInvalidDecodeCondition
		}
		s := reflect.ValueOf(data).String()
		if len(strings.TrimSpace(s)) == 0 {
			return []string{}, nil
		}
		elems := strings.Split(s, sep)
		for i := range elems {
			elems[i] = strings.TrimSpace(elems[i])
		}
		return elems, nil
	}
}

// scalarHookFunc parses numbers and bools in base 10 using the bit size
// of the target type, so out of range values fail instead of wrapping.
func scalarHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		s := reflect.ValueOf(data).String()
		v := reflect.New(t).Elem()
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(s, 10, t.Bits())
			if err != nil {
				return nil, err
			}
			v.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(s, 10, t.Bits())
			if err != nil {
				return nil, err
			}
			v.SetUint(n)
		case reflect.Float32, reflect.Float64:
			n, err := strconv.ParseFloat(s, t.Bits())
			if err != nil {
				return nil, err
			}
			v.SetFloat(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, err
			}
			v.SetBool(b)
		default:
			return nil, errInvalidDecodeCondition
		}
		return v.Interface(), nil
	}
}
