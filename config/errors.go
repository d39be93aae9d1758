// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"fmt"
)

// ErrMissingKey is matched by every [MissingKeyError] when using errors.Is.
var ErrMissingKey = errors.New("missing required config key")

// IoError occurs when the config file itself could not be read.
type IoError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e IoError) Error() string {
	return fmt.Sprintf("failed to read config file %q: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e IoError) Unwrap() error {
	return e.Cause
}

// MissingKeyError occurs when a required field has no value and no default.
type MissingKeyError struct {
	Key string
}

// Error implements the error interface.
func (e MissingKeyError) Error() string {
	return fmt.Sprintf("missing required config key %q", e.Key)
}

// Is lets errors.Is(err, ErrMissingKey) match any MissingKeyError.
func (e MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// ParseError occurs when a raw config value can not be converted
// to the type of the field it is destined for.
type ParseError struct {
	Key   string
	Value string
	Cause error
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if len(e.Key) == 0 {
		return fmt.Sprintf("failed to parse config value %q: %s", e.Value, e.Cause)
	}
	return fmt.Sprintf("failed to parse config key %q: value %q: %s", e.Key, e.Value, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ParseError) Unwrap() error {
	return e.Cause
}

// LoadingError occurs when a config source fails before any field is resolved.
// Path names the source, e.g. a file path or "env".
type LoadingError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e LoadingError) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e LoadingError) Unwrap() error {
	return e.Cause
}
