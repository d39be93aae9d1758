// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package try collects deferred cleanup failures into a named error result.
package try

import (
	"errors"
	"fmt"
	"io"
)

// PanicError is what a recovered panic becomes.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "recovered from panic: " + err.Error()
	}
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}

func (e PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// CloseError is what a failed io.Closer.Close becomes.
type CloseError struct {
	Cause error
}

func (e CloseError) Error() string {
	return "failed to close: " + e.Cause.Error()
}

func (e CloseError) Unwrap() error {
	return e.Cause
}

// Recover must be called directly by a deferred statement.
//
//	defer try.Recover(&err)
func Recover(err *error) {
	if r := recover(); r != nil {
		keep(err, PanicError{Value: r})
	}
}

// Close closes v when it is an io.Closer. A failure is kept
// alongside whatever err already holds.
func Close(err *error, v any) {
	c, ok := v.(io.Closer)
	if !ok || c == nil {
		return
	}
	if cerr := c.Close(); cerr != nil {
		keep(err, CloseError{Cause: cerr})
	}
}

func keep(dst *error, err error) {
	switch {
	case dst == nil:
	case *dst == nil:
		*dst = err
	default:
		*dst = errors.Join(*dst, err)
	}
}
