// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package try

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	t.Run("will set the error ref value", func(t *testing.T) {
		t.Run("if a non-error value is recovered", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				panic("bad template")
			}

			err := f()

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.Equal(t, "bad template", perr.Value) {
				return
			}
			if !assert.Nil(t, perr.Unwrap()) {
				return
			}
		})

		t.Run("if an error is recovered and the ref already holds an error", func(t *testing.T) {
			funcErr := errors.New("func error")
			panicErr := errors.New("panic error")
			f := func() (err error) {
				defer Recover(&err)
				err = funcErr
				panic(panicErr)
			}

			err := f()
			if !assert.ErrorIs(t, err, funcErr) {
				return
			}
			if !assert.ErrorIs(t, err, panicErr) {
				return
			}
		})
	})

	t.Run("will leave the error ref value alone", func(t *testing.T) {
		t.Run("if nothing panics", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				return nil
			}

			if !assert.Nil(t, f()) {
				return
			}
		})
	})
}

type closeFunc func() error

func (f closeFunc) Close() error {
	return f()
}

func TestClose(t *testing.T) {
	t.Run("will set the error ref value to a CloseError", func(t *testing.T) {
		testCases := []struct {
			Name    string
			FuncErr error
		}{
			{
				Name: "if the close fails and the ref value is nil",
			},
			{
				Name:    "if the close fails and the ref value is non-nil",
				FuncErr: errors.New("read failed"),
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				closeErr := errors.New("close failed")
				c := closeFunc(func() error {
					return closeErr
				})

				f := func() (err error) {
					defer Close(&err, c)
					return testCase.FuncErr
				}

				err := f()

				var cerr CloseError
				if !assert.ErrorAs(t, err, &cerr) {
					return
				}
				if !assert.ErrorIs(t, cerr, closeErr) {
					return
				}
				if testCase.FuncErr == nil {
					return
				}
				if !assert.ErrorIs(t, err, testCase.FuncErr) {
					return
				}
			})
		}
	})

	t.Run("will leave the error ref value alone", func(t *testing.T) {
		t.Run("if the value is not an io.Closer", func(t *testing.T) {
			f := func() (err error) {
				var r io.Reader = strings.NewReader("name=nviron")
				defer Close(&err, r)
				return nil
			}

			if !assert.Nil(t, f()) {
				return
			}
		})

		t.Run("if the value is nil", func(t *testing.T) {
			f := func() (err error) {
				defer Close(&err, nil)
				return nil
			}

			if !assert.Nil(t, f()) {
				return
			}
		})
	})
}

func TestPanicError_Error(t *testing.T) {
	t.Run("will include the recovered error message", func(t *testing.T) {
		t.Run("if the recovered value is an error", func(t *testing.T) {
			err := PanicError{Value: errors.New("template: missing field")}
			if !assert.Equal(t, "recovered from panic: template: missing field", err.Error()) {
				return
			}
		})

		t.Run("if the recovered value is not an error", func(t *testing.T) {
			err := PanicError{Value: 42}
			if !assert.Equal(t, "recovered from panic: 42", err.Error()) {
				return
			}
		})
	})
}
