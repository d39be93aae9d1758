// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	t.Run("will render the template", func(t *testing.T) {
		t.Run("with the given data", func(t *testing.T) {
			s, err := RenderTemplate(
				`name={{ .name }}`,
				TemplateData(map[string]string{"name": "venkatesh"}),
			)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "name=venkatesh", s) {
				return
			}
		})

		t.Run("with custom delimiters", func(t *testing.T) {
			s, err := RenderTemplate(
				`version=<< version >> literal={{ braces }}`,
				TemplateDelims("<<", ">>"),
				TemplateFunc("version", func() int { return 7 }),
			)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "version=7 literal={{ braces }}", s) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the contents are an invalid text/template", func(t *testing.T) {
			_, err := RenderTemplate(`{{ hello`)

			var perr TemplateParseError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.NotEmpty(t, perr.Error()) {
				return
			}
			if !assert.Error(t, perr.Unwrap()) {
				return
			}
		})

		t.Run("if the parsed text/template fails to execute", func(t *testing.T) {
			_, err := RenderTemplate(
				`{{ hello }}`,
				TemplateFunc("hello", func() (string, error) {
					return "", errors.New("no greeting")
				}),
			)

			var eerr TemplateExecError
			if !assert.ErrorAs(t, err, &eerr) {
				return
			}
			if !assert.NotEmpty(t, eerr.Error()) {
				return
			}
			if !assert.Error(t, eerr.Unwrap()) {
				return
			}
		})
	})
}

func TestTemplateReader_Read(t *testing.T) {
	t.Run("will return the rendered template", func(t *testing.T) {
		r := NewTemplateReader(
			strings.NewReader(`version={{ .Version }}`),
			TemplateData(struct{ Version int }{Version: 7}),
		)

		b, err := io.ReadAll(r)
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "version=7", string(b)) {
			return
		}
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the underlying io.Reader fails", func(t *testing.T) {
			readErr := errors.New("failed to read")
			r := readFunc(func(b []byte) (int, error) {
				return 0, readErr
			})

			_, err := io.ReadAll(NewTemplateReader(r))
			if !assert.ErrorIs(t, err, readErr) {
				return
			}
		})

		t.Run("if the template panics", func(t *testing.T) {
			r := NewTemplateReader(
				strings.NewReader(`{{ hello }}`),
				TemplateFunc("hello", func() string {
					panic("ahhhh")
				}),
			)

			_, err := io.ReadAll(r)

			var eerr TemplateExecError
			if !assert.ErrorAs(t, err, &eerr) {
				return
			}
		})

		t.Run("on every Read after a failed render", func(t *testing.T) {
			r := NewTemplateReader(strings.NewReader(`{{ hello`))

			_, err := io.ReadAll(r)
			if !assert.Error(t, err) {
				return
			}

			_, err = r.Read(make([]byte, 8))
			var perr TemplateParseError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
		})
	})
}
