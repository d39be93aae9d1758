// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"strings"
	"sync"
	"text/template"

	"github.com/v9107/nviron/internal/try"
)

// TemplateOption configures how config text is rendered as a text/template.
type TemplateOption func(*templateOptions)

type templateOptions struct {
	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
	data       any
}

// TemplateFunc registers f under name for use inside the template.
func TemplateFunc(name string, f any) TemplateOption {
	return func(to *templateOptions) {
		to.funcs[name] = f
	}
}

// TemplateDelims sets the action delimiters of the template.
// An empty delimiter stands for the corresponding default: {{ or }}.
func TemplateDelims(left, right string) TemplateOption {
	return func(to *templateOptions) {
		to.leftDelim = left
		to.rightDelim = right
	}
}

// TemplateData sets the value the template is executed against.
func TemplateData(data any) TemplateOption {
	return func(to *templateOptions) {
		to.data = data
	}
}

// TemplateParseError occurs when config text is not a valid text/template.
type TemplateParseError struct {
	Cause error
}

// Error implements the error interface.
func (e TemplateParseError) Error() string {
	return "failed to parse config template: " + e.Cause.Error()
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TemplateParseError) Unwrap() error {
	return e.Cause
}

// TemplateExecError occurs when a parsed config template fails to execute.
type TemplateExecError struct {
	Cause error
}

// Error implements the error interface.
func (e TemplateExecError) Error() string {
	return "failed to execute config template: " + e.Cause.Error()
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TemplateExecError) Unwrap() error {
	return e.Cause
}

// RenderTemplate renders contents as a text/template, e.g.
//
//	version={{ .Version }}
//
// with TemplateData(struct{ Version int }{7}) renders to version=7.
func RenderTemplate(contents string, opts ...TemplateOption) (string, error) {
	to := &templateOptions{
		funcs: make(template.FuncMap),
		data:  struct{}{},
	}
	for _, opt := range opts {
		opt(to)
	}

	tmpl, err := template.New("config").
		Delims(to.leftDelim, to.rightDelim).
		Funcs(to.funcs).
		Parse(contents)
	if err != nil {
		return "", TemplateParseError{Cause: err}
	}

	var sb strings.Builder
	err = tmpl.Execute(&sb, to.data)
	if err != nil {
		return "", TemplateExecError{Cause: err}
	}
	return sb.String(), nil
}

// TemplateReader is an io.Reader which renders the template read from
// another io.Reader. Rendering happens on the first Read and a failure is
// returned by every Read after it.
type TemplateReader struct {
	r    io.Reader
	opts []TemplateOption

	renderOnce sync.Once
	rendered   *strings.Reader
	renderErr  error
}

// NewTemplateReader returns a TemplateReader rendering the contents of r.
// r is closed once read if it's an io.Closer.
func NewTemplateReader(r io.Reader, opts ...TemplateOption) *TemplateReader {
	return &TemplateReader{
		r:    r,
		opts: opts,
	}
}

// Read implements the io.Reader interface.
func (tr *TemplateReader) Read(b []byte) (int, error) {
	tr.renderOnce.Do(func() {
		var s string
		s, tr.renderErr = tr.render()
		tr.rendered = strings.NewReader(s)
	})
	if tr.renderErr != nil {
		return 0, tr.renderErr
	}
	return tr.rendered.Read(b)
}

func (tr *TemplateReader) render() (_ string, err error) {
	defer try.Close(&err, tr.r)

	b, err := io.ReadAll(tr.r)
	if err != nil {
		return "", err
	}
	return RenderTemplate(string(b), tr.opts...)
}
