// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codegen

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"
)

//go:embed builder.go.tmpl
var builderTmpl string

var tmpl = template.Must(
	template.New("builder").
		Funcs(template.FuncMap{
			"member": memberName,
		}).
		Parse(builderTmpl),
)

// FormatError occurs when the generated source is not valid Go.
type FormatError struct {
	Source []byte
	Cause  error
}

// Error implements the error interface.
func (e FormatError) Error() string {
	return fmt.Sprintf("generated source is not valid go: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e FormatError) Unwrap() error {
	return e.Cause
}

// Generate renders the builder and loader source for s.
func Generate(s Struct) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, s)
	if err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, FormatError{Source: buf.Bytes(), Cause: err}
	}
	return src, nil
}

// OutputName returns the default file name for the generated source of typeName.
func OutputName(typeName string) string {
	return strings.ToLower(typeName) + "_envbuilder.go"
}

// memberName unexports a field name for use as a builder member.
func memberName(name string) string {
	rs := []rune(name)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	if n > 1 && n < len(rs) {
		// keep the last rune of a leading initialism, e.g. APIKey -> apiKey
		n--
	}
	for i := 0; i < n; i++ {
		rs[i] = unicode.ToLower(rs[i])
	}

	s := string(rs)
	if token.IsKeyword(s) {
		return s + "_"
	}
	return s
}
