// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/v9107/nviron/internal/try"

	"gopkg.in/yaml.v3"
)

// Document is a Source whose underlying format is a nested document,
// e.g. YAML or JSON. Nested objects are flattened into dotted keys,
// scalars are stringified and lists are joined with ListSeparator.
//
//	db:
//	  hosts: [a, b]
//
// is applied as db.hosts=a,b.
type Document struct {
	r         io.Reader
	format    string
	unmarshal func([]byte, any) error
}

// FromYaml returns a source which applies the YAML document read from r.
func FromYaml(r io.Reader) Document {
	return Document{r: r, format: "yaml", unmarshal: yaml.Unmarshal}
}

// FromJson returns a source which applies the JSON document read from r.
func FromJson(r io.Reader) Document {
	return Document{r: r, format: "json", unmarshal: json.Unmarshal}
}

// InvalidDocumentError occurs when a document can not be decoded
// into an object at its top level.
type InvalidDocumentError struct {
	Format string
	Cause  error
}

// Error implements the error interface.
func (e InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid %s document: %s", e.Format, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidDocumentError) Unwrap() error {
	return e.Cause
}

// Apply implements the Source interface. The underlying io.Reader
// is closed afterwards if it's an io.Closer.
func (src Document) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	var tree map[string]any
	err = src.unmarshal(b, &tree)
	if err != nil {
		return InvalidDocumentError{Format: src.format, Cause: err}
	}
	return walkTree(tree, store, nil)
}

// String names the source in LoadingErrors.
func (src Document) String() string {
	return src.format
}
