// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string

	openOnce sync.Once
	fs       fs.FS
	file     io.ReadCloser
	openErr  error
}

// NewFileReader configures a FileReader.
func NewFileReader(fsys fs.FS, path string) *FileReader {
	return &FileReader{
		path: path,
		fs:   fsys,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile returns the contents of the file at path.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", IoError{Path: path, Cause: err}
	}
	return string(b), nil
}

// FileOption represents options for FromFile and FromFS.
type FileOption func(*fileOptions)

type fileOptions struct {
	logger   *zap.Logger
	tmplOpts []TemplateOption
	render   bool
	overlay  []Source
}

// FileLogger configures the logger used while loading the file.
func FileLogger(logger *zap.Logger) FileOption {
	return func(fo *fileOptions) {
		fo.logger = logger
	}
}

// FileTemplate renders the file contents with RenderTemplate before parsing them.
func FileTemplate(opts ...TemplateOption) FileOption {
	return func(fo *fileOptions) {
		fo.render = true
		fo.tmplOpts = append(fo.tmplOpts, opts...)
	}
}

// FileOverlay applies the given sources on top of the parsed file,
// e.g. FromEnv() to let the process environment win over the file.
func FileOverlay(srcs ...Source) FileOption {
	return func(fo *fileOptions) {
		fo.overlay = append(fo.overlay, srcs...)
	}
}

// FromFile reads and parses the .env file at path and hands the result to l.
// Any type implementing Loader gets file loading through this for free.
func FromFile[T any](path string, l Loader[T], opts ...FileOption) (T, error) {
	contents, err := ReadFile(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return loadContents(path, contents, l, opts...)
}

// FromFS behaves like FromFile but reads path from fsys.
func FromFS[T any](fsys fs.FS, path string, l Loader[T], opts ...FileOption) (T, error) {
	r := NewFileReader(fsys, path)
	defer r.Close()

	var sb strings.Builder
	_, err := io.Copy(&sb, r)
	if err != nil {
		var zero T
		return zero, IoError{Path: path, Cause: err}
	}
	return loadContents(path, sb.String(), l, opts...)
}

func loadContents[T any](path, contents string, l Loader[T], opts ...FileOption) (T, error) {
	fo := &fileOptions{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(fo)
	}

	var zero T
	if fo.render {
		rendered, err := RenderTemplate(contents, fo.tmplOpts...)
		if err != nil {
			return zero, LoadingError{Path: path, Cause: err}
		}
		contents = rendered
	}

	m := NewParser(ParserLogger(fo.logger)).Parse(contents)
	fo.logger.Debug("parsed config file", zap.String("path", path), zap.Int("keys", len(m)))

	for _, src := range fo.overlay {
		err := src.Apply(m)
		if err != nil {
			return zero, LoadingError{Path: sourceName(src), Cause: err}
		}
	}

	return l.FromMap(m)
}
