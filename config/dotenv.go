// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"strings"

	"github.com/v9107/nviron/config/key"
	"github.com/v9107/nviron/internal/try"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ParserOption represents options for configuring a Parser.
type ParserOption func(*Parser)

// ParserLogger configures the logger malformed lines are reported to.
func ParserLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser turns .env style text into a Map.
type Parser struct {
	logger *zap.Logger
}

// NewParser configures a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// ParseText parses .env style contents with a default Parser.
// It never fails, malformed lines are simply dropped.
func ParseText(contents string) Map {
	return defaultParser.Parse(contents)
}

// Parse parses .env style contents line by line:
//   - blank lines and lines starting with '#' are skipped
//   - each line is split on its first '=', so values may contain '='
//   - keys and values are trimmed, lines with no '=' or an empty key are dropped
//   - a single pair of matching single or double quotes around the value is removed
//
// A later duplicate key overrides an earlier one.
func (p *Parser) Parse(contents string) Map {
	m := make(Map)
	for i, rawLine := range strings.Split(contents, "\n") {
		line := strings.TrimSpace(rawLine)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			p.logger.Debug("dropping config line without '='", zap.Int("line", i+1))
			continue
		}

		k = strings.TrimSpace(k)
		if len(k) == 0 {
			p.logger.Debug("dropping config line with empty key", zap.Int("line", i+1))
			continue
		}

		m[k] = unquote(strings.TrimSpace(v))
	}
	return m
}

// ParseReader reads all of r and parses it. r is closed if it's an io.Closer.
func (p *Parser) ParseReader(r io.Reader) (_ Map, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(string(b)), nil
}

func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if first != last {
		return v
	}
	if first != '"' && first != '\'' {
		return v
	}
	return v[1 : len(v)-1]
}

// DotEnv represents a Source where its underlying format is .env text.
type DotEnv struct {
	r      io.Reader
	parser *Parser
}

// FromDotEnv returns a source which will apply its config
// from .env values parsed from the given io.Reader.
func FromDotEnv(r io.Reader, opts ...ParserOption) DotEnv {
	return DotEnv{
		r:      r,
		parser: NewParser(opts...),
	}
}

// Apply implements the Source interface.
func (src DotEnv) Apply(store Store) error {
	m, err := src.parser.ParseReader(src.r)
	if err != nil {
		return err
	}
	for k, v := range m {
		err := store.Set(key.Name(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}

// String names the source in LoadingErrors.
func (DotEnv) String() string {
	return "dotenv"
}

// Export writes m to w as .env text with keys sorted, in the format
// written by godotenv. Integers are left bare and everything else is
// double quoted, so plain values round trip through ParseText unchanged.
// Values containing quotes, backslashes, '$' or '!' are escaped by godotenv
// and ParseText does not unescape them.
func Export(w io.Writer, m Map) error {
	s, err := godotenv.Marshal(m)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}
