// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/v9107/nviron/internal/codegen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsSrc = "package settings\n\ntype Settings struct {\n\tName string `env:\"name\"`\n\tServerEnv string `env:\"server_env\" envDefault:\"local\"`\n\tVersion uint64 `env:\"version\"`\n}\n"

func runCommand(args ...string) error {
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestCommand(t *testing.T) {
	t.Run("will write the generated builder", func(t *testing.T) {
		t.Run("next to the struct by default", func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.go"), []byte(settingsSrc), 0o600))

			err := runCommand("--type", "Settings", dir)
			if !assert.Nil(t, err) {
				return
			}

			b, err := os.ReadFile(filepath.Join(dir, "settings_envbuilder.go"))
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Contains(t, string(b), "type SettingsBuilder struct") {
				return
			}
			if !assert.Contains(t, string(b), "func (SettingsBuilder) FromMap(m config.Map) (Settings, error)") {
				return
			}
		})

		t.Run("to the given output file", func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.go"), []byte(settingsSrc), 0o600))

			err := runCommand("--type", "Settings", "-o", "zz_settings.go", "-v", dir)
			if !assert.Nil(t, err) {
				return
			}

			_, err = os.Stat(filepath.Join(dir, "zz_settings.go"))
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the type flag is missing", func(t *testing.T) {
			err := runCommand(t.TempDir())
			if !assert.Error(t, err) {
				return
			}

			var lerr loggedError
			if !assert.False(t, errors.As(err, &lerr)) {
				return
			}
		})

		t.Run("if the type does not exist", func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.go"), []byte(settingsSrc), 0o600))

			err := runCommand("--type", "Missing", dir)

			var nerr codegen.TypeNotFoundError
			if !assert.ErrorAs(t, err, &nerr) {
				return
			}

			var lerr loggedError
			if !assert.ErrorAs(t, err, &lerr) {
				return
			}
		})

		t.Run("if more than one dir is given", func(t *testing.T) {
			err := runCommand("--type", "Settings", t.TempDir(), t.TempDir())
			if !assert.Error(t, err) {
				return
			}
		})
	})
}
