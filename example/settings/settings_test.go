// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/v9107/nviron/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsBuilder_FromMap(t *testing.T) {
	t.Run("will load the settings", func(t *testing.T) {
		t.Run("with server_env defaulting to local", func(t *testing.T) {
			s, err := SettingsBuilder{}.FromMap(config.Map{"name": "test", "version": "42"})
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, Settings{Name: "test", ServerEnv: "local", Version: 42}, s) {
				return
			}
		})

		t.Run("with server_env as given", func(t *testing.T) {
			s, err := SettingsBuilder{}.FromMap(config.Map{"name": "test", "server_env": "prod", "version": "1"})
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "prod", s.ServerEnv) {
				return
			}
		})
	})

	t.Run("will return a MissingKeyError", func(t *testing.T) {
		testCases := []struct {
			Name string
			Map  config.Map
			Key  string
		}{
			{
				Name: "if name is absent",
				Map:  config.Map{"version": "1"},
				Key:  "name",
			},
			{
				Name: "if version is absent",
				Map:  config.Map{"name": "test"},
				Key:  "version",
			},
			{
				Name: "for the first absent key in declaration order",
				Map:  config.Map{},
				Key:  "name",
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				_, err := SettingsBuilder{}.FromMap(testCase.Map)

				var merr config.MissingKeyError
				if !assert.ErrorAs(t, err, &merr) {
					return
				}
				if !assert.Equal(t, testCase.Key, merr.Key) {
					return
				}
			})
		}
	})

	t.Run("will return a ParseError", func(t *testing.T) {
		t.Run("if version is not a number", func(t *testing.T) {
			_, err := SettingsBuilder{}.FromMap(config.Map{"name": "test", "version": "forty-two"})

			var perr config.ParseError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.Equal(t, "version", perr.Key) {
				return
			}
			if !assert.Equal(t, "forty-two", perr.Value) {
				return
			}
		})
	})
}

func TestSettingsBuilder_Build(t *testing.T) {
	t.Run("will build the settings", func(t *testing.T) {
		t.Run("if every required field is set", func(t *testing.T) {
			s, err := NewSettingsBuilder().
				WithName("venkatesh").
				WithVersion(7).
				Build()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, Settings{Name: "venkatesh", ServerEnv: "local", Version: 7}, s) {
				return
			}
		})

		t.Run("with server_env overriding its default", func(t *testing.T) {
			s, err := NewSettingsBuilder().
				WithName("venkatesh").
				WithServerEnv("prod").
				WithVersion(7).
				Build()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "prod", s.ServerEnv) {
				return
			}
		})
	})

	t.Run("will match FromMap for the same values", func(t *testing.T) {
		built, err := NewSettingsBuilder().WithName("venkatesh").WithVersion(7).Build()
		require.NoError(t, err)

		loaded, err := SettingsBuilder{}.FromMap(config.Map{"name": "venkatesh", "version": "7"})
		require.NoError(t, err)

		if !assert.Equal(t, loaded, built) {
			return
		}
	})

	t.Run("will not share state between builders", func(t *testing.T) {
		base := NewSettingsBuilder().WithName("a").WithVersion(1)
		other := base.WithName("b")

		s, err := base.Build()
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "a", s.Name) {
			return
		}

		s, err = other.Build()
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "b", s.Name) {
			return
		}
	})

	t.Run("will return a MissingKeyError", func(t *testing.T) {
		t.Run("if a required field is not set", func(t *testing.T) {
			_, err := NewSettingsBuilder().WithName("venkatesh").Build()
			if !assert.ErrorIs(t, err, config.ErrMissingKey) {
				return
			}
		})
	})
}

func TestSettings_Decode(t *testing.T) {
	t.Run("will match the generated loader", func(t *testing.T) {
		testCases := []struct {
			Name string
			Map  config.Map
		}{
			{
				Name: "if server_env is absent",
				Map:  config.Map{"name": "test", "version": "42"},
			},
			{
				Name: "if server_env is present but empty",
				Map:  config.Map{"name": "test", "server_env": "", "version": "42"},
			},
			{
				Name: "if server_env is present",
				Map:  config.Map{"name": "test", "server_env": "prod", "version": "42"},
			},
			{
				Name: "if version is present but empty",
				Map:  config.Map{"name": "test", "version": ""},
			},
			{
				Name: "if name is absent",
				Map:  config.Map{"version": "42"},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				generated, genErr := SettingsBuilder{}.FromMap(testCase.Map)
				decoded, decErr := config.Decode[Settings](testCase.Map)

				if !assert.Equal(t, generated, decoded) {
					return
				}
				if genErr == nil {
					if !assert.Nil(t, decErr) {
						return
					}
					return
				}

				var genMissing, decMissing config.MissingKeyError
				if errors.As(genErr, &genMissing) {
					if !assert.ErrorAs(t, decErr, &decMissing) {
						return
					}
					if !assert.Equal(t, genMissing.Key, decMissing.Key) {
						return
					}
					return
				}

				var genParse, decParse config.ParseError
				if !assert.ErrorAs(t, genErr, &genParse) {
					return
				}
				if !assert.ErrorAs(t, decErr, &decParse) {
					return
				}
				if !assert.Equal(t, genParse.Key, decParse.Key) {
					return
				}
				if !assert.Equal(t, genParse.Value, decParse.Value) {
					return
				}
			})
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("will print the settings", func(t *testing.T) {
		t.Run("if the .env file is valid", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte("name=venkatesh\nserver_env=local\nversion=7\n"), 0o600))

			var stdout, stderr bytes.Buffer
			code := run(&stdout, &stderr, path)
			if !assert.Equal(t, 0, code) {
				return
			}
			if !assert.Equal(t, "Settings{Name: \"venkatesh\", ServerEnv: \"local\", Version: 7}\n", stdout.String()) {
				return
			}
			if !assert.Empty(t, stderr.String()) {
				return
			}
		})
	})

	t.Run("will exit non-zero", func(t *testing.T) {
		t.Run("if the .env file does not exist", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")

			var stdout, stderr bytes.Buffer
			code := run(&stdout, &stderr, path)
			if !assert.Equal(t, 1, code) {
				return
			}
			if !assert.Contains(t, stderr.String(), path) {
				return
			}
			if !assert.Empty(t, stdout.String()) {
				return
			}
		})

		t.Run("if a required key is missing", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte("# only a comment\n"), 0o600))

			var stdout, stderr bytes.Buffer
			code := run(&stdout, &stderr, path)
			if !assert.Equal(t, 1, code) {
				return
			}
			if !assert.Contains(t, stderr.String(), "name") {
				return
			}
		})
	})
}
