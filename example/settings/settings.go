// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import "fmt"

//go:generate go run github.com/v9107/nviron/cmd/envbuilder --type Settings

// Settings is loaded from the .env file in the working directory.
type Settings struct {
	Name      string `env:"name"`
	ServerEnv string `env:"server_env" envDefault:"local"`
	Version   uint64 `env:"version"`
}

// String implements the fmt.Stringer interface.
func (s Settings) String() string {
	return fmt.Sprintf("Settings{Name: %q, ServerEnv: %q, Version: %d}", s.Name, s.ServerEnv, s.Version)
}
