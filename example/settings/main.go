// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command settings loads the .env file in the working directory
// into a Settings and prints it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/v9107/nviron/config"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, ".env"))
}

func run(stdout, stderr io.Writer, path string) int {
	s, err := config.FromFile[Settings](path, SettingsBuilder{})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, s)
	return 0
}
