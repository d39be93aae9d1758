// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command envbuilder generates a typed config builder and loader for a struct.
//
// It is meant to be run through go generate:
//
//	//go:generate go run github.com/v9107/nviron/cmd/envbuilder --type Settings
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := newCommand().ExecuteContext(ctx)
	if err != nil {
		var lerr loggedError
		if !errors.As(err, &lerr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		cancel()
		os.Exit(1)
	}
}
