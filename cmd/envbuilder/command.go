// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/v9107/nviron/internal/codegen"
	"github.com/v9107/nviron/internal/try"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type generateOptions struct {
	typeName string
	output   string
	verbose  bool
}

func newCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:           "envbuilder --type T [--output file] [dir]",
		Short:         "Generate a typed config builder and loader for a struct",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			log, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			err = generate(log, dir, opts)
			if err != nil {
				log.Error("failed to generate config builder", zap.String("type", opts.typeName), zap.Error(err))
				return loggedError{err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.typeName, "type", "", "name of the struct type to generate a builder for")
	flags.StringVarP(&opts.output, "output", "o", "", "output file, relative to dir (default <type>_envbuilder.go)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")
	// only fails for undefined flags
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// loggedError marks an error which was already reported through the logger.
type loggedError struct {
	err error
}

func (e loggedError) Error() string {
	return e.err.Error()
}

func (e loggedError) Unwrap() error {
	return e.err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func generate(log *zap.Logger, dir string, opts generateOptions) error {
	s, err := codegen.Inspect(dir, opts.typeName)
	if err != nil {
		return err
	}
	log.Debug(
		"inspected struct",
		zap.String("package", s.Package),
		zap.String("type", s.Name),
		zap.Int("fields", len(s.Fields)),
	)

	src, err := codegen.Generate(s)
	if err != nil {
		return err
	}

	output := opts.output
	if len(output) == 0 {
		output = codegen.OutputName(s.Name)
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}

	err = os.WriteFile(output, src, 0o644)
	if err != nil {
		return err
	}
	log.Info("generated config builder", zap.String("type", s.Name), zap.String("output", output))
	return nil
}
