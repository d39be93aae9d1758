// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/v9107/nviron/internal/try"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchOption represents options for Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	logger   *zap.Logger
	debounce time.Duration
	fileOpts []FileOption
}

// WatchLogger configures the logger used by Watch.
func WatchLogger(logger *zap.Logger) WatchOption {
	return func(wo *watchOptions) {
		wo.logger = logger
	}
}

// WatchDebounce configures how long Watch waits after the last change
// before reloading. The default is 100ms.
func WatchDebounce(d time.Duration) WatchOption {
	return func(wo *watchOptions) {
		wo.debounce = d
	}
}

// WatchFileOptions configures the options each reload passes to FromFile.
func WatchFileOptions(opts ...FileOption) WatchOption {
	return func(wo *watchOptions) {
		wo.fileOpts = append(wo.fileOpts, opts...)
	}
}

// Watch loads the file at path with FromFile and hands the result to onLoad,
// then does the same again every time the file changes. A failed reload is
// passed to onLoad as well and watching continues.
//
// Watch blocks until ctx is cancelled. It only returns an error
// if the file can not be watched at all.
func Watch[T any](ctx context.Context, path string, l Loader[T], onLoad func(T, error), opts ...WatchOption) (err error) {
	wo := &watchOptions{
		logger:   zap.NewNop(),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(wo)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer try.Close(&err, w)

	// editors often replace the file instead of writing to it,
	// so its directory is watched rather than the file itself
	path = filepath.Clean(path)
	err = w.Add(filepath.Dir(path))
	if err != nil {
		return IoError{Path: path, Cause: err}
	}

	onLoad(FromFile(path, l, wo.fileOpts...))

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			wo.logger.Debug("config file changed", zap.String("path", path), zap.Stringer("op", ev.Op))
			reload = time.After(wo.debounce)
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			wo.logger.Warn("config file watcher error", zap.String("path", path), zap.Error(werr))
		case <-reload:
			reload = nil
			wo.logger.Info("reloading config file", zap.String("path", path))
			onLoad(FromFile(path, l, wo.fileOpts...))
		}
	}
}
