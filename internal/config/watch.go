package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
)

// ChangeHandler receives the reloaded configuration or the error that prevented it.
type ChangeHandler func(cfg *Config, err error)

// Watch reloads path with Load every time it is written, created or renamed
// into place, and passes the result to onChange until ctx is done. The parent
// directory is watched so editors that replace the file are handled. It is
// created when missing, so a file that does not exist yet is picked up once
// it is written.
func Watch(ctx context.Context, path string, flags *pflag.FlagSet, onChange ChangeHandler) error {
	target := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}

	if err = watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				onChange(Load(target, flags))
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onChange(nil, fmt.Errorf("config watcher: %w", watchErr))
			}
		}
	}()

	return nil
}
