package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long Watch waits after the last file event before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watch reloads the config file at path whenever it changes and hands every valid
// result to onChange. Invalid reloads are logged and skipped; the previous config
// stays in effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so editors that save by
// rename keep triggering reloads.
//
// Parameters:
//   - ctx: stops the watcher when done
//   - path: config file to watch
//   - logger: receives reload and failure messages
//   - onChange: called from the watcher goroutine with each valid config
//
// Returns:
//   - error: error if the watcher could not start, nil once ctx is done
func Watch(ctx context.Context, path string, logger zerolog.Logger, onChange func(Config)) error {
	return watch(ctx, path, DefaultDebounce, logger, onChange)
}

func watch(ctx context.Context, path string, debounce time.Duration, logger zerolog.Logger, onChange func(Config)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	logger.Debug().Str("path", abs).Msg("watching config")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			pending = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Str("path", abs).Msg("config watcher error")
		case <-pending:
			pending = nil
			cfg, err := Load(abs)
			if err != nil {
				logger.Error().Err(err).Str("path", abs).Msg("config reload rejected")
				continue
			}
			logger.Info().Str("path", abs).Msg("config reloaded")
			onChange(cfg)
		}
	}
}
