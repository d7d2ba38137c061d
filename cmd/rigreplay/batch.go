package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/engine/config"
	"github.com/rs/zerolog"
)

// replayFile parses, compiles and replays one script file.
func replayFile(out io.Writer, cfg config.Config, path string, opts replayOptions, logger zerolog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	script, err := ParseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	p, err := script.compile()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug().Int("ticks", len(p.steps)).Msg("replaying")
	return replay(out, cfg, p, opts, logger)
}

// replayAll replays every script on its own engine, in parallel, and writes the
// outputs in argument order. Text output gets a header per script when there is
// more than one; JSON records carry the script path instead.
func replayAll(out io.Writer, cfg config.Config, paths []string, opts replayOptions, workers int, logger zerolog.Logger) error {
	if len(paths) == 1 {
		return replayFile(out, cfg, paths[0], opts, logger.With().Str("script", paths[0]).Logger())
	}

	results := make([]bytes.Buffer, len(paths))
	errs := make([]error, len(paths))
	pool := worker.NewDynamicWorkerPool(max(workers, 1), len(paths), 1*time.Second)

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		scriptOpts := opts
		scriptOpts.script = path
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				errs[i] = replayFile(&results[i], cfg, path, scriptOpts, logger.With().Str("script", path).Logger())
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, path := range paths {
		if !opts.json {
			if _, err := fmt.Fprintf(out, "== %s\n", path); err != nil {
				return err
			}
		}
		if _, err := out.Write(results[i].Bytes()); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}
