package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

var cmdWatch = &cli.Command{
	Name:      "watch",
	Usage:     "rebuild the sequence and print its stats whenever the file changes",
	ArgsUsage: `<file>`,
	Action:    runWatch,
}

func runWatch(cctx *cli.Context) error {
	path := cctx.Args().First()
	if path == "" {
		return fmt.Errorf("need to provide a file as an argument")
	}
	debounce := time.Duration(configFrom(cctx).Watch.DebounceMS) * time.Millisecond

	report := func() {
		t, err := loadTree(cctx, path)
		if err != nil {
			slog.Error("rebuild failed", "path", path, "err", err)
			return
		}
		s := t.Stats()
		printer.Fprintf(cctx.App.Writer, "%s: len %d, depth %d\n", path, s.Len, s.Depth)
	}

	report()
	return watchFile(cctx.Context, path, debounce, report)
}

// watchFile calls onChange after path is written or created, once per
// burst of events no more than debounce apart. It watches the parent
// directory so that editors replacing the file are noticed.
// Returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}
	slog.Debug("watching", "path", absPath, "debounce", debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// A file renamed into place shows up as Create
			if filepath.Clean(ev.Name) != absPath || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		}
	}
}
