package manifest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

type WatchOptions struct {
	Debounce time.Duration
	// OnReload is called after every reload attempt with its result.
	OnReload func(error)
}

// Watch reloads the manifest whenever its file changes, until ctx is done.
// The parent directory is watched so that editors replacing the file by
// rename are noticed.
func (r *Repository) Watch(ctx context.Context, opts WatchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(r.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	deb := newDebouncer(opts.Debounce)
	defer deb.cancel()

	reload := func() {
		err := r.Reload()
		if err != nil {
			log.Printf("level=warn event=manifest_reload_failed path=%q error=%q", r.path, err)
		} else {
			log.Printf("level=info event=manifest_reloaded path=%q", r.path)
		}
		if opts.OnReload != nil {
			opts.OnReload(err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				deb.trigger(reload)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("level=warn event=manifest_watch_error path=%q error=%q", r.path, err)
		}
	}
}
