// Package watcher re-runs the generator whenever a definition file is written.
package watcher

import (
	"context"
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the definition directories and calls regenerate after
// every write. Passes are not debounced: each write event runs one pass.
type Watcher struct {
	fsw        *fsnotify.Watcher
	regenerate func() error
	dirs       []string
}

// New subscribes to every directory of dirs. A directory that cannot be
// watched is logged and skipped.
func New(dirs []string, regenerate func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, regenerate: regenerate}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			log.Printf("Cannot watch %s folder: %v", dir, err)

			continue
		}

		w.dirs = append(w.dirs, dir)
	}

	return w, nil
}

// Dirs returns the directories actually being watched.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run handles events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			log.Printf("File watcher error: %v", err)
		}
	}
}

// handle runs a pass for write events and reports whether it did.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) {
		return false
	}

	if err := w.regenerate(); err != nil {
		log.Printf("Error while generating db folder: %v", err)
	}

	return true
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
