package plan

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of plan file change detected.
type ChangeKind int

const (
	ChangeTask     ChangeKind = iota // task .md file edited or added
	ChangeRemoved                    // task .md file deleted
	ChangeManifest                   // project.toml edited
)

// Change represents a detected change in the plan directory. Any change
// invalidates the whole stored schedule: recomputation is always full,
// never incremental.
type Change struct {
	Kind   ChangeKind
	TaskID string // Derived from parsing the file (or empty)
	File   string // Absolute path
}

// Watcher monitors a plan directory for manifest and task file changes
// using fsnotify, debouncing rapid successive writes per file.
type Watcher struct {
	Dir     string
	Changes <-chan Change // Read-only external channel

	changes  chan Change // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a new watcher for the given plan directory.
// A non-positive debounce defaults to 100ms.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Dir:      dir,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: debounce,
	}
	return w, nil
}

// Start begins watching the plan directory for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Drain pending on close.
				for file := range pending {
					w.emitChange(file)
				}
				return
			}

			if !w.isPlanFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= w.debounce {
					w.emitChange(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

func (w *Watcher) isPlanFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".md") || base == "project.toml"
}

func (w *Watcher) emitChange(file string) {
	if filepath.Base(file) == "project.toml" {
		w.changes <- Change{Kind: ChangeManifest, File: file}
		return
	}

	// Try to parse the file to get the task ID.
	task, err := parseTaskFile(file, Defaults{})
	if err != nil {
		// File may have been removed.
		w.changes <- Change{Kind: ChangeRemoved, File: file}
		return
	}

	w.changes <- Change{
		Kind:   ChangeTask,
		TaskID: task.ID,
		File:   file,
	}
}
