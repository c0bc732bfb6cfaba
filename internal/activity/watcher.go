// Package activity emits inserted-character events from file writes.
//
// The watcher observes the configured source trees with fsnotify and
// reports how much each saved file grew. Growth is the closest signal
// a standalone tool has to "characters typed": shrinking files are
// deletions and never count.
package activity

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mabbasbangash97/codevibe/internal/logging"
)

// Watcher monitors directories and emits positive size deltas.
type Watcher struct {
	Events <-chan int // Read-only external channel

	events  chan int // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	sizes map[string]int64
}

// NewWatcher creates a watcher over the given directories and their
// subtrees. Unreadable subtrees are logged and skipped.
func NewWatcher(dirs []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan int, 64)
	w := &Watcher{
		Events:  ch,
		events:  ch,
		done:    make(chan struct{}),
		watcher: fw,
		sizes:   make(map[string]int64),
	}
	for _, dir := range dirs {
		w.addTree(dir)
	}
	return w, nil
}

func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDir(d.Name()) && path != root {
				return filepath.SkipDir
			}
			if werr := w.watcher.Add(path); werr != nil {
				logging.L().Warn("failed to watch directory", "dir", path, "error", werr)
			}
			return nil
		}
		if trackable(path) {
			if info, ierr := d.Info(); ierr == nil {
				w.mu.Lock()
				w.sizes[path] = info.Size()
				w.mu.Unlock()
			}
		}
		return nil
	})
	if err != nil {
		logging.L().Warn("failed to walk watch root", "dir", root, "error", err)
	}
}

// Start begins delivering events.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop closes the watcher and the event channel.
func (w *Watcher) Stop() {
	if err := w.watcher.Close(); err != nil {
		logging.L().Warn("failed to close watcher", "error", err)
	}
	<-w.done // Wait for loop to exit
	close(w.events)
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.L().Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDir(filepath.Base(event.Name)) {
				w.addTree(event.Name)
			}
			return
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			w.mu.Lock()
			delete(w.sizes, event.Name)
			w.mu.Unlock()
		}
		return
	}
	if !trackable(event.Name) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return
	}

	delta := w.grow(event.Name, info.Size())
	if delta <= 0 {
		return
	}
	select {
	case w.events <- delta:
	default:
		// Drop rather than block the notify loop; the streak only
		// needs approximate volume.
	}
}

// grow updates the recorded size for path and returns the growth.
func (w *Watcher) grow(path string, size int64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.sizes[path]
	w.sizes[path] = size
	if size <= prev {
		return 0
	}
	d := size - prev
	const maxDelta = 1 << 20
	if d > maxDelta {
		// Bulk writes (generated files, checkouts) are not typing.
		return 0
	}
	return int(d)
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "target", "dist", "build":
		return true
	}
	return false
}

var skippedExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {},
	".pdf": {}, ".zip": {}, ".gz": {}, ".tar": {}, ".bin": {},
	".exe": {}, ".so": {}, ".a": {}, ".o": {}, ".db": {},
	".sqlite": {}, ".mp3": {}, ".mp4": {}, ".wav": {},
}

func trackable(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	_, skipped := skippedExts[strings.ToLower(filepath.Ext(path))]
	return !skipped
}
