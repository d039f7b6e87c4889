// Package watch feeds live filesystem changes into the workspace index.
// Events are debounced per path so editor save storms collapse into one
// upsert, and new directories are watched as they appear.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/forcelint/forcelint/internal/debug"
	forceerr "github.com/forcelint/forcelint/internal/errors"
	"github.com/forcelint/forcelint/internal/metadata"
	"github.com/forcelint/forcelint/internal/workspace"
)

// Watcher monitors the workspace roots and applies changes through
// Workspace.Upsert and Workspace.Remove.
type Watcher struct {
	fsw       *fsnotify.Watcher
	ws        *workspace.Workspace
	ignore    workspace.IgnoreRules
	roots     []string
	debouncer *eventDebouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher over the given roots. debounce controls how long a
// path's events are batched before they reach the index.
func New(ws *workspace.Workspace, ignore workspace.IgnoreRules, roots []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsw:    fsw,
		ws:     ws,
		ignore: ignore,
		roots:  roots,
		ctx:    ctx,
		cancel: cancel,
	}
	w.debouncer = newEventDebouncer(debounce, w.apply)
	return w, nil
}

// Start adds watches for every directory under the roots and begins
// processing events.
func (w *Watcher) Start() error {
	for _, root := range w.roots {
		if err := w.addWatches(root); err != nil {
			return fmt.Errorf("failed to add watches under %s: %w", root, err)
		}
	}

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop tears the watcher down and waits for its goroutines. Events still
// pending in the debouncer are dropped; the index is being abandoned with
// the session anyway.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fsw.Close()
	w.debouncer.stop()
	w.wg.Wait()
	return err
}

// addWatches registers every directory in a subtree, honoring the same
// pruning rules as the scan.
func (w *Watcher) addWatches(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return filepath.SkipDir
		}
		if w.ignore != nil && !w.ignore.IncludeDirectory(path) && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Printf("Warning: failed to add watch for %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	debug.LogWatch("event %v for %s", event.Op, path)

	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || base == "node_modules" {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		// Gone from disk: removes and renames both release the entry.
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			w.debouncer.addEvent(path, eventRemove)
		}
		return
	}

	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			if w.ignore == nil || w.ignore.IncludeDirectory(path) {
				if err := w.fsw.Add(path); err != nil {
					log.Printf("Warning: failed to add watch for new directory %s: %v", path, err)
				}
			}
		}
		return
	}

	if w.ignore != nil && !w.ignore.IncludeFile(path) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		w.debouncer.addEvent(path, eventUpsert)
	}
}

// apply translates a debounced batch into index mutations. Removals run
// first so a rename that produced both a remove and a create settles with
// the new path owning the type.
func (w *Watcher) apply(events map[string]eventKind) {
	for path, kind := range events {
		if kind != eventRemove {
			continue
		}
		if doc := metadata.ClassifyPath(path); doc != nil {
			debug.LogWatch("remove %s", path)
			w.ws.Remove(doc)
		}
	}
	for path, kind := range events {
		if kind != eventUpsert {
			continue
		}
		doc := metadata.ClassifyPath(path)
		if doc == nil || doc.Ignorable() {
			continue
		}
		debug.LogWatch("upsert %s", path)
		if !w.ws.Upsert(doc) {
			log.Printf("Warning: %v", forceerr.NewIndexingError("upsert",
				errors.New("collides with an indexed type")).WithFile(path).WithRecoverable(true))
		}
	}
}

type eventKind int

const (
	eventUpsert eventKind = iota
	eventRemove
)

// eventDebouncer batches per-path events: only the latest event for a path
// within the window survives.
type eventDebouncer struct {
	mu       sync.Mutex
	events   map[string]eventKind
	debounce time.Duration
	timer    *time.Timer
	flushFn  func(map[string]eventKind)
	stopped  bool
}

func newEventDebouncer(debounce time.Duration, flushFn func(map[string]eventKind)) *eventDebouncer {
	return &eventDebouncer{
		events:   make(map[string]eventKind),
		debounce: debounce,
		flushFn:  flushFn,
	}
}

func (d *eventDebouncer) addEvent(path string, kind eventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.events[path] = kind
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.flush)
}

func (d *eventDebouncer) flush() {
	d.mu.Lock()
	events := d.events
	d.events = make(map[string]eventKind)
	d.mu.Unlock()

	if len(events) == 0 {
		return
	}
	d.flushFn(events)
}

func (d *eventDebouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
