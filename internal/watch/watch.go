// Package watch re-runs the validator whenever a watched metadata file
// changes. It is grounded on this module's compiler lineage's own
// fsnotify-based filesystem watcher (internal/runtime/vfs/watch_fsnotify.go):
// the same fsnotify.Watcher event/error channel loop, generalized from
// generic filesystem events to "re-validate this document". Its
// content-hash debounce is the same idiom as that lineage's package lock
// file content addressing (internal/packagemanager/lockfile.go), moved
// from sha256 to blake2b since a plain digest (not interop with any
// existing lockfile format) is all debouncing needs.
package watch

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/blake2b"

	"github.com/tracetools/ctfmeta/internal/ast"
	"github.com/tracetools/ctfmeta/internal/diag"
	"github.com/tracetools/ctfmeta/internal/validator"
)

// Loader parses a metadata document's raw bytes into an AST. This
// module does not include a CTF grammar parser itself (spec.md's
// Non-goals exclude parsing/lexing); callers supply one.
type Loader func(path string, content []byte) (*ast.Node, error)

// Watcher re-validates a set of metadata files as they change on disk.
type Watcher struct {
	fw   *fsnotify.Watcher
	sink diag.Sink
	load Loader

	mu     sync.Mutex
	hashes map[string][32]byte
}

// New constructs a Watcher. Close it when done to release the
// underlying fsnotify.Watcher.
func New(sink diag.Sink, load Loader) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	return &Watcher{
		fw:     fw,
		sink:   sink,
		load:   load,
		hashes: make(map[string][32]byte),
	}, nil
}

// Add registers path to be watched, and validates it once immediately.
func (w *Watcher) Add(path string) error {
	if err := w.fw.Add(path); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	w.revalidate(path)

	return nil
}

// Close stops watching and releases the underlying fsnotify.Watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Run processes filesystem events until ctx is canceled or the
// underlying watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.revalidate(ev.Name)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}

			w.sink.Errorf("watch: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// revalidate reads path, skips it if its content hash is unchanged
// since the last run, and otherwise parses and validates it.
func (w *Watcher) revalidate(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		w.sink.Errorf("watch: reading %s: %v", path, err)

		return
	}

	sum := blake2b.Sum256(content)

	w.mu.Lock()
	prev, seen := w.hashes[path]
	w.hashes[path] = sum
	w.mu.Unlock()

	if seen && prev == sum {
		return
	}

	root, err := w.load(path, content)
	if err != nil {
		w.sink.Errorf("watch: parsing %s: %v", path, err)

		return
	}

	if code := validator.Run(w.sink, root); code == 0 {
		w.sink.Infof("watch: %s is valid", path)
	} else {
		w.sink.Infof("watch: %s failed validation (code %d)", path, code)
	}
}
