package volt

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// FileSource watches a file of serialized actions and emits its contents
// whenever the file is written. Pair with Store.Feed to drive a store
// from a file, for instance in local tooling or integration harnesses.
type FileSource struct {
	path string

	// emitInitial controls whether the current file contents are emitted
	// immediately on Watch. On by default.
	emitInitial bool
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, emitInitial: true}
}

// SkipInitial disables the immediate emission of the current file
// contents, so only subsequent writes produce actions.
func (f *FileSource) SkipInitial() *FileSource {
	f.emitInitial = false
	return f
}

// Watch begins watching the file and returns a channel that emits the
// file contents on every write.
func (f *FileSource) Watch(ctx context.Context) (<-chan []byte, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(f.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", f.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		if f.emitInitial {
			if data, err := os.ReadFile(f.path); err == nil {
				select {
				case out <- data:
				case <-ctx.Done():
					return
				}
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				data, err := os.ReadFile(f.path)
				if err != nil {
					continue
				}
				select {
				case out <- data:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching despite transient errors.
			}
		}
	}()

	return out, nil
}
