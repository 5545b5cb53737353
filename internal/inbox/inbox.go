// Package inbox watches a plain text file and reports the lines appended
// to it.
package inbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/baxromumarov/rxstate/log"
)

// Watcher tails one file. Lines already in the file when Run starts are
// reported first; afterwards every complete line appended to it is
// reported once. A file that shrinks is read again from the start.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   log.Logger

	offset int64
}

// New returns a Watcher for path. Write bursts closer together than
// debounce are read in one batch.
func New(path string, debounce time.Duration, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.Noop{}
	}
	return &Watcher{path: path, debounce: debounce, logger: logger}
}

// Run watches the file until ctx is done, calling emit with each batch of
// new non-empty lines. It returns nil on cancellation and the first error
// returned by emit otherwise.
func (w *Watcher) Run(ctx context.Context, emit func([]string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("inbox: create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so a file created or replaced later is seen.
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("inbox: watch %s: %w", dir, err)
	}
	w.logger.Info("inbox watching", log.String("path", w.path))

	if err := w.flush(emit); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
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

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if w.debounce <= 0 {
				if err := w.flush(emit); err != nil {
					return err
				}
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.flush(emit); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("inbox watcher error", log.Err(err))
		}
	}
}

// flush reads the lines appended since the last flush and emits them.
func (w *Watcher) flush(emit func([]string) error) error {
	lines, err := w.readNew()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		w.logger.Warn("inbox read failed", log.String("path", w.path), log.Err(err))
		return nil
	}
	if len(lines) == 0 {
		return nil
	}
	w.logger.Debug("inbox lines", log.Int("count", len(lines)))
	return emit(lines)
}

// readNew returns the complete lines after w.offset and advances it past
// the last newline. A trailing partial line is left for the next read.
func (w *Watcher) readNew() ([]string, error) {
	f, err := os.Open(w.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < w.offset {
		w.logger.Info("inbox truncated, rereading", log.String("path", w.path))
		w.offset = 0
	}
	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return nil, nil
	}
	w.offset += int64(end + 1)
	return splitLines(data[:end]), nil
}

func splitLines(data []byte) []string {
	var out []string
	for _, l := range bytes.Split(data, []byte{'\n'}) {
		l = bytes.TrimSpace(l)
		if len(l) > 0 {
			out = append(out, string(l))
		}
	}
	return out
}
