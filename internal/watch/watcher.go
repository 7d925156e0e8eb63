// Package watch reports changes inside the directory being browsed.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/kexplorer/internal/logging"
	"go.uber.org/zap"
)

// DefaultDebounce groups bursts of events (an extraction, a recursive delete)
// into one notification.
const DefaultDebounce = 200 * time.Millisecond

// Watcher follows a single directory at a time and calls onChange with that
// directory once events settle. onChange runs on the watcher goroutine.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration
	onChange func(dir string)

	mu      sync.Mutex
	current string

	cancel context.CancelFunc
	done   chan struct{}
}

// New starts a watcher. debounce <= 0 uses DefaultDebounce.
func New(onChange func(dir string), debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsw:      fsw,
		logger:   logging.OrNop(logger),
		debounce: debounce,
		onChange: onChange,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Watch switches the watched directory to dir. An empty dir stops watching.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.current {
		return nil
	}
	if w.current != "" {
		_ = w.fsw.Remove(w.current)
		w.current = ""
	}
	if dir == "" {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.current = dir
	return nil
}

// Current returns the watched directory.
func (w *Watcher) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if !pending {
				pending = true
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			if dir := w.Current(); dir != "" && w.onChange != nil {
				w.onChange(dir)
			}
		}
	}
}
