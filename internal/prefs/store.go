package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kk-code-lab/kexplorer/internal/logging"
	"go.uber.org/zap"
)

// Store is the single owner of the preferences file. Mutations update memory
// synchronously and hand a snapshot to one writer goroutine through a
// one-slot queue; a snapshot still waiting in the slot is replaced by a newer
// one, so disk writes follow mutation order and may skip intermediate states.
type Store struct {
	path     string
	logger   *zap.Logger
	defaults Preferences
	firstRun bool // no preferences file existed at Open

	mu        sync.Mutex
	prefs     Preferences
	seq       uint64 // last enqueued snapshot
	written   uint64 // last snapshot the writer finished with
	writeErr  error
	drained   chan struct{}
	listeners map[int]func(Preferences)
	nextID    int
	closed    bool

	queue chan snapshot
	quit  chan struct{}
	done  chan struct{}
}

type snapshot struct {
	seq   uint64
	prefs Preferences
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; nil means no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logging.OrNop(logger)
	}
}

// WithDefaults replaces the preferences used when the file is missing or unreadable.
func WithDefaults(p Preferences) Option {
	return func(s *Store) {
		s.defaults = p.Clone()
	}
}

// Open creates the settings directory, loads path if it exists and starts the
// writer. A missing or malformed file yields defaults; only a settings
// directory that cannot be created is an error.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:      path,
		logger:    zap.NewNop(),
		defaults:  Default(),
		drained:   make(chan struct{}),
		listeners: make(map[int]func(Preferences)),
		queue:     make(chan snapshot, 1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	s.prefs = s.load()

	go s.run()
	return s, nil
}

func (s *Store) load() Preferences {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.firstRun = true
		} else {
			s.logger.Warn("could not read preferences file, using defaults",
				zap.String("path", s.path), zap.Error(err))
		}
		return s.defaults.Clone()
	}

	p, err := Decode(data, s.defaults)
	if err != nil {
		s.logger.Error("could not decode preferences file, using defaults",
			zap.String("path", s.path), zap.Error(err))
		return s.defaults.Clone()
	}
	s.logger.Debug("loaded preferences", zap.String("path", s.path))
	return p
}

// FirstRun reports whether no preferences file existed when the store was
// opened.
func (s *Store) FirstRun() bool {
	return s.firstRun
}

// Path returns the preferences file location.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current preferences.
func (s *Store) Snapshot() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// HomeDirectory returns the configured home directory.
func (s *Store) HomeDirectory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.HomeDir
}

// ShowHiddenFiles reports whether dot files are shown.
func (s *Store) ShowHiddenFiles() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.ShowHiddenFiles
}

// Applications returns a copy of the name to command mapping.
func (s *Store) Applications() map[string]string {
	return s.Snapshot().Applications
}

// Application returns the command stored under name.
func (s *Store) Application(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	command, ok := s.prefs.Applications[name]
	return command, ok
}

// SetHomeDirectory changes the directory the home action navigates to.
func (s *Store) SetHomeDirectory(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("home directory: %w", ErrInvalid)
	}
	return s.update(func(p *Preferences) bool {
		if p.HomeDir == dir {
			return false
		}
		p.HomeDir = dir
		return true
	})
}

// SetShowHiddenFiles changes dot file visibility.
func (s *Store) SetShowHiddenFiles(show bool) error {
	return s.update(func(p *Preferences) bool {
		if p.ShowHiddenFiles == show {
			return false
		}
		p.ShowHiddenFiles = show
		return true
	})
}

// AddApplication stores command under name, replacing any previous entry.
func (s *Store) AddApplication(name, command string) error {
	name = strings.TrimSpace(name)
	command = strings.TrimSpace(command)
	if name == "" || command == "" {
		return fmt.Errorf("application %q: %w", name, ErrInvalid)
	}
	return s.update(func(p *Preferences) bool {
		if existing, ok := p.Applications[name]; ok && existing == command {
			return false
		}
		p.Applications[name] = command
		return true
	})
}

// RemoveApplication deletes the application stored under name.
func (s *Store) RemoveApplication(name string) error {
	return s.update(func(p *Preferences) bool {
		if _, ok := p.Applications[name]; !ok {
			return false
		}
		delete(p.Applications, name)
		return true
	})
}

// Subscribe registers fn to receive a copy of the preferences after every
// change. Callbacks run on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Preferences)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn and, when it reports a change, queues a snapshot and
// notifies subscribers.
func (s *Store) update(fn func(*Preferences) bool) error {
	s.mu.Lock()
	if !fn(&s.prefs) {
		s.mu.Unlock()
		return nil
	}
	snap := s.prefs.Clone()

	var err error
	if s.closed {
		err = ErrClosed
	} else {
		s.seq++
		s.enqueue(snapshot{seq: s.seq, prefs: snap})
	}

	listeners := make([]func(Preferences), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap.Clone())
	}
	return err
}

// enqueue must be called with s.mu held so snapshots enter the slot in
// sequence order.
func (s *Store) enqueue(snap snapshot) {
	for {
		select {
		case s.queue <- snap:
			return
		default:
		}
		select {
		case stale := <-s.queue:
			s.logger.Debug("coalesced preferences snapshot",
				zap.Uint64("dropped", stale.seq), zap.Uint64("pending", snap.seq))
		default:
		}
	}
}

func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case snap := <-s.queue:
			s.persist(snap)
		case <-s.quit:
			select {
			case snap := <-s.queue:
				s.persist(snap)
			default:
			}
			return
		}
	}
}

func (s *Store) persist(snap snapshot) {
	data, err := Encode(snap.prefs)
	if err == nil {
		err = writeFileAtomic(s.path, data, 0o644)
	}
	if err != nil {
		s.logger.Error("could not save preferences",
			zap.String("path", s.path), zap.Uint64("seq", snap.seq), zap.Error(err))
	} else {
		s.logger.Debug("saved preferences", zap.Uint64("seq", snap.seq))
	}

	s.mu.Lock()
	if snap.seq > s.written {
		s.written = snap.seq
	}
	s.writeErr = err
	close(s.drained)
	s.drained = make(chan struct{})
	s.mu.Unlock()
}

// Sync blocks until the latest mutation has been written and returns the
// error of the last write, if any.
func (s *Store) Sync(ctx context.Context) error {
	for {
		s.mu.Lock()
		caughtUp := s.written >= s.seq
		err := s.writeErr
		wait := s.drained
		s.mu.Unlock()

		if caughtUp {
			return err
		}

		select {
		case <-wait:
		case <-s.done:
			s.mu.Lock()
			caughtUp, err = s.written >= s.seq, s.writeErr
			s.mu.Unlock()
			if caughtUp {
				return err
			}
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops accepting new snapshots, writes one still waiting and stops
// the writer. It returns the error of the last write.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.quit)
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeErr
}
