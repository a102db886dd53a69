// Package store owns the application state. It is constructed once at
// startup, restores persisted state (falling back to the default state on
// any load problem), and exposes the mutation and query API consumed by
// the view surfaces. Persistence happens synchronously after every
// mutation; write failures are absorbed and the in-memory state stays
// authoritative for the session.
package store

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keptlist/kept/internal/ids"
	"github.com/keptlist/kept/internal/state"
	"github.com/keptlist/kept/internal/storage"
)

// Persister saves and restores the application state blob.
// *storage.Store is the production implementation.
type Persister interface {
	Load() (state.AppState, error)
	Save(state.AppState) error
	Clear() error
}

// Store is the single owner of the application state. It is safe for
// concurrent use; mutations are serialized and always run to completion
// before the next one starts.
type Store struct {
	mu      sync.RWMutex
	st      state.AppState
	persist Persister
	clock   func() time.Time
	newID   func() string
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator overrides the id generator used for new entities.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates the store around a persistence adapter. Persisted state is
// restored when it is present and valid; anything else (absent, corrupt,
// schema version mismatch) falls back to the default state. The restored
// state is normalized so the sentinel category exists and no todo points
// at a missing category.
func New(p Persister, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, fmt.Errorf("store: persister is required")
	}

	s := &Store{
		persist: p,
		clock:   time.Now,
		newID:   ids.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	now := s.now()
	st, err := p.Load()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no persisted state, starting fresh")
		} else {
			s.logger.Warn("discarding persisted state", "err", err)
		}
		st = state.Default(now)
	} else if st.Normalize(now) {
		s.logger.Debug("normalized persisted state")
	}
	s.st = st

	return s, nil
}

// Clear wipes both the in-memory state and the persisted blob, returning
// the store to the default state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = state.Default(s.now())
	if err := s.persist.Clear(); err != nil {
		s.logger.Warn("clear persisted state", "err", err)
	}
}

// now returns the current time in Unix milliseconds.
func (s *Store) now() int64 {
	return s.clock().UnixMilli()
}

// save persists the current state. Failures are absorbed: the session
// continues in-memory only. Callers must hold the write lock.
func (s *Store) save() {
	if err := s.persist.Save(s.st); err != nil {
		s.logger.Warn("persist state", "err", err)
	}
}
