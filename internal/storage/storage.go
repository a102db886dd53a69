// Package storage reads, validates, and writes the persisted application
// state blob. Loading goes through an explicit validation step: callers get
// either a fully-valid state or an error, never partially-valid data.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keptlist/kept/internal/state"
)

// Load failure classes. All of them mean the same thing to the store:
// discard and fall back to the default state.
var (
	ErrNotFound      = errors.New("state not found")
	ErrCorrupt       = errors.New("state file is corrupt")
	ErrSchemaVersion = errors.New("state schema version mismatch")
)

// Store persists the application state as a single JSON file.
type Store struct {
	path       string
	schemaPath string
}

// Option configures a Store.
type Option func(*Store)

// WithSchemaFile validates against the schema file at path instead of the
// bundled schema.
func WithSchemaFile(path string) Option {
	return func(s *Store) {
		s.schemaPath = path
	}
}

// New creates a store for the state file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the state file. It returns ErrNotFound when the
// file is absent, ErrCorrupt when it cannot be parsed or fails structural
// validation, and ErrSchemaVersion when the stored version differs from
// the current one.
func (s *Store) Load() (state.AppState, error) {
	var zero state.AppState

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return zero, fmt.Errorf("read state file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	result := validateDocument(doc, s.schemaPath)
	if !result.Valid {
		return zero, fmt.Errorf("%w: %s", ErrCorrupt, joinErrors(result.Errors))
	}

	var st state.AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if st.Meta.SchemaVersion != state.SchemaVersion {
		return zero, fmt.Errorf("%w: stored %d, current %d",
			ErrSchemaVersion, st.Meta.SchemaVersion, state.SchemaVersion)
	}

	return st, nil
}

// Save writes the full state to the state file with 2-space indentation
// and a trailing newline, creating the parent directory if needed.
func (s *Store) Save(st state.AppState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Clear removes the state file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// Validate checks the state file structurally without loading it into the
// application. It returns an error only when the file cannot be read or
// parsed at all.
func (s *Store) Validate() (*ValidationResult, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return validateDocument(doc, s.schemaPath), nil
}
