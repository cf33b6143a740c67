package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when no event has the requested id.
var ErrNotFound = errors.New("event not found")

// Error wraps a failure reading or writing the backing file.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// FileStore persists events as a single JSON array. Every mutation reads the
// whole file, applies the change and rewrites it; the last writer wins.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
	seed []models.Event
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock overrides the clock used to stamp createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) { s.now = now }
}

// WithSeed sets the events written when the backing file does not exist yet.
func WithSeed(events []models.Event) Option {
	return func(s *FileStore) { s.seed = events }
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every event in storage order (newest first).
func (s *FileStore) List() ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the event with the given id.
func (s *FileStore) Get(id string) (models.Event, error) {
	events, err := s.List()
	if err != nil {
		return models.Event{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, ErrNotFound
}

// Create assigns an id and createdAt to the event and stores it at the head of the list.
func (s *FileStore) Create(in models.EventInput) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.load()
	if err != nil {
		return models.Event{}, err
	}

	var event models.Event
	in.Apply(&event)
	event.ID = uuid.New().String()
	event.CreatedAt = s.now().UTC().Round(0)

	events = append([]models.Event{event}, events...)
	if err := s.save(events); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// Update merges the present fields of in into the stored event.
func (s *FileStore) Update(id string, in models.EventInput) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.load()
	if err != nil {
		return models.Event{}, err
	}
	for i := range events {
		if events[i].ID != id {
			continue
		}
		in.Apply(&events[i])
		if err := s.save(events); err != nil {
			return models.Event{}, err
		}
		return events[i], nil
	}
	return models.Event{}, ErrNotFound
}

// Delete removes the event with the given id.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.load()
	if err != nil {
		return err
	}
	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(events) {
		return ErrNotFound
	}
	return s.save(kept)
}

// load reads the backing file, creating it when missing. Callers hold s.mu.
func (s *FileStore) load() ([]models.Event, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		events := s.seed
		if events == nil {
			events = []models.Event{}
		}
		log.Info().Str("path", s.path).Int("seeded", len(events)).Msg("Creating event data file")
		if err := s.save(events); err != nil {
			return nil, err
		}
		return append([]models.Event(nil), events...), nil
	}
	if err != nil {
		return nil, &Error{Op: "read", Path: s.path, Err: err}
	}

	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, &Error{Op: "decode", Path: s.path, Err: err}
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// save rewrites the backing file through a temp file and rename. Callers hold s.mu.
func (s *FileStore) save(events []models.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return &Error{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &Error{Op: "mkdir", Path: s.path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &Error{Op: "write", Path: s.path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &Error{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &Error{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return &Error{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}
