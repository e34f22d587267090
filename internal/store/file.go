package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/planora/eventcast/internal/event"
)

// FileStore persists events as a single JSON document {"events": [...]}. The
// file is reloaded on every operation so external edits become visible on
// the next call, and a mutex serializes read-modify-write cycles so
// concurrent requests cannot drop each other's writes or hand out duplicate
// ids.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type document struct {
	Events []event.Event `json:"events"`
}

// NewFileStore creates a store backed by the JSON file at path. The file
// does not have to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the backing file. A missing or corrupt file is treated as an
// empty store, never as an error.
func (s *FileStore) load() document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return document{}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("store: %s is corrupt, treating as empty: %v", s.path, err)
		return document{}
	}
	return doc
}

// save replaces the backing file via a temp file and rename so a crash
// mid-write cannot truncate the store.
func (s *FileStore) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write events file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// List returns all persisted events.
func (s *FileStore) List() ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.load().Events
	if events == nil {
		events = []event.Event{}
	}
	return events, nil
}

// Get returns the event with the given id.
func (s *FileStore) Get(id int) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.load().Events {
		if e.ID == id {
			return e, nil
		}
	}
	return event.Event{}, event.ErrNotFound
}

// Create assigns the next sequential id and appends the event.
func (s *FileStore) Create(e event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	e.ID = len(doc.Events) + 1
	doc.Events = append(doc.Events, e)

	if err := s.save(doc); err != nil {
		return event.Event{}, err
	}
	return e, nil
}

// Update applies the mutation to the stored event under the store lock and
// persists the result.
func (s *FileStore) Update(id int, apply func(*event.Event)) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	for i := range doc.Events {
		if doc.Events[i].ID != id {
			continue
		}
		apply(&doc.Events[i])
		if err := s.save(doc); err != nil {
			return event.Event{}, err
		}
		return doc.Events[i], nil
	}
	return event.Event{}, event.ErrNotFound
}
