package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Lllllllleong/linkedlens/internal/models"
)

// MemoryStore keeps documents in process. It backs tests and local fixtures.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

// Put stores fields under collection/id, replacing any previous document.
func (s *MemoryStore) Put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]map[string]any)
		s.collections[collection] = docs
	}
	docs[id] = fields
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := validate(collection, id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, upstream(collection, id, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.collections[collection][id]
	if !ok {
		return nil, notFound(collection, id)
	}
	return models.NewDocument(id, fields), nil
}

func (s *MemoryStore) Close() error { return nil }

// LoadFixtures reads a JSON object of the form
// {"collection": {"docID": {...fields}}} into the store.
func (s *MemoryStore) LoadFixtures(r io.Reader) error {
	var fixtures map[string]map[string]map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&fixtures); err != nil {
		return fmt.Errorf("failed to decode fixtures: %w", err)
	}
	for collection, docs := range fixtures {
		for id, fields := range docs {
			s.Put(collection, id, fields)
		}
	}
	return nil
}

// LoadFixturesFile is LoadFixtures for a file on disk.
func (s *MemoryStore) LoadFixturesFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open fixtures file %s: %w", path, err)
	}
	defer f.Close()
	return s.LoadFixtures(f)
}
