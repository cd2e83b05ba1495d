package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"teahouse/internal/models"

	"github.com/google/uuid"
)

type memoryCollection struct {
	docs  map[string]map[string]interface{}
	order []string
}

// MemoryDocumentStore is an in-memory implementation of DocumentStore. Documents
// are deep-copied on the way in and out, so callers never share maps with it.
type MemoryDocumentStore struct {
	collections map[string]*memoryCollection
	mu          sync.RWMutex
}

// NewMemoryDocumentStore creates a new instance of MemoryDocumentStore.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		collections: make(map[string]*memoryCollection),
	}
}

// Get returns a document by its key.
func (s *MemoryDocumentStore) Get(ctx context.Context, collection, key string) (*models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[collection]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	fields, ok := col.docs[key]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	cp, err := copyFields(fields)
	if err != nil {
		return nil, err
	}
	return &models.Document{Key: key, Fields: cp}, nil
}

// GetAll returns every document of the collection in insertion order.
func (s *MemoryDocumentStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[collection]
	if !ok {
		return []models.Document{}, nil
	}
	docs := make([]models.Document, 0, len(col.order))
	for _, key := range col.order {
		cp, err := copyFields(col.docs[key])
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.Document{Key: key, Fields: cp})
	}
	return docs, nil
}

// Add stores a new document under a fresh key.
func (s *MemoryDocumentStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cp, err := copyFields(fields)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	key := uuid.New().String()
	col.docs[key] = cp
	col.order = append(col.order, key)
	return key, nil
}

// Update merges fields into an existing document.
func (s *MemoryDocumentStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := copyFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[collection]
	if !ok {
		return ErrDocumentNotFound
	}
	existing, ok := col.docs[key]
	if !ok {
		return ErrDocumentNotFound
	}
	for k, v := range cp {
		existing[k] = v
	}
	return nil
}

// Delete removes a document by its key.
func (s *MemoryDocumentStore) Delete(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[collection]
	if !ok {
		return ErrDocumentNotFound
	}
	if _, ok := col.docs[key]; !ok {
		return ErrDocumentNotFound
	}
	delete(col.docs, key)
	for i, k := range col.order {
		if k == key {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op.
func (s *MemoryDocumentStore) Close() error {
	return nil
}

// collection returns the named collection, creating it. Callers hold the write lock.
func (s *MemoryDocumentStore) collection(name string) *memoryCollection {
	col, ok := s.collections[name]
	if !ok {
		col = &memoryCollection{docs: make(map[string]map[string]interface{})}
		s.collections[name] = col
	}
	return col
}

// copyFields deep-copies a field map through JSON, which also normalizes numbers
// to float64 the same way the other backends return them.
func copyFields(fields map[string]interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document fields: %w", err)
	}
	out := make(map[string]interface{}, len(fields))
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to copy document fields: %w", err)
	}
	return out, nil
}
