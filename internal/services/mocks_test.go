package services_test

import (
	"context"
	"sync"
	"testing"

	"teahouse/internal/logger"
	"teahouse/internal/models"
	"teahouse/internal/repositories"
	"teahouse/internal/services"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockDocumentStore is a mock implementation of repositories.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Get(ctx context.Context, collection, key string) (*models.Document, error) {
	args := m.Called(ctx, collection, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockDocumentStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockDocumentStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	args := m.Called(ctx, collection, key, fields)
	return args.Error(0)
}

func (m *MockDocumentStore) Delete(ctx context.Context, collection, key string) error {
	args := m.Called(ctx, collection, key)
	return args.Error(0)
}

func (m *MockDocumentStore) Close() error {
	return m.Called().Error(0)
}

// recordingPublisher keeps every published routing key.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

func memoryDeps(t *testing.T) (services.Deps, *repositories.MemoryDocumentStore) {
	t.Helper()
	store := repositories.NewMemoryDocumentStore()
	return services.Deps{Store: store, Logger: logger.Discard()}, store
}

func testHasher() *services.BcryptHasher {
	return services.NewBcryptHasher(bcrypt.MinCost)
}

func ptr[T any](v T) *T {
	return &v
}
