package repositories

import (
	"context"
	"errors"

	"teahouse/internal/models"
)

// ErrDocumentNotFound is returned when no document has the requested key.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore defines the interface for schemaless document access. Keys are
// assigned by the store on Add.
type DocumentStore interface {
	Get(ctx context.Context, collection, key string) (*models.Document, error)
	GetAll(ctx context.Context, collection string) ([]models.Document, error)
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)
	// Update merges fields into the document; fields not mentioned are kept.
	Update(ctx context.Context, collection, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, key string) error
	Close() error
}
