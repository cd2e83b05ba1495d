package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teahouse/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// documentRecord is the single table backing every collection.
type documentRecord struct {
	Collection string            `gorm:"primaryKey;size:64"`
	Key        string            `gorm:"column:doc_key;primaryKey;size:64"`
	Data       datatypes.JSONMap `gorm:"not null"`
	CreatedAt  time.Time         `gorm:"index"`
	UpdatedAt  time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

// GORMDocumentStore is a GORM implementation of DocumentStore. It works against
// SQLite and PostgreSQL alike.
type GORMDocumentStore struct {
	db *gorm.DB
}

// NewGORMDocumentStore creates a new instance of GORMDocumentStore and migrates
// the documents table.
func NewGORMDocumentStore(db *gorm.DB) (*GORMDocumentStore, error) {
	if err := db.AutoMigrate(&documentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GORMDocumentStore{db: db}, nil
}

// Get retrieves a single document by its key.
func (s *GORMDocumentStore) Get(ctx context.Context, collection, key string) (*models.Document, error) {
	var rec documentRecord
	err := s.db.WithContext(ctx).First(&rec, "collection = ? AND doc_key = ?", collection, key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, key, err)
	}
	return &models.Document{Key: rec.Key, Fields: fieldsOf(rec)}, nil
}

// GetAll retrieves every document of the collection, oldest first.
func (s *GORMDocumentStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	var recs []documentRecord
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at").Order("doc_key").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all %s: %w", collection, err)
	}
	docs := make([]models.Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, models.Document{Key: rec.Key, Fields: fieldsOf(rec)})
	}
	return docs, nil
}

// Add inserts a new document under a fresh key.
func (s *GORMDocumentStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	rec := documentRecord{
		Collection: collection,
		Key:        uuid.New().String(),
		Data:       datatypes.JSONMap(fields),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return rec.Key, nil
}

// Update merges fields into the stored document inside a transaction.
func (s *GORMDocumentStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec documentRecord
		if err := tx.First(&rec, "collection = ? AND doc_key = ?", collection, key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDocumentNotFound
			}
			return fmt.Errorf("failed to load %s/%s for update: %w", collection, key, err)
		}
		merged := fieldsOf(rec)
		for k, v := range fields {
			merged[k] = v
		}
		res := tx.Model(&documentRecord{}).
			Where("collection = ? AND doc_key = ?", collection, key).
			Updates(map[string]interface{}{"data": datatypes.JSONMap(merged), "updated_at": time.Now()})
		if res.Error != nil {
			return fmt.Errorf("failed to update %s/%s: %w", collection, key, res.Error)
		}
		return nil
	})
}

// Delete deletes a document by its key.
func (s *GORMDocumentStore) Delete(ctx context.Context, collection, key string) error {
	res := s.db.WithContext(ctx).Delete(&documentRecord{}, "collection = ? AND doc_key = ?", collection, key)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, key, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *GORMDocumentStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func fieldsOf(rec documentRecord) map[string]interface{} {
	out := make(map[string]interface{}, len(rec.Data))
	for k, v := range rec.Data {
		out[k] = v
	}
	return out
}
