package repositories

import (
	"context"
	"fmt"

	"teahouse/internal/config"
	"teahouse/internal/models"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreDocumentStore is a Cloud Firestore implementation of DocumentStore.
type FirestoreDocumentStore struct {
	client *firestore.Client
}

// NewFirestoreDocumentStore connects to Firestore through the Firebase Admin SDK.
// With FIRESTORE_EMULATOR_HOST set the client talks to the emulator instead.
func NewFirestoreDocumentStore(ctx context.Context, cfg config.StoreConfig) (*FirestoreDocumentStore, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreDocumentStore{client: client}, nil
}

// Get retrieves a document by its key.
func (s *FirestoreDocumentStore) Get(ctx context.Context, collection, key string) (*models.Document, error) {
	ref := s.client.Collection(collection).Doc(key)
	if ref == nil {
		return nil, ErrDocumentNotFound
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, key, err)
	}
	return &models.Document{Key: snap.Ref.ID, Fields: snap.Data()}, nil
}

// GetAll retrieves every document of the collection.
func (s *FirestoreDocumentStore) GetAll(ctx context.Context, collection string) ([]models.Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all %s: %w", collection, err)
	}
	docs := make([]models.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, models.Document{Key: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

// Add creates a document with an auto-generated key.
func (s *FirestoreDocumentStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

// Update merges fields into the document. Each top-level field is replaced as a
// whole; field names are used verbatim, never split on dots.
func (s *FirestoreDocumentStore) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	ref := s.client.Collection(collection).Doc(key)
	if ref == nil {
		return ErrDocumentNotFound
	}
	if len(fields) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to update %s/%s: %w", collection, key, err)
	}
	return nil
}

// Delete removes the document, failing with ErrDocumentNotFound when it does not exist.
func (s *FirestoreDocumentStore) Delete(ctx context.Context, collection, key string) error {
	ref := s.client.Collection(collection).Doc(key)
	if ref == nil {
		return ErrDocumentNotFound
	}
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete %s/%s: %w", collection, key, err)
	}
	return nil
}

// Close closes the Firestore client.
func (s *FirestoreDocumentStore) Close() error {
	return s.client.Close()
}
