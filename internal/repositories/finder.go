package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"teahouse/internal/models"
)

// Finder locates a single document by an externally supplied id.
type Finder interface {
	Find(ctx context.Context, collection, id string) (*models.Document, error)
}

// LenientFinder accepts either a storage key or a legacy logical id. It tries the
// key first and falls back to scanning the collection for a document whose `id`
// field matches.
type LenientFinder struct {
	store DocumentStore
}

// NewLenientFinder creates a LenientFinder over store.
func NewLenientFinder(store DocumentStore) *LenientFinder {
	return &LenientFinder{store: store}
}

// Find returns the document keyed by id, or else the first document (in store
// order) whose logical id matches id. ErrDocumentNotFound when neither exists.
func (f *LenientFinder) Find(ctx context.Context, collection, id string) (*models.Document, error) {
	doc, err := f.store.Get(ctx, collection, id)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, ErrDocumentNotFound) {
		return nil, err
	}

	docs, err := f.store.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if v, ok := docs[i].LogicalID(); ok && LogicalIDMatches(v, id) {
			return &docs[i], nil
		}
	}
	return nil, ErrDocumentNotFound
}

// LogicalIDMatches reports whether a stored logical id equals id, either as the
// same string or as the same number (a stored 7 or "07" matches "7").
func LogicalIDMatches(stored interface{}, id string) bool {
	switch v := stored.(type) {
	case string:
		if v == id {
			return true
		}
		// "07" and "7" name the same number
		n, err := strconv.ParseFloat(v, 64)
		return err == nil && numberEquals(n, id)
	case float64:
		return numberEquals(v, id)
	case float32:
		return numberEquals(float64(v), id)
	case int:
		return numberEquals(float64(v), id)
	case int32:
		return numberEquals(float64(v), id)
	case int64:
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			return n == v
		}
		return numberEquals(float64(v), id)
	case json.Number:
		if v.String() == id {
			return true
		}
		f, err := v.Float64()
		return err == nil && numberEquals(f, id)
	default:
		return false
	}
}

func numberEquals(stored float64, id string) bool {
	n, err := strconv.ParseFloat(id, 64)
	return err == nil && n == stored
}
