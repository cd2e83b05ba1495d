package repositories_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"teahouse/internal/models"
	"teahouse/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientFinder_ByStorageKey(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryDocumentStore()
	key, err := store.Add(ctx, "teasProducts", map[string]interface{}{"name": "Sencha"})
	require.NoError(t, err)

	doc, err := repositories.NewLenientFinder(store).Find(ctx, "teasProducts", key)
	require.NoError(t, err)
	assert.Equal(t, key, doc.Key)
}

func TestLenientFinder_ByLogicalID(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryDocumentStore()
	_, err := store.Add(ctx, "teasProducts", map[string]interface{}{"id": "p1", "name": "Sencha"})
	require.NoError(t, err)
	numericKey, err := store.Add(ctx, "teasProducts", map[string]interface{}{"id": 7, "name": "Matcha"})
	require.NoError(t, err)

	finder := repositories.NewLenientFinder(store)

	doc, err := finder.Find(ctx, "teasProducts", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Sencha", doc.Fields["name"])

	doc, err = finder.Find(ctx, "teasProducts", "7")
	require.NoError(t, err)
	assert.Equal(t, numericKey, doc.Key)

	_, err = finder.Find(ctx, "teasProducts", "missing")
	assert.ErrorIs(t, err, repositories.ErrDocumentNotFound)
}

func TestLenientFinder_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryDocumentStore()
	first, err := store.Add(ctx, "events", map[string]interface{}{"id": "dup", "title": "one"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "events", map[string]interface{}{"id": "dup", "title": "two"})
	require.NoError(t, err)

	doc, err := repositories.NewLenientFinder(store).Find(ctx, "events", "dup")
	require.NoError(t, err)
	assert.Equal(t, first, doc.Key)
}

type failingStore struct {
	repositories.DocumentStore
}

func (failingStore) Get(context.Context, string, string) (*models.Document, error) {
	return nil, errors.New("backend unavailable")
}

func TestLenientFinder_NumericStringLogicalID(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryDocumentStore()
	key, err := store.Add(ctx, "teasProducts", map[string]interface{}{"id": "07", "name": "Genmaicha"})
	require.NoError(t, err)

	doc, err := repositories.NewLenientFinder(store).Find(ctx, "teasProducts", "7")
	require.NoError(t, err)
	assert.Equal(t, key, doc.Key)

	_, err = repositories.NewLenientFinder(store).Find(ctx, "teasProducts", "8")
	assert.ErrorIs(t, err, repositories.ErrDocumentNotFound)
}

func TestLenientFinder_PropagatesStoreErrors(t *testing.T) {
	_, err := repositories.NewLenientFinder(failingStore{}).Find(context.Background(), "events", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrDocumentNotFound)
}

func TestLogicalIDMatches(t *testing.T) {
	tests := []struct {
		name   string
		stored interface{}
		id     string
		want   bool
	}{
		{"same string", "p1", "p1", true},
		{"different string", "p1", "p2", false},
		{"numeric string with leading zero", "07", "7", true},
		{"numeric strings compared as numbers", "7.0", "7", true},
		{"numeric string mismatch", "07", "8", false},
		{"non numeric string is not coerced", "p07", "7", false},
		{"float", float64(7), "7", true},
		{"float with decimals", 7.5, "7.5", true},
		{"float mismatch", float64(7), "8", false},
		{"int", 7, "7", true},
		{"int64", int64(42), "42", true},
		{"json number", json.Number("3"), "3", true},
		{"empty id never matches zero", float64(0), "", false},
		{"non numeric id", float64(7), "seven", false},
		{"bool", true, "true", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repositories.LogicalIDMatches(tt.stored, tt.id))
		})
	}
}
