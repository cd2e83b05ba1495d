// Package backup exports document store collections to JSON files.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"teahouse/internal/repositories"
)

// FileName returns the backup file name of a collection.
func FileName(collection string) string {
	return collection + "_backup.json"
}

// Export writes one <collection>_backup.json file per collection into dir, in
// order. Each file is a JSON object mapping storage key to document fields.
// Export stops at the first failure; files already written are left in place.
func Export(ctx context.Context, store repositories.DocumentStore, collections []string, dir string, log *slog.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir %s: %w", dir, err)
	}

	written := make([]string, 0, len(collections))
	for _, collection := range collections {
		docs, err := store.GetAll(ctx, collection)
		if err != nil {
			return written, fmt.Errorf("failed to read collection %s: %w", collection, err)
		}

		byKey := make(map[string]map[string]interface{}, len(docs))
		for _, doc := range docs {
			byKey[doc.Key] = doc.Fields
		}
		data, err := json.MarshalIndent(byKey, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode collection %s: %w", collection, err)
		}

		path := filepath.Join(dir, FileName(collection))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Info("collection exported", "collection", collection, "documents", len(docs), "file", path)
		written = append(written, path)
	}
	return written, nil
}
