package repositories

import (
	"context"
	"fmt"

	"teahouse/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDocumentStore builds the DocumentStore selected by cfg.Backend.
func OpenDocumentStore(ctx context.Context, cfg config.StoreConfig) (DocumentStore, error) {
	var (
		store DocumentStore
		err   error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryDocumentStore(), nil
	case config.BackendSQLite:
		store, err = openGORM(sqlite.Open(cfg.SQLitePath))
	case config.BackendPostgres:
		store, err = openGORM(postgres.Open(cfg.DatabaseDSN))
	case config.BackendFirestore:
		store, err = NewFirestoreDocumentStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func openGORM(dialector gorm.Dialector) (*GORMDocumentStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return NewGORMDocumentStore(db)
}
