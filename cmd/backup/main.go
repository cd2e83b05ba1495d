// Command backup exports every collection of the configured document store to
// <collection>_backup.json files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"teahouse/internal/backup"
	"teahouse/internal/config"
	"teahouse/internal/logger"
	"teahouse/internal/models"
	"teahouse/internal/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	dir := flag.String("dir", cfg.BackupDir, "directory the backup files are written to")
	flag.Parse()

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repositories.OpenDocumentStore(ctx, cfg.Store)
	if err != nil {
		log.Error("failed to open document store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	written, err := backup.Export(ctx, store, models.Collections, *dir, log)
	if err != nil {
		log.Error("backup failed", "written", len(written), "error", err)
		os.Exit(1)
	}
	log.Info("backup complete", "files", len(written), "dir", *dir)
}
