/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/humaidq/labconsensus/biomarker"

	// Register pgx with database/sql for goose migrations.
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// GetEmbeddedMigrations returns the embedded migrations filesystem for use by CLI commands
func GetEmbeddedMigrations() embed.FS {
	return embedMigrations
}

// SyncSchema runs database migrations using goose and then syncs the
// biomarker catalog.
func SyncSchema(ctx context.Context, catalog *biomarker.Catalog) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if err := migrateUp(databaseURL); err != nil {
		return err
	}

	if err := SyncBiomarkerCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("failed to sync biomarker catalog: %w", err)
	}

	return nil
}

func migrateUp(url string) error {
	// A separate database/sql handle keeps Unix sockets and complex
	// connection strings intact for goose.
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close migration connection", "error", err)
		}
	}()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
