/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/humaidq/labconsensus/biomarker"
)

// StoredBiomarker is a catalog row as persisted in biomarker_definitions.
type StoredBiomarker struct {
	ID       string
	Name     string
	Category biomarker.Category
	Unit     string
	Aliases  []string
}

// SyncBiomarkerCatalog upserts every definition of catalog and removes rows
// for definitions that no longer exist. A nil catalog syncs the built-in one.
func SyncBiomarkerCatalog(ctx context.Context, catalog *biomarker.Catalog) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if catalog == nil {
		catalog = biomarker.DefaultCatalog()
	}

	definitions := catalog.Definitions()
	logger.Infof("Syncing %d biomarker definitions to database...", len(definitions))

	query := `
		INSERT INTO biomarker_definitions (
			id, name, category, unit,
			lab_min, lab_max, functional_min, functional_max,
			critical_low, critical_high, aliases, adjustments
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			lab_min = EXCLUDED.lab_min,
			lab_max = EXCLUDED.lab_max,
			functional_min = EXCLUDED.functional_min,
			functional_max = EXCLUDED.functional_max,
			critical_low = EXCLUDED.critical_low,
			critical_high = EXCLUDED.critical_high,
			aliases = EXCLUDED.aliases,
			adjustments = EXCLUDED.adjustments,
			updated_at = now()
	`

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back catalog sync", "error", err)
		}
	}()

	ids := make([]string, 0, len(definitions))

	for _, def := range definitions {
		adjustments := []byte("{}")
		if len(def.Adjustments) > 0 {
			adjustments, err = json.Marshal(def.Adjustments)
			if err != nil {
				return fmt.Errorf("failed to encode adjustments for %s: %w", def.ID, err)
			}
		}

		aliases := def.Aliases
		if aliases == nil {
			aliases = []string{}
		}

		_, err = tx.Exec(ctx, query,
			def.ID, def.Name, string(def.Category), def.Unit,
			def.LabRange.Min, def.LabRange.Max,
			def.FunctionalRange.Min, def.FunctionalRange.Max,
			def.CriticalLow, def.CriticalHigh,
			aliases, adjustments,
		)
		if err != nil {
			return fmt.Errorf("failed to sync biomarker %s: %w", def.ID, err)
		}

		ids = append(ids, def.ID)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM biomarker_definitions WHERE NOT (id = ANY($1))`, ids)
	if err != nil {
		return fmt.Errorf("failed to prune biomarker definitions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog sync: %w", err)
	}

	logger.Infof("Successfully synced %d biomarker definitions (%d removed)", len(ids), tag.RowsAffected())

	return nil
}

// ListStoredBiomarkers returns the persisted catalog rows ordered by category
// and name. An empty category returns every row.
func ListStoredBiomarkers(ctx context.Context, category biomarker.Category) ([]StoredBiomarker, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, name, category, unit, aliases
		FROM biomarker_definitions
		WHERE $1 = '' OR category = $1
		ORDER BY category ASC, name ASC
	`

	rows, err := pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list biomarkers: %w", err)
	}
	defer rows.Close()

	var out []StoredBiomarker

	for rows.Next() {
		var (
			b   StoredBiomarker
			cat string
		)

		if err := rows.Scan(&b.ID, &b.Name, &cat, &b.Unit, &b.Aliases); err != nil {
			return nil, fmt.Errorf("failed to scan biomarker: %w", err)
		}

		b.Category = biomarker.Category(cat)
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating biomarkers: %w", err)
	}

	return out, nil
}
