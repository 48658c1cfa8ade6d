/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errInvalidTotalSources   = errors.New("total-sources must not be negative")
	errInputRequired         = errors.New("input is required (a JSON case file, or - for stdin)")
	errUnknownCategory       = errors.New("unknown biomarker category")
)
