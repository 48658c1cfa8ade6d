/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	// ErrDatabaseURLEnvVarNotSet is returned when no database URL is configured.
	ErrDatabaseURLEnvVarNotSet = errors.New("DATABASE_URL environment variable is not set")
	// ErrDatabaseNameNotSpecified is returned when the URL has no database name.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in DATABASE_URL")
	// ErrDatabaseConnectionNotInitialized is returned before Init succeeds.
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	// ErrAnalysisNotFound is returned when no analysis has the requested id.
	ErrAnalysisNotFound = errors.New("analysis not found")
)
