/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errStorageDisabled = errors.New("analysis storage is not configured")
	errMissingName     = errors.New("name query parameter is required")
	errInvalidLimit    = errors.New("limit must be a positive integer")
	errEmptyBody       = errors.New("request body is empty")
)

// Error codes returned in the "code" field of error responses.
const (
	codeInvalidJSON       = "invalid_json"
	codeInvalidCategory   = "invalid_category"
	codeInvalidID         = "invalid_id"
	codeInvalidLimit      = "invalid_limit"
	codeMissingName       = "missing_name"
	codeUnresolved        = "unresolved_biomarker"
	codeEmptyCandidateSet = "empty_candidate_set"
	codeMalformed         = "malformed_candidate"
	codeNoValues          = "no_values"
	codeNoSources         = "no_sources"
	codeNoReasoning       = "no_reasoning_output"
	codeNotFound          = "not_found"
	codeStorageDisabled   = "storage_disabled"
	codeInternal          = "internal_error"
)
