/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package biomarker

import "errors"

var (
	// ErrUnresolvedBiomarker is returned when a name matches no definition.
	ErrUnresolvedBiomarker = errors.New("unresolved biomarker")
	// ErrInvalidValue is returned for NaN or infinite values.
	ErrInvalidValue = errors.New("invalid biomarker value")
	// ErrMissingValue is returned when the value was absent or null.
	ErrMissingValue = errors.New("biomarker value is missing")
	// ErrEmptyName is returned when the raw name is blank.
	ErrEmptyName = errors.New("biomarker name is empty")

	errDuplicateID      = errors.New("duplicate definition id")
	errDuplicateAlias   = errors.New("alias shared by two definitions")
	errEmptyID          = errors.New("definition id is empty")
	errUnknownCategory  = errors.New("unknown category")
	errInvertedRange    = errors.New("range minimum exceeds maximum")
	errInvertedCritical = errors.New("critical low exceeds critical high")
)
