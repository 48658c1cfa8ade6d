/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package consensus

import "errors"

var (
	// ErrEmptyCandidateSet is returned when there is nothing to aggregate.
	ErrEmptyCandidateSet = errors.New("empty candidate set")
	// ErrMalformedCandidate is returned when a candidate fails validation.
	ErrMalformedCandidate = errors.New("malformed candidate")
)
