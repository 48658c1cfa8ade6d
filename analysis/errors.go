/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "errors"

var (
	// ErrNoReasoningOutput is returned when no source produced a usable
	// differential. It always wraps consensus.ErrEmptyCandidateSet too.
	ErrNoReasoningOutput = errors.New("no reasoning source produced a differential")
	// ErrNoSources is returned by Analyze when the engine has no sources.
	ErrNoSources = errors.New("no reasoning sources configured")
	// ErrNoValues is returned when the input carries no lab values.
	ErrNoValues = errors.New("no lab values supplied")
)
