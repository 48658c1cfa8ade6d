/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reasoning

import "errors"

var (
	// ErrUnparsableOutput is returned when a model reply holds no usable
	// differential diagnosis.
	ErrUnparsableOutput = errors.New("unparsable reasoning output")
	// ErrClientConfigIncomplete is returned when the LLM endpoint or model is
	// missing.
	ErrClientConfigIncomplete = errors.New("LLM configuration incomplete: URL and model must be set")
	// ErrEmptyCompletion is returned when the endpoint answers without choices.
	ErrEmptyCompletion = errors.New("LLM returned no choices")

	errPersonaIDRequired     = errors.New("persona id is required")
	errPersonaPromptRequired = errors.New("persona system prompt is required")
	errPersonaDuplicateID    = errors.New("duplicate persona id")
	errPersonaTemperature    = errors.New("persona temperature must be between 0 and 2")
	errNoPersonas            = errors.New("no personas defined")
)
