/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reasoning

import (
	"context"
	"fmt"

	"github.com/humaidq/labconsensus/consensus"
	"github.com/humaidq/labconsensus/logging"
)

var logger = logging.Logger(logging.SourceReasoning)

// Source proposes a ranked differential diagnosis for a case.
type Source interface {
	ID() string
	Diagnose(ctx context.Context, c Case) ([]consensus.Candidate, error)
}

// PersonaSource runs one persona against a Completer.
type PersonaSource struct {
	persona   Persona
	completer Completer
}

// NewPersonaSource binds a persona to a completer.
func NewPersonaSource(p Persona, c Completer) *PersonaSource {
	return &PersonaSource{persona: p, completer: c}
}

// PersonaSources returns one source per persona, all sharing c.
func PersonaSources(personas []Persona, c Completer) []Source {
	sources := make([]Source, 0, len(personas))
	for _, p := range personas {
		sources = append(sources, NewPersonaSource(p, c))
	}

	return sources
}

// ID returns the persona id.
func (s *PersonaSource) ID() string {
	return s.persona.ID
}

// Persona returns the bound persona.
func (s *PersonaSource) Persona() Persona {
	return s.persona
}

// Diagnose asks the model for a differential and parses the reply.
func (s *PersonaSource) Diagnose(ctx context.Context, c Case) ([]consensus.Candidate, error) {
	text, err := s.completer.Complete(ctx, CompletionRequest{
		System:      systemPrompt(s.persona),
		User:        BuildCasePrompt(c),
		Temperature: s.persona.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("persona %s: %w", s.persona.ID, err)
	}

	cands, err := ParseDifferential(s.persona.ID, text)
	if err != nil {
		logger.Debug("unparsable differential", "persona", s.persona.ID, "length", len(text))
		return nil, fmt.Errorf("persona %s: %w", s.persona.ID, err)
	}

	logger.Info("differential received", "persona", s.persona.ID, "candidates", len(cands))

	return cands, nil
}
