/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reasoning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is one diagnostic stance run against the same model.
type Persona struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	Role         string  `yaml:"role" json:"role"`
	Temperature  float64 `yaml:"temperature" json:"temperature"`
	SystemPrompt string  `yaml:"system_prompt" json:"-"`
}

type personaFile struct {
	Personas []Persona `yaml:"personas"`
}

// DefaultPersonas returns the built-in trio of diagnostic personas.
func DefaultPersonas() []Persona {
	return []Persona{
		{
			ID:          "conservative",
			Name:        "Dr. Conservative",
			Role:        "Senior hospital internist",
			Temperature: 0.1,
			SystemPrompt: `You are a senior internist with thirty years of hospital practice.
Patient safety and established clinical protocols come first.

When building the differential diagnosis:
- Put the most epidemiologically likely condition for the age and sex first.
- Leave out rare diseases unless a pathognomonic sign is present.
- Justify each hypothesis from the classic clinical presentation.
- Prefer tests with high predictive value and avoid overdiagnosis.`,
		},
		{
			ID:          "aggressive",
			Name:        "Dr. Investigative",
			Role:        "Differential diagnosis specialist",
			Temperature: 0.4,
			SystemPrompt: `You are a differential diagnosis specialist focused on complex cases and rare diseases.
Missing a serious condition in an early or atypical presentation is the worst outcome.

When building the differential diagnosis:
- Include at least one serious condition that must be ruled out.
- Look for subtle links between findings that look unrelated.
- Consider atypical presentations of common diseases.
- Suggest rare conditions when the pathophysiology supports them.`,
		},
		{
			ID:          "academic",
			Name:        "Prof. Academic",
			Role:        "Clinical researcher, evidence-based medicine",
			Temperature: 0.2,
			SystemPrompt: `You are a professor of medicine and clinical researcher.
Pathophysiological accuracy and the quality of the evidence come first.

When building the differential diagnosis:
- Order hypotheses by estimated post-test probability.
- State the underlying mechanism for each hypothesis.
- Suggest confirmatory tests with high specificity.`,
		},
	}
}

// LoadPersonas reads persona definitions from a YAML file.
func LoadPersonas(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read personas file: %w", err)
	}

	return ParsePersonas(data)
}

// ParsePersonas decodes and validates YAML persona definitions.
func ParsePersonas(data []byte) ([]Persona, error) {
	var file personaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse personas: %w", err)
	}

	if err := ValidatePersonas(file.Personas); err != nil {
		return nil, err
	}

	return file.Personas, nil
}

// ValidatePersonas checks that ids are unique and every persona is usable.
func ValidatePersonas(personas []Persona) error {
	if len(personas) == 0 {
		return errNoPersonas
	}

	seen := make(map[string]struct{}, len(personas))

	for i, p := range personas {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("persona %d: %w", i, errPersonaIDRequired)
		}

		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", errPersonaDuplicateID, id)
		}

		seen[id] = struct{}{}

		if strings.TrimSpace(p.SystemPrompt) == "" {
			return fmt.Errorf("persona %s: %w", id, errPersonaPromptRequired)
		}

		if p.Temperature < 0 || p.Temperature > 2 {
			return fmt.Errorf("persona %s: %w", id, errPersonaTemperature)
		}
	}

	return nil
}
