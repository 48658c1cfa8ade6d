/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reasoning

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/humaidq/labconsensus/consensus"
)

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// looseFloat accepts 80, 0.8, "80" and "80%".
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid confidence %q: %w", s, err)
		}

		*f = looseFloat(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*f = looseFloat(v)

	return nil
}

type rawDiagnosis struct {
	Name                  string     `json:"name"`
	ICD10                 string     `json:"icd10"`
	Confidence            looseFloat `json:"confidence"`
	Reasoning             string     `json:"reasoning"`
	SupportingEvidence    []string   `json:"supportingEvidence"`
	ContradictingEvidence []string   `json:"contradictingEvidence"`
	SuggestedTests        []string   `json:"suggestedTests"`
}

type rawDifferential struct {
	DifferentialDiagnosis []rawDiagnosis `json:"differentialDiagnosis"`
}

// ParseDifferential turns a model reply into ranked candidates. Markdown code
// fences and text around the JSON object are ignored. Rank follows list
// position. When every confidence is at most 1 the list is read as fractions
// and scaled to 0-100.
func ParseDifferential(sourceID, text string) ([]consensus.Candidate, error) {
	body := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(body); m != nil {
		body = strings.TrimSpace(m[1])
	}

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")

	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrUnparsableOutput)
	}

	var raw rawDifferential
	if err := json.Unmarshal([]byte(body[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}

	scale := 1.0
	fractional := true

	for _, d := range raw.DifferentialDiagnosis {
		if float64(d.Confidence) > 1 {
			fractional = false
			break
		}
	}

	if fractional {
		scale = 100
	}

	cands := make([]consensus.Candidate, 0, len(raw.DifferentialDiagnosis))

	for i, d := range raw.DifferentialDiagnosis {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}

		conf := float64(d.Confidence) * scale
		if math.IsNaN(conf) {
			conf = 0
		}

		cands = append(cands, consensus.Candidate{
			SourceID:              sourceID,
			Name:                  name,
			Rank:                  i + 1,
			Confidence:            math.Max(0, math.Min(100, conf)),
			Code:                  strings.TrimSpace(d.ICD10),
			SupportingEvidence:    d.SupportingEvidence,
			ContradictingEvidence: d.ContradictingEvidence,
			SuggestedTests:        d.SuggestedTests,
			Reasoning:             strings.TrimSpace(d.Reasoning),
		})
	}

	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: differential diagnosis is empty", ErrUnparsableOutput)
	}

	return cands, nil
}
