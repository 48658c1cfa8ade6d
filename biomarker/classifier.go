/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package biomarker

import (
	"fmt"
	"math"
	"strings"
)

// Classifier resolves raw lab values against a catalog and assigns a status.
type Classifier struct {
	catalog *Catalog
}

// NewClassifier returns a classifier backed by catalog. A nil catalog selects
// the built-in one.
func NewClassifier(catalog *Catalog) *Classifier {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	return &Classifier{catalog: catalog}
}

// Catalog returns the catalog the classifier resolves against.
func (c *Classifier) Catalog() *Catalog {
	return c.catalog
}

// Classify resolves raw.Name and classifies raw.Value. The status is decided
// in priority order: beyond a critical threshold, outside the lab range,
// outside the functional range (both attention), then normal. Values are
// read in the definition unit; a supplied unit is only echoed as RawUnit.
func (c *Classifier) Classify(raw RawValue, sex Sex) (Extracted, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Extracted{}, ErrEmptyName
	}

	if raw.Missing {
		return Extracted{}, fmt.Errorf("%w: %s", ErrMissingValue, name)
	}

	if math.IsNaN(raw.Value) || math.IsInf(raw.Value, 0) {
		return Extracted{}, fmt.Errorf("%w: %s = %v", ErrInvalidValue, name, raw.Value)
	}

	def, ok := c.catalog.Lookup(name)
	if !ok {
		return Extracted{}, fmt.Errorf("%w: %q", ErrUnresolvedBiomarker, name)
	}

	labRange := def.LabRangeFor(sex)
	status, interpretation := classifyValue(raw.Value, labRange, def)

	return Extracted{
		ID:              def.ID,
		Name:            def.Name,
		RawName:         name,
		Category:        def.Category,
		Value:           raw.Value,
		Unit:            def.Unit,
		RawUnit:         strings.TrimSpace(raw.Unit),
		LabRange:        labRange,
		FunctionalRange: def.FunctionalRange,
		PrintedRange:    strings.TrimSpace(raw.ReferenceRange),
		Status:          status,
		Interpretation:  interpretation,
		DeviationScore:  deviationScore(raw.Value, def.FunctionalRange),
	}, nil
}

// ClassifyAll classifies every raw value. Values that cannot be classified
// are returned in Batch.Rejected instead of failing the whole batch.
func (c *Classifier) ClassifyAll(raws []RawValue, sex Sex) Batch {
	batch := Batch{Markers: make([]Extracted, 0, len(raws))}

	for _, raw := range raws {
		m, err := c.Classify(raw, sex)
		if err != nil {
			rejection := Rejection{Name: raw.Name, Error: err.Error(), Err: err}
			if !raw.Missing && !math.IsNaN(raw.Value) && !math.IsInf(raw.Value, 0) {
				rejection.Value = ptr(raw.Value)
			}

			batch.Rejected = append(batch.Rejected, rejection)

			continue
		}

		batch.Markers = append(batch.Markers, m)
	}

	return batch
}

func classifyValue(v float64, lab Range, def Definition) (Status, string) {
	switch {
	case def.CriticalLow != nil && v < *def.CriticalLow:
		return StatusCritical, "Critically low, needs immediate review"
	case def.CriticalHigh != nil && v > *def.CriticalHigh:
		return StatusCritical, "Critically high, needs immediate review"
	case v < lab.Min:
		return StatusAttention, "Below reference range"
	case v > lab.Max:
		return StatusAttention, "Above reference range"
	case v < def.FunctionalRange.Min:
		return StatusAttention, "Within reference range, below functional target"
	case v > def.FunctionalRange.Max:
		return StatusAttention, "Within reference range, above functional target"
	default:
		return StatusNormal, "Within functional range"
	}
}

// deviationScore is the distance from the nearest functional bound, in units
// of the functional range width. Values inside the range score 0.
func deviationScore(v float64, functional Range) float64 {
	var distance, bound float64

	switch {
	case v < functional.Min:
		distance, bound = functional.Min-v, functional.Min
	case v > functional.Max:
		distance, bound = v-functional.Max, functional.Max
	default:
		return 0
	}

	width := functional.Max - functional.Min
	if width <= 0 {
		width = math.Max(math.Abs(bound), 1)
	}

	return math.Round(distance/width*100) / 100
}
