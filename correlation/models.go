/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/humaidq/labconsensus/biomarker"
)

// PatternType is the closed set of pattern tags a detector may emit.
type PatternType string

// Pattern tags.
const (
	PatternMetabolicSyndrome    PatternType = "metabolic_syndrome"
	PatternInsulinResistance    PatternType = "insulin_resistance"
	PatternDiabetesType2        PatternType = "diabetes_type2"
	PatternPrediabetes          PatternType = "prediabetes"
	PatternHypothyroidism       PatternType = "hypothyroidism"
	PatternHyperthyroidism      PatternType = "hyperthyroidism"
	PatternIronDeficiencyAnemia PatternType = "iron_deficiency_anemia"
	PatternB12Deficiency        PatternType = "b12_deficiency"
	PatternChronicInflammation  PatternType = "chronic_inflammation"
	PatternLiverDysfunction     PatternType = "liver_dysfunction"
	PatternHepatocellularInjury PatternType = "hepatocellular_injury"
	PatternKidneyDysfunction    PatternType = "kidney_dysfunction"
	PatternCardiovascularRisk   PatternType = "cardiovascular_risk"
	PatternAutoimmune           PatternType = "autoimmune_pattern"
	PatternInfection            PatternType = "infection_pattern"
	PatternCustom               PatternType = "custom"
)

// Confidence is the detector's confidence in a correlation.
type Confidence string

// Confidence values.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) order() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	default:
		return 2
	}
}

// EvidenceSource tells whether an evidence item came from a lab value or
// from the patient context.
type EvidenceSource string

// Evidence sources.
const (
	EvidenceLab     EvidenceSource = "lab"
	EvidenceContext EvidenceSource = "context"
)

// Evidence is one observed value supporting a correlation.
type Evidence struct {
	Source    EvidenceSource `json:"source"`
	Reference string         `json:"reference"`
	Value     string         `json:"value"`
}

// Correlation is a detected multi-marker pattern.
type Correlation struct {
	Rule                string      `json:"rule"`
	Type                PatternType `json:"type"`
	Markers             []string    `json:"markers"`
	Pattern             string      `json:"pattern"`
	ClinicalImplication string      `json:"clinicalImplication"`
	Confidence          Confidence  `json:"confidence"`
	CriteriaMet         string      `json:"criteriaMet,omitempty"`
	Evidence            []Evidence  `json:"evidence"`
}

// BloodPressure is a single blood pressure reading in mmHg.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// Context carries non-lab observations some detectors need.
type Context struct {
	Sex                biomarker.Sex  `json:"sex,omitempty"`
	WaistCircumference *float64       `json:"waistCircumference,omitempty"`
	BloodPressure      *BloodPressure `json:"bloodPressure,omitempty"`
	BaselineCreatinine *float64       `json:"baselineCreatinine,omitempty"`
}

// Markers indexes classified markers by id. When an id appears more than
// once the first occurrence is kept.
type Markers struct {
	byID map[string]biomarker.Extracted
}

// NewMarkers indexes markers by id.
func NewMarkers(markers []biomarker.Extracted) Markers {
	byID := make(map[string]biomarker.Extracted, len(markers))

	for _, m := range markers {
		if _, ok := byID[m.ID]; ok {
			continue
		}

		byID[m.ID] = m
	}

	return Markers{byID: byID}
}

// Get returns the marker with the given id.
func (m Markers) Get(id string) (biomarker.Extracted, bool) {
	v, ok := m.byID[id]
	return v, ok
}

// Len returns the number of distinct markers.
func (m Markers) Len() int {
	return len(m.byID)
}

// builder accumulates contributing markers and evidence for one correlation.
type builder struct {
	markers  []string
	evidence []Evidence
}

func (b *builder) lab(m biomarker.Extracted) {
	for _, id := range b.markers {
		if id == m.ID {
			return
		}
	}

	b.markers = append(b.markers, m.ID)
	b.evidence = append(b.evidence, Evidence{
		Source:    EvidenceLab,
		Reference: m.ID,
		Value:     formatValue(m.Value, m.Unit),
	})
}

func (b *builder) context(reference, value string) {
	b.evidence = append(b.evidence, Evidence{
		Source:    EvidenceContext,
		Reference: reference,
		Value:     value,
	})
}

func (b *builder) count() int {
	return len(b.markers)
}

func (b *builder) build(c Correlation) *Correlation {
	c.Markers = b.markers
	c.Evidence = b.evidence

	return &c
}

func formatValue(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit == "" {
		return s
	}

	return s + " " + unit
}

func criteria(met, total int) string {
	return fmt.Sprintf("%d/%d", met, total)
}

func joinNotes(notes ...string) string {
	out := make([]string, 0, len(notes))

	for _, n := range notes {
		if n != "" {
			out = append(out, n)
		}
	}

	return strings.Join(out, " ")
}
