/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import "github.com/humaidq/labconsensus/biomarker"

// AnemiaMorphology is the MCV-based classification of an anemia.
type AnemiaMorphology string

// Morphologies.
const (
	AnemiaMicrocytic AnemiaMorphology = "microcytic"
	AnemiaNormocytic AnemiaMorphology = "normocytic"
	AnemiaMacrocytic AnemiaMorphology = "macrocytic"
)

// ClassifyAnemiaByMCV classifies an anemia by mean corpuscular volume (fL).
func ClassifyAnemiaByMCV(mcv float64) AnemiaMorphology {
	switch {
	case mcv < 80:
		return AnemiaMicrocytic
	case mcv > 100:
		return AnemiaMacrocytic
	default:
		return AnemiaNormocytic
	}
}

// HematologicModule detects anemia patterns.
func HematologicModule() Module {
	return Module{
		Category: biomarker.CategoryHematologic,
		Rules: []Rule{
			{Name: "iron_deficiency_anemia", MinMarkers: 3, Detect: detectIronDeficiencyAnemia},
			{Name: "b12_deficiency", MinMarkers: 2, Detect: detectB12Deficiency},
			{Name: "anemia_of_chronic_disease", MinMarkers: 3, Detect: detectAnemiaOfChronicDisease},
		},
	}
}

// detectIronDeficiencyAnemia needs low hemoglobin and at least two iron
// markers in the deficient direction. Microcytosis corroborates.
func detectIronDeficiencyAnemia(m Markers, _ Context) *Correlation {
	hb, ok := m.Get("hemoglobin")
	if !ok || !hb.BelowLab() {
		return nil
	}

	var b builder
	b.lab(hb)

	ironFindings := 0

	if v, ok := m.Get("ferritin"); ok && v.Value < 30 {
		b.lab(v)
		ironFindings++
	}

	if v, ok := m.Get("iron"); ok && v.Value < 60 {
		b.lab(v)
		ironFindings++
	}

	if v, ok := m.Get("transferrin_saturation"); ok && v.Value < 20 {
		b.lab(v)
		ironFindings++
	}

	if v, ok := m.Get("tibc"); ok && v.Value > 370 {
		b.lab(v)
		ironFindings++
	}

	if ironFindings < 2 {
		return nil
	}

	pattern := "Iron-deficiency anemia"

	if mcv, ok := m.Get("mcv"); ok {
		if ClassifyAnemiaByMCV(mcv.Value) == AnemiaMicrocytic {
			b.lab(mcv)
			pattern = "Microcytic iron-deficiency anemia"
		}
	}

	confidence := ConfidenceMedium
	if b.count() >= 4 {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternIronDeficiencyAnemia,
		Pattern:             pattern,
		ClinicalImplication: "Depleted iron stores with reduced hemoglobin. Investigate blood loss (gastrointestinal, menstrual) and malabsorption.",
		Confidence:          confidence,
	})
}

func detectB12Deficiency(m Markers, _ Context) *Correlation {
	b12, ok := m.Get("vitamin_b12")
	if !ok || b12.Value >= 300 {
		return nil
	}

	var b builder
	b.lab(b12)

	if v, ok := m.Get("mcv"); ok && v.Value > 100 {
		b.lab(v)
	}

	if v, ok := m.Get("homocysteine"); ok && v.Value > 12 {
		b.lab(v)
	}

	if v, ok := m.Get("hemoglobin"); ok && v.BelowLab() {
		b.lab(v)
	}

	if b.count() < 2 {
		return nil
	}

	confidence := ConfidenceMedium
	if b.count() >= 3 {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternB12Deficiency,
		Pattern:             "Vitamin B12 deficiency",
		ClinicalImplication: "Functional B12 deficiency with metabolic or hematologic repercussion. Consider pernicious anemia, metformin use and malabsorption.",
		Confidence:          confidence,
	})
}

// detectAnemiaOfChronicDisease needs anemia with preserved ferritin and either
// low serum iron or raised CRP.
func detectAnemiaOfChronicDisease(m Markers, _ Context) *Correlation {
	hb, ok := m.Get("hemoglobin")
	if !ok || !hb.BelowLab() {
		return nil
	}

	ferritin, ok := m.Get("ferritin")
	if !ok || ferritin.Value < 100 {
		return nil
	}

	var b builder
	b.lab(hb)
	b.lab(ferritin)

	supported := false

	if v, ok := m.Get("iron"); ok && v.Value < 60 {
		b.lab(v)
		supported = true
	}

	crp, ok := m.Get("crp")
	if !ok {
		crp, ok = m.Get("crp_high_sensitivity")
	}

	if ok && crp.Value > 5 {
		b.lab(crp)
		supported = true
	}

	if !supported {
		return nil
	}

	if v, ok := m.Get("tibc"); ok && v.Value < 280 {
		b.lab(v)
	}

	if v, ok := m.Get("mcv"); ok && ClassifyAnemiaByMCV(v.Value) == AnemiaNormocytic {
		b.lab(v)
	}

	confidence := ConfidenceMedium
	if b.count() >= 4 {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternChronicInflammation,
		Pattern:             "Anemia of chronic disease",
		ClinicalImplication: "Anemia with preserved iron stores and inflammatory iron sequestration. Look for an underlying chronic inflammatory, infectious or neoplastic process.",
		Confidence:          confidence,
	})
}
