/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import (
	"fmt"

	"github.com/humaidq/labconsensus/biomarker"
)

// InflammatoryModule detects acute, chronic and immune-mediated patterns.
func InflammatoryModule() Module {
	return Module{
		Category: biomarker.CategoryInflammatory,
		Rules: []Rule{
			{Name: "acute_inflammation", MinMarkers: 2, Detect: detectAcuteInflammation},
			{Name: "chronic_low_grade_inflammation", MinMarkers: 2, Detect: detectChronicLowGradeInflammation},
			{Name: "autoimmune_suggestion", MinMarkers: 2, Detect: detectAutoimmuneSuggestion},
			// Eosinophilia is a single-marker finding by definition.
			{Name: "eosinophilia", MinMarkers: 1, Detect: detectEosinophilia},
		},
	}
}

func detectAcuteInflammation(m Markers, _ Context) *Correlation {
	var b builder

	wbc, hasWBC := m.Get("wbc")
	if hasWBC && wbc.Value > 11000 {
		b.lab(wbc)
	}

	if v, ok := m.Get("neutrophils"); ok && v.Value > 70 {
		b.lab(v)
	}

	crp, hasCRP := m.Get("crp")
	if hasCRP && crp.Value > 10 {
		b.lab(crp)
	}

	if v, ok := m.Get("esr"); ok && v.Value > 30 {
		b.lab(v)
	}

	if b.count() < 2 {
		return nil
	}

	crpValue, wbcValue := 0.0, 0.0
	if hasCRP {
		crpValue = crp.Value
	}

	if hasWBC {
		wbcValue = wbc.Value
	}

	severity := "moderate"
	sepsis := false

	switch {
	case crpValue > 100 || wbcValue > 30000:
		severity = "severe, consider sepsis"
		sepsis = true
	case crpValue > 50 || wbcValue > 20000:
		severity = "significant"
	}

	confidence := ConfidenceMedium
	if b.count() >= 3 || sepsis {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternInfection,
		Pattern:             fmt.Sprintf("Acute inflammatory response (%s)", severity),
		ClinicalImplication: "Leukocytosis with raised acute phase reactants. Search for a bacterial infection focus.",
		Confidence:          confidence,
	})
}

func detectChronicLowGradeInflammation(m Markers, _ Context) *Correlation {
	var b builder

	if v, ok := m.Get("crp_high_sensitivity"); ok && v.Value > 1 && v.Value <= 10 {
		b.lab(v)
	}

	if v, ok := m.Get("ferritin"); ok && v.Value > 200 {
		b.lab(v)
	}

	if v, ok := m.Get("fibrinogen"); ok && v.Value > 400 {
		b.lab(v)
	}

	if v, ok := m.Get("esr"); ok && v.Value > 15 && v.Value <= 40 {
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
		Type:                PatternChronicInflammation,
		Pattern:             "Chronic low-grade inflammation",
		ClinicalImplication: "Persistent low-grade inflammation linked to cardiometabolic risk. Review visceral adiposity, sleep, diet and occult infection.",
		Confidence:          confidence,
	})
}

func detectAutoimmuneSuggestion(m Markers, _ Context) *Correlation {
	var b builder

	esr, hasESR := m.Get("esr")
	if hasESR && esr.Value > 40 {
		b.lab(esr)
	}

	if v, ok := m.Get("lymphocytes"); ok && v.Value < 20 {
		b.lab(v)
	}

	dissociation := ""
	if crp, ok := m.Get("crp"); ok && hasESR && esr.Value > 50 && crp.Value < 10 {
		b.lab(crp)
		dissociation = "High ESR with low CRP is typical of lupus and other connective tissue disease."
	}

	if b.count() < 2 {
		return nil
	}

	return b.build(Correlation{
		Type:    PatternAutoimmune,
		Pattern: "Possible autoimmune process",
		ClinicalImplication: joinNotes(
			"Consider ANA and complement to screen for autoimmune disease.",
			dissociation,
		),
		Confidence: ConfidenceLow,
	})
}

func detectEosinophilia(m Markers, _ Context) *Correlation {
	eos, ok := m.Get("eosinophils")
	if !ok || eos.Value <= 5 {
		return nil
	}

	var b builder
	b.lab(eos)

	if wbc, ok := m.Get("wbc"); ok {
		absolute := eos.Value / 100 * wbc.Value
		b.context("eosinophils_absolute", fmt.Sprintf("%.0f /mm³", absolute))
	}

	severity := "mild"
	confidence := ConfidenceMedium

	switch {
	case eos.Value > 20:
		severity = "marked"
		confidence = ConfidenceHigh
	case eos.Value > 10:
		severity = "moderate"
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternCustom,
		Pattern:             fmt.Sprintf("Eosinophilia (%s)", severity),
		ClinicalImplication: "Consider parasitic infection, allergy or atopy, drug reaction, and less commonly hematologic disease.",
		Confidence:          confidence,
	})
}
