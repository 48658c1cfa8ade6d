/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import (
	"fmt"

	"github.com/humaidq/labconsensus/biomarker"
)

// CKDStage is a KDIGO GFR category.
type CKDStage struct {
	Stage    string `json:"stage"`
	Severity string `json:"severity"`
}

// StageForGFR maps an estimated GFR (mL/min/1.73m²) onto its KDIGO band.
func StageForGFR(gfr float64) CKDStage {
	switch {
	case gfr >= 90:
		return CKDStage{Stage: "G1", Severity: "normal"}
	case gfr >= 60:
		return CKDStage{Stage: "G2", Severity: "mild"}
	case gfr >= 45:
		return CKDStage{Stage: "G3a", Severity: "moderate"}
	case gfr >= 30:
		return CKDStage{Stage: "G3b", Severity: "moderate"}
	case gfr >= 15:
		return CKDStage{Stage: "G4", Severity: "severe"}
	default:
		return CKDStage{Stage: "G5", Severity: "critical"}
	}
}

// KidneyModule detects renal patterns.
func KidneyModule() Module {
	return Module{
		Category: biomarker.CategoryKidney,
		Rules: []Rule{
			{Name: "chronic_kidney_disease", MinMarkers: 2, Detect: detectChronicKidneyDisease},
			// Severe creatinine or potassium alone warrants an acute flag.
			{Name: "acute_kidney_injury", MinMarkers: 1, Detect: detectAcuteKidneyInjury},
			{Name: "renal_electrolyte_disturbance", MinMarkers: 3, Detect: detectRenalElectrolyteDisturbance},
		},
	}
}

func detectChronicKidneyDisease(m Markers, _ Context) *Correlation {
	var b builder

	gfr, hasGFR := m.Get("gfr")
	if hasGFR && gfr.Value < 60 {
		b.lab(gfr)
	}

	if v, ok := m.Get("creatinine"); ok && v.AboveLab() {
		b.lab(v)
	}

	if v, ok := m.Get("urea"); ok && v.Value > 45 {
		b.lab(v)
	}

	microalbumin, hasMicro := m.Get("microalbumin")
	if hasMicro && microalbumin.Value > 30 {
		b.lab(microalbumin)
	}

	if b.count() < 2 {
		return nil
	}

	pattern := "Renal function alteration"
	stageNote := ""

	if hasGFR {
		stage := StageForGFR(gfr.Value)
		stageNote = fmt.Sprintf("%s (%s)", stage.Stage, stage.Severity)

		if gfr.Value < 60 {
			pattern = "Chronic kidney disease, stage " + stage.Stage
		}
	}

	confidence := ConfidenceMedium
	if (hasGFR && gfr.Value < 30) || (hasMicro && microalbumin.Value > 300) {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternKidneyDysfunction,
		Pattern:             pattern,
		ClinicalImplication: "Reduced filtration or markers of renal damage. Confirm persistence over three months and adjust renally cleared medication.",
		Confidence:          confidence,
		CriteriaMet:         stageNote,
	})
}

func detectAcuteKidneyInjury(m Markers, ctx Context) *Correlation {
	var b builder

	severe := false

	creatinine, hasCreatinine := m.Get("creatinine")
	if hasCreatinine && creatinine.Value > 2.0 {
		b.lab(creatinine)
		severe = creatinine.Value > 3.0
	}

	if hasCreatinine && ctx.BaselineCreatinine != nil && *ctx.BaselineCreatinine > 0 {
		ratio := creatinine.Value / *ctx.BaselineCreatinine
		if ratio >= 1.5 {
			b.lab(creatinine)
			b.context("baseline_creatinine", fmt.Sprintf("%g mg/dL (%.1fx rise)", *ctx.BaselineCreatinine, ratio))
		}
	}

	if v, ok := m.Get("potassium"); ok && v.Value > 5.5 {
		b.lab(v)

		if v.Value > 6.0 {
			severe = true
		}
	}

	if !severe {
		return nil
	}

	return b.build(Correlation{
		Type:                PatternKidneyDysfunction,
		Pattern:             "Possible acute kidney injury",
		ClinicalImplication: "Markedly raised creatinine or dangerous hyperkalemia. Needs urgent evaluation and repeat measurement.",
		Confidence:          ConfidenceHigh,
	})
}

func detectRenalElectrolyteDisturbance(m Markers, _ Context) *Correlation {
	gfr, ok := m.Get("gfr")
	if !ok || gfr.Value >= 60 {
		return nil
	}

	var b builder

	if v, ok := m.Get("potassium"); ok && v.Value > 5.0 {
		b.lab(v)
	}

	if v, ok := m.Get("phosphorus"); ok && v.Value > 4.5 {
		b.lab(v)
	}

	if v, ok := m.Get("calcium"); ok && v.Value < 8.5 {
		b.lab(v)
	}

	if b.count() < 2 {
		return nil
	}

	b.lab(gfr)

	return b.build(Correlation{
		Type:                PatternKidneyDysfunction,
		Pattern:             "Electrolyte disturbance secondary to renal dysfunction",
		ClinicalImplication: "Hyperkalemia, hyperphosphatemia or hypocalcemia with reduced GFR suggests mineral and bone disorder of CKD.",
		Confidence:          ConfidenceMedium,
	})
}
