/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import (
	"fmt"
	"math"

	"github.com/humaidq/labconsensus/biomarker"
)

// InjuryPattern is the biochemical pattern of a liver injury.
type InjuryPattern string

// Injury patterns.
const (
	InjuryHepatocellular InjuryPattern = "hepatocellular"
	InjuryCholestatic    InjuryPattern = "cholestatic"
	InjuryMixed          InjuryPattern = "mixed"
)

// DetermineInjuryPattern classifies an injury from the R ratio, the AST/ALT
// (De Ritis) ratio and whether both GGT and ALP are elevated.
func DetermineInjuryPattern(rRatio, deRitis float64, cholestaticEnzymes bool) InjuryPattern {
	switch {
	case rRatio > 5 || deRitis > 2:
		return InjuryHepatocellular
	case rRatio < 2 || cholestaticEnzymes:
		return InjuryCholestatic
	default:
		return InjuryMixed
	}
}

// LiverModule detects hepatic injury and function patterns.
func LiverModule() Module {
	return Module{
		Category: biomarker.CategoryLiver,
		Rules: []Rule{
			{Name: "liver_injury", MinMarkers: 2, Detect: detectLiverInjury},
			{Name: "cholestasis", MinMarkers: 2, Detect: detectCholestasis},
			// Either low albumin or high bilirubin alone is reportable.
			{Name: "impaired_synthetic_function", MinMarkers: 1, Detect: detectImpairedSyntheticFunction},
		},
	}
}

func upperLimit(m biomarker.Extracted, fallback float64) float64 {
	if m.LabRange.Max > 0 {
		return m.LabRange.Max
	}

	return fallback
}

func detectLiverInjury(m Markers, _ Context) *Correlation {
	alt, okALT := m.Get("alt")
	ast, okAST := m.Get("ast")

	if !okALT || !okAST {
		return nil
	}

	if !alt.AboveLab() && !ast.AboveLab() {
		return nil
	}

	var b builder
	b.lab(alt)
	b.lab(ast)

	altFold := alt.Value / upperLimit(alt, 40)
	astFold := ast.Value / upperLimit(ast, 40)
	fold := math.Max(altFold, astFold)

	deRitis := 0.0
	if alt.Value > 0 {
		deRitis = ast.Value / alt.Value
	}

	injury := InjuryHepatocellular
	criteriaNote := fmt.Sprintf("AST/ALT %.2f", deRitis)

	if alp, ok := m.Get("alkaline_phosphatase"); ok && alp.Value > 0 {
		b.lab(alp)

		rRatio := altFold / (alp.Value / upperLimit(alp, 120))

		cholestaticEnzymes := false
		if ggt, ok := m.Get("ggt"); ok && ggt.AboveLab() && alp.AboveLab() {
			b.lab(ggt)
			cholestaticEnzymes = true
		}

		injury = DetermineInjuryPattern(rRatio, deRitis, cholestaticEnzymes)
		criteriaNote = fmt.Sprintf("R %.2f, AST/ALT %.2f", rRatio, deRitis)
	}

	severity := "mild"

	switch {
	case fold > 10:
		severity = "severe"
	case fold > 3:
		severity = "moderate"
	}

	confidence := ConfidenceMedium
	if fold > 3 {
		confidence = ConfidenceHigh
	}

	ratioNote := ""

	switch {
	case deRitis > 2:
		ratioNote = "AST/ALT above 2 suggests alcoholic liver disease."
	case deRitis > 0 && deRitis < 1:
		ratioNote = "AST/ALT below 1 suggests viral hepatitis or NAFLD."
	}

	patternType := PatternLiverDysfunction
	if injury == InjuryHepatocellular {
		patternType = PatternHepatocellularInjury
	}

	return b.build(Correlation{
		Type:        patternType,
		Pattern:     fmt.Sprintf("Liver injury, %s pattern (%s)", injury, severity),
		Confidence:  confidence,
		CriteriaMet: criteriaNote,
		ClinicalImplication: joinNotes(
			fmt.Sprintf("Aminotransferases up to %.1fx the upper limit.", fold),
			ratioNote,
		),
	})
}

func detectCholestasis(m Markers, _ Context) *Correlation {
	alp, okALP := m.Get("alkaline_phosphatase")
	ggt, okGGT := m.Get("ggt")

	if !okALP || !okGGT || !alp.AboveLab() || !ggt.AboveLab() {
		return nil
	}

	var b builder
	b.lab(alp)
	b.lab(ggt)

	confidence := ConfidenceMedium
	if bd, ok := m.Get("bilirubin_direct"); ok && bd.AboveLab() {
		b.lab(bd)
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternLiverDysfunction,
		Pattern:             "Cholestatic pattern",
		ClinicalImplication: "Concordant ALP and GGT elevation points to biliary obstruction or intrahepatic cholestasis. Consider abdominal ultrasound.",
		Confidence:          confidence,
	})
}

func detectImpairedSyntheticFunction(m Markers, _ Context) *Correlation {
	var b builder

	if v, ok := m.Get("albumin"); ok && v.BelowLab() {
		b.lab(v)
	}

	if v, ok := m.Get("bilirubin_total"); ok && v.Value > 2 {
		b.lab(v)
	}

	if b.count() == 0 {
		return nil
	}

	confidence := ConfidenceMedium
	if b.count() == 2 {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternLiverDysfunction,
		Pattern:             "Impaired hepatic synthetic function",
		ClinicalImplication: "Low albumin or raised bilirubin may reflect reduced hepatic reserve. Correlate with INR and clinical signs of chronic liver disease.",
		Confidence:          confidence,
	})
}
