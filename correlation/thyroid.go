/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import "github.com/humaidq/labconsensus/biomarker"

// ThyroidModule detects thyroid dysfunction patterns.
func ThyroidModule() Module {
	return Module{
		Category: biomarker.CategoryThyroid,
		Rules: []Rule{
			{Name: "hypothyroidism", MinMarkers: 2, Detect: detectHypothyroidism},
			{Name: "hyperthyroidism", MinMarkers: 2, Detect: detectHyperthyroidism},
			// A positive antibody titre is the finding itself.
			{Name: "thyroid_autoimmunity", MinMarkers: 1, Detect: detectThyroidAutoimmunity},
			{Name: "low_t3_syndrome", MinMarkers: 2, Detect: detectLowT3Syndrome},
		},
	}
}

func detectHypothyroidism(m Markers, _ Context) *Correlation {
	tsh, ok := m.Get("tsh")
	if !ok || !tsh.AboveLab() {
		return nil
	}

	t4, ok := m.Get("t4_free")
	if !ok || t4.AboveLab() {
		return nil
	}

	var b builder
	b.lab(tsh)
	b.lab(t4)

	pattern := "Subclinical hypothyroidism"
	confidence := ConfidenceMedium

	if t4.BelowLab() {
		pattern = "Overt primary hypothyroidism"
		confidence = ConfidenceHigh
	}

	implication := "Raised TSH indicates reduced thyroid reserve. Repeat TSH with free T4 in 6 to 8 weeks."

	if tpo, ok := m.Get("anti_tpo"); ok && tpo.AboveLab() {
		b.lab(tpo)
		pattern += " (Hashimoto's thyroiditis)"
		implication = "Positive anti-TPO supports an autoimmune etiology with higher risk of progression."
	}

	return b.build(Correlation{
		Type:                PatternHypothyroidism,
		Pattern:             pattern,
		ClinicalImplication: implication,
		Confidence:          confidence,
	})
}

func detectHyperthyroidism(m Markers, _ Context) *Correlation {
	tsh, ok := m.Get("tsh")
	if !ok || !tsh.BelowLab() {
		return nil
	}

	var b builder
	b.lab(tsh)

	overt := false
	measured := false

	if t4, ok := m.Get("t4_free"); ok {
		measured = true

		if t4.AboveLab() {
			b.lab(t4)
			overt = true
		}
	}

	if t3, ok := m.Get("t3_free"); ok {
		measured = true

		if t3.AboveLab() {
			b.lab(t3)
			overt = true
		}
	}

	if overt {
		return b.build(Correlation{
			Type:                PatternHyperthyroidism,
			Pattern:             "Overt hyperthyroidism",
			ClinicalImplication: "Suppressed TSH with raised free hormones. Consider Graves' disease, toxic nodular goitre or thyroiditis; TRAb and scintigraphy help.",
			Confidence:          ConfidenceHigh,
		})
	}

	if !measured || tsh.Value >= 0.1 {
		return nil
	}

	if t4, ok := m.Get("t4_free"); ok {
		b.lab(t4)
	}

	if t3, ok := m.Get("t3_free"); ok {
		b.lab(t3)
	}

	return b.build(Correlation{
		Type:                PatternHyperthyroidism,
		Pattern:             "Subclinical hyperthyroidism",
		ClinicalImplication: "Suppressed TSH with normal free hormones. Review exogenous thyroid hormone and repeat testing.",
		Confidence:          ConfidenceMedium,
	})
}

func detectThyroidAutoimmunity(m Markers, _ Context) *Correlation {
	var b builder

	if v, ok := m.Get("anti_tpo"); ok && v.Value > 35 {
		b.lab(v)
	}

	if v, ok := m.Get("anti_tg"); ok && v.Value > 115 {
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
		Type:                PatternAutoimmune,
		Pattern:             "Thyroid autoimmunity",
		ClinicalImplication: "Thyroid antibodies indicate autoimmune thyroid disease. Monitor TSH yearly even when function is preserved.",
		Confidence:          confidence,
	})
}

func detectLowT3Syndrome(m Markers, _ Context) *Correlation {
	t3, ok := m.Get("t3_free")
	if !ok || t3.Value >= 2.5 {
		return nil
	}

	var b builder
	b.lab(t3)

	if tsh, ok := m.Get("tsh"); ok && tsh.Value >= 0.4 && tsh.Value <= 2.0 {
		b.lab(tsh)
	}

	if t4, ok := m.Get("t4_free"); ok && t4.LabRange.Contains(t4.Value) {
		b.lab(t4)
	}

	if b.count() < 2 {
		return nil
	}

	confidence := ConfidenceMedium
	if rt3, ok := m.Get("reverse_t3"); ok && rt3.Value > 20 {
		b.lab(rt3)
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternCustom,
		Pattern:             "Low T3 syndrome",
		ClinicalImplication: "Reduced peripheral T4 to T3 conversion, common in systemic illness, caloric restriction and chronic stress.",
		Confidence:          confidence,
	})
}
