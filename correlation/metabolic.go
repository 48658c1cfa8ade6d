/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import (
	"fmt"

	"github.com/humaidq/labconsensus/biomarker"
)

// MetabolicModule detects glycemic, insulin and cardiometabolic patterns.
func MetabolicModule() Module {
	return Module{
		Category: biomarker.CategoryMetabolic,
		Rules: []Rule{
			// Waist and blood pressure count as criteria but are not markers.
			{Name: "metabolic_syndrome", MinMarkers: 1, Detect: detectMetabolicSyndrome},
			{Name: "insulin_resistance", MinMarkers: 2, Detect: detectInsulinResistance},
			// One diagnostic glucose or HbA1c value is enough.
			{Name: "diabetes_type2", MinMarkers: 1, Detect: detectDiabetes},
			{Name: "prediabetes", MinMarkers: 1, Detect: detectPrediabetes},
			{Name: "cardiovascular_risk", MinMarkers: 2, Detect: detectCardiovascularRisk},
		},
	}
}

// waistLimit is the ATP III abdominal obesity threshold in cm.
func waistLimit(sex biomarker.Sex) float64 {
	if sex == biomarker.SexFemale {
		return 88
	}

	return 102
}

// detectMetabolicSyndrome applies the ATP III criteria: three of five.
func detectMetabolicSyndrome(m Markers, ctx Context) *Correlation {
	var b builder

	met := 0

	if ctx.WaistCircumference != nil && *ctx.WaistCircumference > waistLimit(ctx.Sex) {
		b.context("waist_circumference", fmt.Sprintf("%g cm", *ctx.WaistCircumference))
		met++
	}

	if v, ok := m.Get("triglycerides"); ok && v.Value >= 150 {
		b.lab(v)
		met++
	}

	if v, ok := m.Get("hdl"); ok && v.BelowLab() {
		b.lab(v)
		met++
	}

	if bp := ctx.BloodPressure; bp != nil && (bp.Systolic >= 130 || bp.Diastolic >= 85) {
		b.context("blood_pressure", fmt.Sprintf("%g/%g mmHg", bp.Systolic, bp.Diastolic))
		met++
	}

	if v, ok := m.Get("glucose_fasting"); ok && v.Value >= 100 {
		b.lab(v)
		met++
	}

	if met < 3 {
		return nil
	}

	confidence := ConfidenceMedium
	if met >= 4 {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternMetabolicSyndrome,
		Pattern:             "Metabolic syndrome",
		ClinicalImplication: "Clustered cardiometabolic risk factors raise cardiovascular and diabetes risk. Lifestyle intervention is first line.",
		Confidence:          confidence,
		CriteriaMet:         criteria(met, 5),
	})
}

func detectInsulinResistance(m Markers, _ Context) *Correlation {
	var b builder

	signs := 0

	if v, ok := m.Get("homa_ir"); ok && v.Value > 2.5 {
		b.lab(v)
		signs++
	}

	if v, ok := m.Get("insulin_fasting"); ok && v.Value > 12 {
		b.lab(v)
		signs++
	}

	tg, hasTG := m.Get("triglycerides")
	hdl, hasHDL := m.Get("hdl")

	if hasTG && hasHDL && hdl.Value > 0 && tg.Value/hdl.Value > 3 {
		b.lab(tg)
		b.lab(hdl)
		b.context("tg_hdl_ratio", fmt.Sprintf("%.2f", tg.Value/hdl.Value))
		signs++
	}

	if v, ok := m.Get("glucose_fasting"); ok && v.Value >= 100 && v.Value < 126 {
		b.lab(v)
		signs++
	}

	if signs < 2 {
		return nil
	}

	confidence := ConfidenceMedium
	if signs >= 3 {
		confidence = ConfidenceHigh
	}

	return b.build(Correlation{
		Type:                PatternInsulinResistance,
		Pattern:             "Insulin resistance",
		ClinicalImplication: "Compensatory hyperinsulinemia precedes type 2 diabetes. Weight loss and physical activity improve sensitivity.",
		Confidence:          confidence,
		CriteriaMet:         criteria(signs, 4),
	})
}

func detectDiabetes(m Markers, _ Context) *Correlation {
	var b builder

	if v, ok := m.Get("glucose_fasting"); ok && v.Value >= 126 {
		b.lab(v)
	}

	if v, ok := m.Get("hba1c"); ok && v.Value >= 6.5 {
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
		Type:                PatternDiabetesType2,
		Pattern:             "Type 2 diabetes mellitus",
		ClinicalImplication: "Diagnostic hyperglycemia. A single criterion should be confirmed by repeat testing.",
		Confidence:          confidence,
		CriteriaMet:         criteria(b.count(), 2),
	})
}

// detectPrediabetes only fires when no diagnostic diabetes criterion is met.
func detectPrediabetes(m Markers, _ Context) *Correlation {
	glucose, hasGlucose := m.Get("glucose_fasting")
	hba1c, hasA1c := m.Get("hba1c")

	if (hasGlucose && glucose.Value >= 126) || (hasA1c && hba1c.Value >= 6.5) {
		return nil
	}

	var b builder

	if hasGlucose && glucose.Value >= 100 {
		b.lab(glucose)
	}

	if hasA1c && hba1c.Value >= 5.7 {
		b.lab(hba1c)
	}

	if b.count() == 0 {
		return nil
	}

	confidence := ConfidenceLow
	if b.count() == 2 {
		confidence = ConfidenceMedium
	}

	return b.build(Correlation{
		Type:                PatternPrediabetes,
		Pattern:             "Prediabetes",
		ClinicalImplication: "Impaired fasting glucose or raised HbA1c below the diabetic threshold. Progression is preventable with lifestyle change.",
		Confidence:          confidence,
		CriteriaMet:         criteria(b.count(), 2),
	})
}

func detectCardiovascularRisk(m Markers, _ Context) *Correlation {
	var b builder

	if v, ok := m.Get("ldl"); ok && v.Value > 130 {
		b.lab(v)
	}

	if v, ok := m.Get("apolipoprotein_b"); ok && v.Value > 100 {
		b.lab(v)
	}

	if v, ok := m.Get("lp_a"); ok && v.Value > 50 {
		b.lab(v)
	}

	if v, ok := m.Get("crp_high_sensitivity"); ok && v.Value > 2 {
		b.lab(v)
	}

	if v, ok := m.Get("homocysteine"); ok && v.Value > 15 {
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
		Type:                PatternCardiovascularRisk,
		Pattern:             "Elevated cardiovascular risk",
		ClinicalImplication: "Atherogenic lipoproteins with inflammatory or thrombotic markers. Estimate global risk and consider lipid-lowering therapy.",
		Confidence:          confidence,
		CriteriaMet:         criteria(b.count(), 5),
	})
}
