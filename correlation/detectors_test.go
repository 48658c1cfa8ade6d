// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package correlation

import (
	"reflect"
	"strings"
	"testing"

	"github.com/humaidq/labconsensus/biomarker"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestIronDeficiencyAnemiaNeedsTwoIronMarkers(t *testing.T) {
	t.Parallel()

	one := classifyAll(t, biomarker.SexFemale,
		labValue{"hemoglobin", 9.8},
		labValue{"ferritin", 8},
	)
	if c := findRule(HematologicModule().RunAll(one, Context{}), "iron_deficiency_anemia"); c != nil {
		t.Fatalf("expected no correlation with a single iron marker, got %+v", c)
	}

	two := classifyAll(t, biomarker.SexFemale,
		labValue{"hemoglobin", 9.8},
		labValue{"ferritin", 8},
		labValue{"iron", 40},
	)

	c := findRule(HematologicModule().RunAll(two, Context{}), "iron_deficiency_anemia")
	if c == nil {
		t.Fatalf("expected iron deficiency anemia")
	}

	if !reflect.DeepEqual(c.Markers, []string{"hemoglobin", "ferritin", "iron"}) {
		t.Fatalf("unexpected markers %v", c.Markers)
	}

	if c.Type != PatternIronDeficiencyAnemia || c.Confidence != ConfidenceMedium {
		t.Fatalf("unexpected correlation %+v", c)
	}
}

func TestIronDeficiencyAnemiaEscalatesConfidence(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexFemale,
		labValue{"hemoglobin", 9.8},
		labValue{"ferritin", 8},
		labValue{"iron", 40},
		labValue{"transferrin_saturation", 10},
		labValue{"mcv", 72},
	)

	c := findRule(HematologicModule().RunAll(markers, Context{}), "iron_deficiency_anemia")
	if c == nil {
		t.Fatalf("expected iron deficiency anemia")
	}

	if c.Confidence != ConfidenceHigh {
		t.Fatalf("confidence = %s, want high", c.Confidence)
	}

	if c.Pattern != "Microcytic iron-deficiency anemia" {
		t.Fatalf("unexpected pattern %q", c.Pattern)
	}

	if len(c.Evidence) != 5 {
		t.Fatalf("expected 5 evidence items, got %+v", c.Evidence)
	}
}

func TestB12DeficiencyAndChronicDiseaseAnemia(t *testing.T) {
	t.Parallel()

	b12 := classifyAll(t, biomarker.SexMale,
		labValue{"vitamin_b12", 180},
		labValue{"mcv", 108},
		labValue{"homocysteine", 18},
	)

	c := findRule(HematologicModule().RunAll(b12, Context{}), "b12_deficiency")
	if c == nil || c.Confidence != ConfidenceHigh || len(c.Markers) != 3 {
		t.Fatalf("unexpected b12 correlation %+v", c)
	}

	alone := classifyAll(t, biomarker.SexMale, labValue{"vitamin_b12", 180})
	if c := findRule(HematologicModule().RunAll(alone, Context{}), "b12_deficiency"); c != nil {
		t.Fatalf("expected no b12 correlation from a single marker, got %+v", c)
	}

	acd := classifyAll(t, biomarker.SexMale,
		labValue{"hemoglobin", 11},
		labValue{"ferritin", 350},
		labValue{"crp", 25},
	)

	c = findRule(HematologicModule().RunAll(acd, Context{}), "anemia_of_chronic_disease")
	if c == nil || c.Type != PatternChronicInflammation || c.Confidence != ConfidenceMedium {
		t.Fatalf("unexpected chronic disease anemia %+v", c)
	}
}

func TestClassifyAnemiaByMCV(t *testing.T) {
	t.Parallel()

	tests := map[float64]AnemiaMorphology{
		72:  AnemiaMicrocytic,
		80:  AnemiaNormocytic,
		100: AnemiaNormocytic,
		105: AnemiaMacrocytic,
	}

	for mcv, want := range tests {
		if got := ClassifyAnemiaByMCV(mcv); got != want {
			t.Fatalf("ClassifyAnemiaByMCV(%v) = %s, want %s", mcv, got, want)
		}
	}
}

func TestDetermineInjuryPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r, deRitis float64
		enzymes    bool
		want       InjuryPattern
	}{
		{6, 1, false, InjuryHepatocellular},
		{1, 2.5, false, InjuryHepatocellular},
		{1, 1, false, InjuryCholestatic},
		{3, 1, true, InjuryCholestatic},
		{3, 1, false, InjuryMixed},
	}

	for _, tt := range tests {
		if got := DetermineInjuryPattern(tt.r, tt.deRitis, tt.enzymes); got != tt.want {
			t.Fatalf("DetermineInjuryPattern(%v, %v, %v) = %s, want %s", tt.r, tt.deRitis, tt.enzymes, got, tt.want)
		}
	}
}

func TestLiverInjury(t *testing.T) {
	t.Parallel()

	altOnly := classifyAll(t, biomarker.SexUnknown, labValue{"alt", 250})
	if c := findRule(LiverModule().RunAll(altOnly, Context{}), "liver_injury"); c != nil {
		t.Fatalf("expected no liver injury without AST, got %+v", c)
	}

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"alt", 250},
		labValue{"ast", 180},
		labValue{"alkaline_phosphatase", 100},
	)

	c := findRule(LiverModule().RunAll(markers, Context{}), "liver_injury")
	if c == nil {
		t.Fatalf("expected liver injury")
	}

	if c.Type != PatternHepatocellularInjury {
		t.Fatalf("type = %s, want hepatocellular", c.Type)
	}

	if c.Pattern != "Liver injury, hepatocellular pattern (moderate)" {
		t.Fatalf("unexpected pattern %q", c.Pattern)
	}

	if c.Confidence != ConfidenceHigh {
		t.Fatalf("confidence = %s, want high", c.Confidence)
	}

	if !strings.Contains(c.ClinicalImplication, "viral hepatitis") {
		t.Fatalf("expected De Ritis note, got %q", c.ClinicalImplication)
	}
}

func TestCholestasisAndSyntheticFunction(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"alkaline_phosphatase", 300},
		labValue{"ggt", 200},
		labValue{"bilirubin_direct", 1.1},
		labValue{"albumin", 2.8},
		labValue{"bilirubin_total", 2.6},
	)

	got := LiverModule().RunAll(markers, Context{})

	chol := findRule(got, "cholestasis")
	if chol == nil || chol.Confidence != ConfidenceHigh || len(chol.Markers) != 3 {
		t.Fatalf("unexpected cholestasis %+v", chol)
	}

	synth := findRule(got, "impaired_synthetic_function")
	if synth == nil || synth.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected synthetic function %+v", synth)
	}
}

func TestStageForGFR(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		95: "G1",
		60: "G2",
		50: "G3a",
		35: "G3b",
		20: "G4",
		10: "G5",
	}

	for gfr, want := range tests {
		if got := StageForGFR(gfr).Stage; got != want {
			t.Fatalf("StageForGFR(%v) = %s, want %s", gfr, got, want)
		}
	}
}

func TestChronicKidneyDisease(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"gfr", 25},
		labValue{"creatinine", 2.5},
	)

	got := KidneyModule().RunAll(markers, Context{})

	c := findRule(got, "chronic_kidney_disease")
	if c == nil {
		t.Fatalf("expected CKD")
	}

	if c.Pattern != "Chronic kidney disease, stage G4" || c.CriteriaMet != "G4 (severe)" || c.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected CKD correlation %+v", c)
	}

	if aki := findRule(got, "acute_kidney_injury"); aki != nil {
		t.Fatalf("creatinine 2.5 should not flag acute injury, got %+v", aki)
	}
}

func TestAcuteKidneyInjury(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown, labValue{"creatinine", 3.4})

	got := KidneyModule().RunAll(markers, Context{BaselineCreatinine: floatPtr(1.0)})

	aki := findRule(got, "acute_kidney_injury")
	if aki == nil || aki.Confidence != ConfidenceHigh {
		t.Fatalf("expected acute kidney injury, got %+v", got)
	}

	if !reflect.DeepEqual(aki.Markers, []string{"creatinine"}) {
		t.Fatalf("unexpected markers %v", aki.Markers)
	}

	if len(aki.Evidence) != 2 || aki.Evidence[1].Source != EvidenceContext {
		t.Fatalf("expected baseline context evidence, got %+v", aki.Evidence)
	}

	if ckd := findRule(got, "chronic_kidney_disease"); ckd != nil {
		t.Fatalf("single creatinine should not flag CKD, got %+v", ckd)
	}
}

func TestRenalElectrolyteDisturbance(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"gfr", 40},
		labValue{"potassium", 5.3},
		labValue{"phosphorus", 5.2},
	)

	c := findRule(KidneyModule().RunAll(markers, Context{}), "renal_electrolyte_disturbance")
	if c == nil || len(c.Markers) != 3 || c.Markers[2] != "gfr" {
		t.Fatalf("unexpected electrolyte disturbance %+v", c)
	}
}

func TestAcuteInflammationSeverity(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"wbc", 32000},
		labValue{"crp", 150},
	)

	c := findRule(InflammatoryModule().RunAll(markers, Context{}), "acute_inflammation")
	if c == nil {
		t.Fatalf("expected acute inflammation")
	}

	if c.Type != PatternInfection || c.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected correlation %+v", c)
	}

	if c.Pattern != "Acute inflammatory response (severe, consider sepsis)" {
		t.Fatalf("unexpected pattern %q", c.Pattern)
	}

	mild := classifyAll(t, biomarker.SexUnknown,
		labValue{"wbc", 12500},
		labValue{"neutrophils", 78},
	)

	c = findRule(InflammatoryModule().RunAll(mild, Context{}), "acute_inflammation")
	if c == nil || c.Confidence != ConfidenceMedium || c.Pattern != "Acute inflammatory response (moderate)" {
		t.Fatalf("unexpected mild inflammation %+v", c)
	}
}

func TestChronicInflammationAndEosinophilia(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"crp_high_sensitivity", 4},
		labValue{"fibrinogen", 480},
		labValue{"eosinophils", 7},
		labValue{"wbc", 8000},
	)

	got := InflammatoryModule().RunAll(markers, Context{})

	chronic := findRule(got, "chronic_low_grade_inflammation")
	if chronic == nil || chronic.Confidence != ConfidenceMedium {
		t.Fatalf("unexpected chronic inflammation %+v", chronic)
	}

	eos := findRule(got, "eosinophilia")
	if eos == nil || eos.Pattern != "Eosinophilia (mild)" {
		t.Fatalf("unexpected eosinophilia %+v", eos)
	}

	if eos.Evidence[1].Value != "560 /mm³" {
		t.Fatalf("unexpected absolute count evidence %+v", eos.Evidence)
	}
}

func TestHypothyroidism(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexFemale,
		labValue{"tsh", 8},
		labValue{"t4_free", 0.6},
		labValue{"anti_tpo", 120},
	)

	got := ThyroidModule().RunAll(markers, Context{})

	hypo := findRule(got, "hypothyroidism")
	if hypo == nil || hypo.Confidence != ConfidenceHigh {
		t.Fatalf("expected overt hypothyroidism, got %+v", hypo)
	}

	if !strings.Contains(hypo.Pattern, "Hashimoto") {
		t.Fatalf("expected Hashimoto note, got %q", hypo.Pattern)
	}

	if auto := findRule(got, "thyroid_autoimmunity"); auto == nil || auto.Confidence != ConfidenceMedium {
		t.Fatalf("unexpected thyroid autoimmunity %+v", auto)
	}

	tshOnly := classifyAll(t, biomarker.SexFemale, labValue{"tsh", 8})
	if c := findRule(ThyroidModule().RunAll(tshOnly, Context{}), "hypothyroidism"); c != nil {
		t.Fatalf("expected no hypothyroidism without free T4, got %+v", c)
	}
}

func TestHyperthyroidism(t *testing.T) {
	t.Parallel()

	subclinical := classifyAll(t, biomarker.SexUnknown,
		labValue{"tsh", 0.05},
		labValue{"t4_free", 1.2},
	)

	c := findRule(ThyroidModule().RunAll(subclinical, Context{}), "hyperthyroidism")
	if c == nil || c.Pattern != "Subclinical hyperthyroidism" || len(c.Markers) != 2 {
		t.Fatalf("unexpected subclinical hyperthyroidism %+v", c)
	}

	overt := classifyAll(t, biomarker.SexUnknown,
		labValue{"tsh", 0.02},
		labValue{"t3_free", 5.5},
	)

	c = findRule(ThyroidModule().RunAll(overt, Context{}), "hyperthyroidism")
	if c == nil || c.Pattern != "Overt hyperthyroidism" || c.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected overt hyperthyroidism %+v", c)
	}

	tshOnly := classifyAll(t, biomarker.SexUnknown, labValue{"tsh", 0.05})
	if c := findRule(ThyroidModule().RunAll(tshOnly, Context{}), "hyperthyroidism"); c != nil {
		t.Fatalf("expected no hyperthyroidism from TSH alone, got %+v", c)
	}
}

func TestLowT3Syndrome(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"t3_free", 2.1},
		labValue{"tsh", 1.5},
		labValue{"reverse_t3", 26},
	)

	c := findRule(ThyroidModule().RunAll(markers, Context{}), "low_t3_syndrome")
	if c == nil || c.Confidence != ConfidenceHigh || len(c.Markers) != 3 {
		t.Fatalf("unexpected low T3 syndrome %+v", c)
	}
}

func TestMetabolicSyndrome(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexMale,
		labValue{"triglycerides", 180},
		labValue{"hdl", 35},
		labValue{"glucose_fasting", 105},
	)

	ctx := Context{
		Sex:                biomarker.SexMale,
		WaistCircumference: floatPtr(110),
		BloodPressure:      &BloodPressure{Systolic: 135, Diastolic: 88},
	}

	got := MetabolicModule().RunAll(markers, ctx)

	c := findRule(got, "metabolic_syndrome")
	if c == nil {
		t.Fatalf("expected metabolic syndrome")
	}

	if c.CriteriaMet != "5/5" || c.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected metabolic syndrome %+v", c)
	}

	if !reflect.DeepEqual(c.Markers, []string{"triglycerides", "hdl", "glucose_fasting"}) {
		t.Fatalf("unexpected markers %v", c.Markers)
	}

	if len(c.Evidence) != 5 {
		t.Fatalf("expected lab and context evidence, got %+v", c.Evidence)
	}

	if ir := findRule(got, "insulin_resistance"); ir == nil {
		t.Fatalf("expected insulin resistance from TG/HDL and glucose")
	}

	contextOnly := MetabolicModule().RunAll(nil, ctx)
	if c := findRule(contextOnly, "metabolic_syndrome"); c != nil {
		t.Fatalf("two context criteria should not be enough, got %+v", c)
	}
}

func TestDiabetesAndPrediabetes(t *testing.T) {
	t.Parallel()

	diabetic := classifyAll(t, biomarker.SexUnknown,
		labValue{"glucose_fasting", 140},
		labValue{"hba1c", 7.1},
	)

	got := MetabolicModule().RunAll(diabetic, Context{})

	dm := findRule(got, "diabetes_type2")
	if dm == nil || dm.Confidence != ConfidenceHigh || dm.CriteriaMet != "2/2" {
		t.Fatalf("unexpected diabetes %+v", dm)
	}

	if pre := findRule(got, "prediabetes"); pre != nil {
		t.Fatalf("prediabetes must not fire alongside diabetes, got %+v", pre)
	}

	borderline := classifyAll(t, biomarker.SexUnknown,
		labValue{"glucose_fasting", 110},
		labValue{"hba1c", 6.0},
	)

	got = MetabolicModule().RunAll(borderline, Context{})

	if dm := findRule(got, "diabetes_type2"); dm != nil {
		t.Fatalf("unexpected diabetes %+v", dm)
	}

	pre := findRule(got, "prediabetes")
	if pre == nil || pre.Type != PatternPrediabetes || pre.Confidence != ConfidenceMedium {
		t.Fatalf("unexpected prediabetes %+v", pre)
	}
}

func TestCardiovascularRisk(t *testing.T) {
	t.Parallel()

	markers := classifyAll(t, biomarker.SexUnknown,
		labValue{"ldl", 170},
		labValue{"apolipoprotein_b", 130},
		labValue{"lp_a", 90},
	)

	c := findRule(MetabolicModule().RunAll(markers, Context{}), "cardiovascular_risk")
	if c == nil || c.Confidence != ConfidenceHigh || c.CriteriaMet != "3/5" {
		t.Fatalf("unexpected cardiovascular risk %+v", c)
	}
}
