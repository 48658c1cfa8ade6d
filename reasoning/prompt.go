/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reasoning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/correlation"
)

// Case is the patient picture every source reasons about.
type Case struct {
	Age          *int                      `json:"age,omitempty"`
	Sex          biomarker.Sex             `json:"sex,omitempty"`
	Symptoms     string                    `json:"symptoms,omitempty"`
	History      string                    `json:"history,omitempty"`
	Vitals       string                    `json:"vitals,omitempty"`
	Context      correlation.Context       `json:"context"`
	Markers      []biomarker.Extracted     `json:"markers"`
	Correlations []correlation.Correlation `json:"correlations"`
}

// outputInstructions is appended to every persona prompt so the reply can be
// parsed by ParseDifferential.
const outputInstructions = `Reply with one JSON object and nothing else, using this shape:
{"differentialDiagnosis":[{"name":"","icd10":"","confidence":0,"reasoning":"","supportingEvidence":[],"contradictingEvidence":[],"suggestedTests":[]}]}
List at most 10 diagnoses, most likely first. Confidence is a number from 0 to 100.`

func systemPrompt(p Persona) string {
	return strings.TrimSpace(p.SystemPrompt) + "\n\n" + outputInstructions
}

// BuildCasePrompt formats the patient context, classified markers and
// detected patterns for a reasoning source.
func BuildCasePrompt(c Case) string {
	var sb strings.Builder

	sb.WriteString("PATIENT CONTEXT:\n")

	age := "unknown"
	if c.Age != nil {
		age = strconv.Itoa(*c.Age)
	}

	sex := string(c.Sex)
	if sex == "" {
		sex = "unknown"
	}

	fmt.Fprintf(&sb, "Age: %s | Sex: %s\n", age, sex)

	if c.Context.WaistCircumference != nil {
		fmt.Fprintf(&sb, "Waist circumference: %g cm\n", *c.Context.WaistCircumference)
	}

	if bp := c.Context.BloodPressure; bp != nil {
		fmt.Fprintf(&sb, "Blood pressure: %g/%g mmHg\n", bp.Systolic, bp.Diastolic)
	}

	if c.Context.BaselineCreatinine != nil {
		fmt.Fprintf(&sb, "Baseline creatinine: %g mg/dL\n", *c.Context.BaselineCreatinine)
	}

	writeSection(&sb, "VITALS", c.Vitals)
	writeSection(&sb, "MAIN SYMPTOMS", c.Symptoms)
	writeSection(&sb, "MEDICAL HISTORY", c.History)

	sb.WriteString("\nLAB RESULTS:\n")

	if len(c.Markers) == 0 {
		sb.WriteString("None provided.\n")
	}

	for _, m := range c.Markers {
		unit := ""
		if m.Unit != "" {
			unit = " " + m.Unit
		}

		flag := ""
		switch m.Status {
		case biomarker.StatusCritical:
			flag = " [CRITICAL]"
		case biomarker.StatusAttention:
			flag = " [ATTENTION]"
		}

		fmt.Fprintf(&sb, "- %s: %g%s (Reference: %s)%s %s\n", m.Name, m.Value, unit, m.LabRange, flag, m.Interpretation)
	}

	if len(c.Correlations) > 0 {
		sb.WriteString("\nDETECTED PATTERNS:\n")

		for _, corr := range c.Correlations {
			fmt.Fprintf(&sb, "- %s (%s confidence): %s\n", corr.Pattern, corr.Confidence, corr.ClinicalImplication)
		}
	}

	sb.WriteString("\nINSTRUCTIONS:\nAnalyze this case strictly according to your system persona.\n")

	return sb.String()
}

func writeSection(sb *strings.Builder, title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}

	fmt.Fprintf(sb, "\n%s:\n%s\n", title, body)
}
