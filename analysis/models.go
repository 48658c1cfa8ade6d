/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/consensus"
	"github.com/humaidq/labconsensus/correlation"
	"github.com/humaidq/labconsensus/reasoning"
)

// Disclaimer is attached to every report.
const Disclaimer = "Decision support only. Results must be reviewed by a qualified clinician and are not a diagnosis."

// Status is the lifecycle state of an analysis.
type Status string

// Analysis statuses. Pending and error only appear on stored records.
const (
	StatusPending          Status = "pending"
	StatusReady            Status = "ready"
	StatusInsufficientData Status = "insufficient_data"
	StatusError            Status = "error"
)

// Input is one case submitted for analysis.
type Input struct {
	Sex      biomarker.Sex        `json:"sex,omitempty"`
	Age      *int                 `json:"age,omitempty"`
	Symptoms string               `json:"symptoms,omitempty"`
	History  string               `json:"history,omitempty"`
	Vitals   string               `json:"vitals,omitempty"`
	Context  correlation.Context  `json:"context"`
	Values   []biomarker.RawValue `json:"values"`
}

// SourceFailure records a reasoning source that produced nothing usable.
type SourceFailure struct {
	SourceID   string `json:"sourceId"`
	Error      string `json:"error"`
	DurationMs int64  `json:"durationMs"`
}

// Report is the full outcome of one analysis.
type Report struct {
	ID             uuid.UUID                 `json:"id"`
	Status         Status                    `json:"status"`
	Summary        biomarker.Summary         `json:"summary"`
	Markers        []biomarker.Extracted     `json:"markers"`
	Rejected       []biomarker.Rejection     `json:"rejected,omitempty"`
	Correlations   []correlation.Correlation `json:"correlations"`
	Diagnoses      []consensus.Diagnosis     `json:"differentialDiagnosis"`
	Metrics        consensus.Metrics         `json:"consensusMetrics"`
	LowConfidence  bool                      `json:"lowConfidence"`
	Warnings       []consensus.Warning       `json:"warnings,omitempty"`
	SourceFailures []SourceFailure           `json:"sourceFailures,omitempty"`
	Disclaimer     string                    `json:"disclaimer"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

// Normalize maps free-form sex values such as "F" or "masculino" onto the
// canonical ones.
func (in *Input) Normalize() {
	in.Sex = biomarker.ParseSex(string(in.Sex))
	in.Context.Sex = biomarker.ParseSex(string(in.Context.Sex))
}

func (in Input) sex() biomarker.Sex {
	if in.Sex != biomarker.SexUnknown {
		return in.Sex
	}

	return in.Context.Sex
}

func (in Input) toCase(markers []biomarker.Extracted, correlations []correlation.Correlation) reasoning.Case {
	ctx := in.Context
	ctx.Sex = in.sex()

	return reasoning.Case{
		Age:          in.Age,
		Sex:          in.sex(),
		Symptoms:     in.Symptoms,
		History:      in.History,
		Vitals:       in.Vitals,
		Context:      ctx,
		Markers:      markers,
		Correlations: correlations,
	}
}
