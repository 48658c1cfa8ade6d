/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package consensus

// Candidate is one ranked diagnosis from one reasoning source.
type Candidate struct {
	SourceID              string   `json:"sourceId"`
	Name                  string   `json:"name"`
	Rank                  int      `json:"rank"`
	Confidence            float64  `json:"confidence"`
	Code                  string   `json:"icd10,omitempty"`
	SupportingEvidence    []string `json:"supportingEvidence,omitempty"`
	ContradictingEvidence []string `json:"contradictingEvidence,omitempty"`
	SuggestedTests        []string `json:"suggestedTests,omitempty"`
	Reasoning             string   `json:"reasoning,omitempty"`
}

// Level describes how strongly sources agree on a diagnosis.
type Level string

// Consensus levels.
const (
	LevelStrong    Level = "strong"
	LevelModerate  Level = "moderate"
	LevelWeak      Level = "weak"
	LevelSingle    Level = "single"
	LevelDivergent Level = "divergent"
)

// SourceDetail is one source's view of an aggregated diagnosis.
type SourceDetail struct {
	Rank       int     `json:"rank"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Diagnosis is an aggregated diagnosis in the consensus ranking.
type Diagnosis struct {
	CanonicalName         string                  `json:"canonicalName"`
	Name                  string                  `json:"name"`
	Code                  string                  `json:"icd10,omitempty"`
	Confidence            int                     `json:"confidence"`
	SupportingEvidence    []string                `json:"supportingEvidence"`
	ContradictingEvidence []string                `json:"contradictingEvidence"`
	SuggestedTests        []string                `json:"suggestedTests"`
	AggregateScore        float64                 `json:"aggregateScore"`
	ConsensusLevel        Level                   `json:"consensusLevel"`
	SourceDetails         map[string]SourceDetail `json:"sourceDetails"`
}

// Metrics summarizes one aggregation run.
type Metrics struct {
	ModelsUsed             []string         `json:"modelsUsed"`
	StrongConsensusRate    int              `json:"strongConsensusRate"`
	ModerateConsensusCount int              `json:"moderateConsensusCount"`
	DivergentCount         int              `json:"divergentCount"`
	DivergentDiagnoses     []string         `json:"divergentDiagnoses,omitempty"`
	TotalProcessingTimeMs  int64            `json:"totalProcessingTimeMs"`
	ModelTimings           map[string]int64 `json:"modelTimings,omitempty"`
}

// Warning is a non-fatal problem found in the input.
type Warning struct {
	Kind     string `json:"kind"`
	SourceID string `json:"sourceId"`
	Name     string `json:"name"`
	Detail   string `json:"detail"`
}

// Warning kinds.
const (
	WarningInvalidCandidateRank = "InvalidCandidateRank"
)

// Result is the output of Aggregate.
type Result struct {
	Diagnoses     []Diagnosis `json:"differentialDiagnosis"`
	Metrics       Metrics     `json:"consensusMetrics"`
	Warnings      []Warning   `json:"warnings,omitempty"`
	LowConfidence bool        `json:"lowConfidence"`
}
