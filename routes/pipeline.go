/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/consensus"
	"github.com/humaidq/labconsensus/correlation"
)

type classifyRequest struct {
	Sex    string               `json:"sex"`
	Values []biomarker.RawValue `json:"values"`
}

type classifyResponse struct {
	Markers  []biomarker.Extracted `json:"markers"`
	Rejected []biomarker.Rejection `json:"rejected,omitempty"`
	Summary  biomarker.Summary     `json:"summary"`
}

type correlationsResponse struct {
	Markers      []biomarker.Extracted     `json:"markers"`
	Rejected     []biomarker.Rejection     `json:"rejected,omitempty"`
	Correlations []correlation.Correlation `json:"correlations"`
}

type consensusRequest struct {
	Candidates   []consensus.Candidate `json:"candidates"`
	TotalSources int                   `json:"totalSources,omitempty"`
}

type evaluateRequest struct {
	Input      analysis.Input        `json:"input"`
	Candidates []consensus.Candidate `json:"candidates"`
}

// Classify resolves and classifies lab values.
func Classify(c flamego.Context, engine *analysis.Engine) {
	var req classifyRequest
	if err := decodeBody(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	batch, _ := engine.Prepare(analysis.Input{
		Sex:    biomarker.ParseSex(req.Sex),
		Values: req.Values,
	})

	writeJSON(c, http.StatusOK, classifyResponse{
		Markers:  nonNil(batch.Markers),
		Rejected: batch.Rejected,
		Summary:  biomarker.Summarize(batch.Markers),
	})
}

// DetectCorrelations classifies the values and runs the pattern detectors.
func DetectCorrelations(c flamego.Context, engine *analysis.Engine) {
	var input analysis.Input
	if err := decodeBody(c, &input); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	input.Normalize()

	batch, correlations := engine.Prepare(input)

	writeJSON(c, http.StatusOK, correlationsResponse{
		Markers:      nonNil(batch.Markers),
		Rejected:     batch.Rejected,
		Correlations: nonNil(correlations),
	})
}

// AggregateConsensus aggregates caller supplied candidates.
func AggregateConsensus(c flamego.Context, engine *analysis.Engine) {
	var req consensusRequest
	if err := decodeBody(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	aggregator := engine.Aggregator()
	if req.TotalSources > 0 {
		cfg := aggregator.Config()
		cfg.TotalSources = req.TotalSources
		aggregator = consensus.NewAggregator(cfg)
	}

	result, err := aggregator.Aggregate(req.Candidates)
	if err != nil {
		writeConsensusError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, result)
}

// Evaluate runs the deterministic pipeline on an input and candidates.
func Evaluate(c flamego.Context, engine *analysis.Engine) {
	var req evaluateRequest
	if err := decodeBody(c, &req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	req.Input.Normalize()

	report, err := engine.Evaluate(req.Input, req.Candidates)
	if err != nil {
		writeConsensusError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, report)
}

func writeConsensusError(c flamego.Context, err error) {
	switch {
	case errors.Is(err, consensus.ErrEmptyCandidateSet):
		writeError(c, http.StatusUnprocessableEntity, codeEmptyCandidateSet, err.Error())
	case errors.Is(err, consensus.ErrMalformedCandidate):
		writeError(c, http.StatusBadRequest, codeMalformed, err.Error())
	default:
		requestLogger.Error("aggregation failed", "error", err)
		writeError(c, http.StatusInternalServerError, codeInternal, "aggregation failed")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
