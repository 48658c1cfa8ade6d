/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/google/uuid"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/db"
)

// CreateAnalysis runs the full pipeline, consulting every reasoning source.
func CreateAnalysis(c flamego.Context, engine *analysis.Engine) {
	var input analysis.Input
	if err := decodeBody(c, &input); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidJSON, err.Error())
		return
	}

	input.Normalize()

	report, err := engine.Analyze(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrNoValues):
			writeError(c, http.StatusBadRequest, codeNoValues, err.Error())
		case errors.Is(err, analysis.ErrNoSources):
			writeError(c, http.StatusServiceUnavailable, codeNoSources, err.Error())
		case errors.Is(err, analysis.ErrNoReasoningOutput):
			writeError(c, http.StatusBadGateway, codeNoReasoning, err.Error())
		default:
			requestLogger.Error("analysis failed", "error", err)
			writeError(c, http.StatusInternalServerError, codeInternal, "analysis failed")
		}

		return
	}

	writeJSON(c, http.StatusCreated, report)
}

// ListAnalyses lists recent analyses, newest first.
func ListAnalyses(c flamego.Context, repo AnalysisRepository) {
	limit := 0

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, codeInvalidLimit, errInvalidLimit.Error())
			return
		}

		limit = n
	}

	items, err := repo.ListAnalyses(c.Request().Context(), limit)
	if err != nil {
		writeStorageError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, nonNil(items))
}

// GetAnalysis returns one stored analysis.
func GetAnalysis(c flamego.Context, repo AnalysisRepository) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidID, "invalid analysis id")
		return
	}

	record, err := repo.GetAnalysis(c.Request().Context(), id)
	if err != nil {
		writeStorageError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, record)
}

func writeStorageError(c flamego.Context, err error) {
	switch {
	case errors.Is(err, errStorageDisabled):
		writeError(c, http.StatusServiceUnavailable, codeStorageDisabled, err.Error())
	case errors.Is(err, db.ErrAnalysisNotFound):
		writeError(c, http.StatusNotFound, codeNotFound, err.Error())
	default:
		requestLogger.Error("analysis storage failed", "error", err)
		writeError(c, http.StatusInternalServerError, codeInternal, "failed to load analyses")
	}
}
