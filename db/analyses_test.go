// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/consensus"
)

func sampleInput() analysis.Input {
	return analysis.Input{
		Sex:      biomarker.SexFemale,
		Symptoms: "Fadiga",
		Values: []biomarker.RawValue{
			{Name: "Hemoglobina", Value: 9.8, Unit: "g/dL"},
			{Name: "Ferritina", Value: 8},
		},
	}
}

func TestAnalysisLifecycle(t *testing.T) {
	resetAnalyses(t)

	ctx := context.Background()
	store := NewAnalysisStore(nil)
	id := uuid.New()

	if err := store.CreateAnalysis(ctx, id, sampleInput()); err != nil {
		t.Fatalf("CreateAnalysis failed: %v", err)
	}

	rec, err := store.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}

	if rec.Status != analysis.StatusPending || rec.Report != nil || rec.CompletedAt != nil {
		t.Fatalf("unexpected pending record %+v", rec)
	}

	if len(rec.Input.Values) != 2 || rec.Input.Sex != biomarker.SexFemale {
		t.Fatalf("input did not round-trip: %+v", rec.Input)
	}

	report := &analysis.Report{
		ID:     id,
		Status: analysis.StatusReady,
		Diagnoses: []consensus.Diagnosis{
			{Name: "Anemia ferropriva", CanonicalName: "anemia ferropriva", Confidence: 81, ConsensusLevel: consensus.LevelModerate},
		},
		Disclaimer: analysis.Disclaimer,
		CreatedAt:  time.Now().UTC(),
	}

	if err := store.CompleteAnalysis(ctx, report); err != nil {
		t.Fatalf("CompleteAnalysis failed: %v", err)
	}

	rec, err = store.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}

	if rec.Status != analysis.StatusReady || rec.Report == nil || rec.CompletedAt == nil {
		t.Fatalf("unexpected completed record %+v", rec)
	}

	if rec.Report.Diagnoses[0].Confidence != 81 {
		t.Fatalf("report did not round-trip: %+v", rec.Report.Diagnoses)
	}

	list, err := store.ListAnalyses(ctx, 10)
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}

	if len(list) != 1 || list[0].ID != id || list[0].TopDiagnosis == nil || *list[0].TopDiagnosis != "Anemia ferropriva" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestFailAnalysis(t *testing.T) {
	resetAnalyses(t)

	ctx := context.Background()
	store := NewAnalysisStore(GetPool())
	id := uuid.New()

	if err := store.CreateAnalysis(ctx, id, sampleInput()); err != nil {
		t.Fatalf("CreateAnalysis failed: %v", err)
	}

	if err := store.FailAnalysis(ctx, id, analysis.ErrNoReasoningOutput); err != nil {
		t.Fatalf("FailAnalysis failed: %v", err)
	}

	rec, err := store.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}

	if rec.Status != analysis.StatusError || rec.Error == nil || *rec.Error != analysis.ErrNoReasoningOutput.Error() {
		t.Fatalf("unexpected failed record %+v", rec)
	}
}

func TestAnalysisNotFound(t *testing.T) {
	resetAnalyses(t)

	ctx := context.Background()
	store := NewAnalysisStore(nil)
	missing := uuid.New()

	if _, err := store.GetAnalysis(ctx, missing); !errors.Is(err, ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}

	if err := store.CompleteAnalysis(ctx, &analysis.Report{ID: missing, Status: analysis.StatusReady}); !errors.Is(err, ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}

	if err := store.FailAnalysis(ctx, missing, nil); !errors.Is(err, ErrAnalysisNotFound) {
		t.Fatalf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestListAnalysesOrder(t *testing.T) {
	resetAnalyses(t)

	ctx := context.Background()
	store := NewAnalysisStore(nil)

	var ids []uuid.UUID

	for range 3 {
		id := uuid.New()
		if err := store.CreateAnalysis(ctx, id, sampleInput()); err != nil {
			t.Fatalf("CreateAnalysis failed: %v", err)
		}

		ids = append(ids, id)

		time.Sleep(5 * time.Millisecond)
	}

	list, err := store.ListAnalyses(ctx, 2)
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}

	if len(list) != 2 || list[0].ID != ids[2] || list[1].ID != ids[1] {
		t.Fatalf("expected newest first, got %+v", list)
	}
}
