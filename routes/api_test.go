// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flamego/flamego"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/consensus"
	"github.com/humaidq/labconsensus/db"
	"github.com/humaidq/labconsensus/reasoning"
)

var errTestSourceDown = errors.New("source down")

type stubSource struct {
	id    string
	cands []consensus.Candidate
	err   error
}

func (s stubSource) ID() string {
	return s.id
}

func (s stubSource) Diagnose(context.Context, reasoning.Case) ([]consensus.Candidate, error) {
	return s.cands, s.err
}

type stubRepo struct {
	records map[uuid.UUID]*db.AnalysisRecord
	limit   int
}

func (r *stubRepo) GetAnalysis(_ context.Context, id uuid.UUID) (*db.AnalysisRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, db.ErrAnalysisNotFound
	}

	return rec, nil
}

func (r *stubRepo) ListAnalyses(_ context.Context, limit int) ([]db.AnalysisSummary, error) {
	r.limit = limit

	out := make([]db.AnalysisSummary, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, db.AnalysisSummary{ID: rec.ID, Status: rec.Status, CreatedAt: rec.CreatedAt})
	}

	return out, nil
}

func newTestApp(t *testing.T, sources []reasoning.Source, repo AnalysisRepository) (*flamego.Flame, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	engine := analysis.NewEngine(analysis.Config{
		Sources: sources,
		Metrics: analysis.NewMetrics(reg),
	})

	return New(Options{Engine: engine, Analyses: repo, Gatherer: reg}), reg
}

func doRequest(f *flamego.Flame, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}

	var resp errorResponse
	decodeResponse(t, rec, &resp)

	if resp.Code != code {
		t.Fatalf("expected code %q, got %q (%s)", code, resp.Code, resp.Error)
	}
}

const anemiaValues = `[
	{"name": "Hemoglobina", "value": 9.8, "unit": "g/dL"},
	{"name": "Ferritina", "value": 8},
	{"name": "Ferro sérico", "value": 40},
	{"name": "Zzzq", "value": 5}
]`

func TestHealthz(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, []reasoning.Source{stubSource{id: "conservative"}}, nil)

	rec := doRequest(f, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp healthResponse
	decodeResponse(t, rec, &resp)

	if resp.Status != "ok" || resp.Biomarkers != biomarker.DefaultCatalog().Len() {
		t.Fatalf("unexpected health response %+v", resp)
	}

	if len(resp.Sources) != 1 || resp.Sources[0] != "conservative" {
		t.Fatalf("unexpected sources %v", resp.Sources)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	rec := doRequest(f, http.MethodGet, "/api/v1/categories", "")

	var cats []categoryView
	decodeResponse(t, rec, &cats)

	if len(cats) == 0 || cats[0].Name == "" || cats[0].Count == 0 {
		t.Fatalf("unexpected categories %+v", cats)
	}

	rec = doRequest(f, http.MethodGet, "/api/v1/biomarkers?category=THYROID", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var defs []biomarker.Definition
	decodeResponse(t, rec, &defs)

	if len(defs) == 0 {
		t.Fatal("expected thyroid definitions")
	}

	for _, def := range defs {
		if def.Category != biomarker.CategoryThyroid {
			t.Fatalf("unexpected category %s for %s", def.Category, def.ID)
		}
	}

	expectError(t, doRequest(f, http.MethodGet, "/api/v1/biomarkers?category=astrology", ""), http.StatusBadRequest, codeInvalidCategory)
}

func TestLookupBiomarker(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	rec := doRequest(f, http.MethodGet, "/api/v1/biomarkers/lookup?name=TSH", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var def biomarker.Definition
	decodeResponse(t, rec, &def)

	if def.ID != "tsh" {
		t.Fatalf("expected tsh, got %q", def.ID)
	}

	expectError(t, doRequest(f, http.MethodGet, "/api/v1/biomarkers/lookup", ""), http.StatusBadRequest, codeMissingName)
	expectError(t, doRequest(f, http.MethodGet, "/api/v1/biomarkers/lookup?name=zzzq", ""), http.StatusNotFound, codeUnresolved)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	rec := doRequest(f, http.MethodPost, "/api/v1/classify", `{"sex": "F", "values": `+anemiaValues+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp classifyResponse
	decodeResponse(t, rec, &resp)

	if resp.Summary != (biomarker.Summary{Critical: 1, Attention: 2}) {
		t.Fatalf("unexpected summary %+v", resp.Summary)
	}

	if len(resp.Markers) != 3 || len(resp.Rejected) != 1 || resp.Rejected[0].Name != "Zzzq" {
		t.Fatalf("unexpected classification %+v", resp)
	}

	expectError(t, doRequest(f, http.MethodPost, "/api/v1/classify", `{"values": [`), http.StatusBadRequest, codeInvalidJSON)
	expectError(t, doRequest(f, http.MethodPost, "/api/v1/classify", `{"unknown": 1}`), http.StatusBadRequest, codeInvalidJSON)
}

func TestClassifyRejectsMissingValues(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	rec := doRequest(f, http.MethodPost, "/api/v1/classify", `{"values": [{"name": "glicose"}, {"name": "potassio", "value": null}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp classifyResponse
	decodeResponse(t, rec, &resp)

	if len(resp.Markers) != 0 || resp.Summary.Critical != 0 {
		t.Fatalf("expected no classified markers, got %+v", resp)
	}

	if len(resp.Rejected) != 2 {
		t.Fatalf("expected 2 rejections, got %+v", resp.Rejected)
	}

	for _, r := range resp.Rejected {
		if !strings.Contains(r.Error, biomarker.ErrMissingValue.Error()) || r.Value != nil {
			t.Fatalf("unexpected rejection %+v", r)
		}
	}
}

func TestDetectCorrelations(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	rec := doRequest(f, http.MethodPost, "/api/v1/correlations", `{"sex": "feminino", "values": `+anemiaValues+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp correlationsResponse
	decodeResponse(t, rec, &resp)

	if len(resp.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(resp.Markers))
	}

	if len(resp.Correlations) == 0 {
		t.Fatal("expected at least one correlation for iron deficiency values")
	}
}

func TestAggregateConsensusEndpoint(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	body := `{
		"totalSources": 2,
		"candidates": [
			{"sourceId": "A", "name": "Anemia Ferropriva", "rank": 1, "confidence": 80},
			{"sourceId": "B", "name": "anemia ferropriva", "rank": 1, "confidence": 75}
		]
	}`

	rec := doRequest(f, http.MethodPost, "/api/v1/consensus", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var res consensus.Result
	decodeResponse(t, rec, &res)

	if len(res.Diagnoses) != 1 || res.Diagnoses[0].ConsensusLevel != consensus.LevelStrong {
		t.Fatalf("unexpected diagnoses %+v", res.Diagnoses)
	}

	if res.Diagnoses[0].Confidence != 89 || res.Metrics.StrongConsensusRate != 100 {
		t.Fatalf("unexpected confidence %d and rate %d", res.Diagnoses[0].Confidence, res.Metrics.StrongConsensusRate)
	}

	expectError(t, doRequest(f, http.MethodPost, "/api/v1/consensus", `{"candidates": []}`), http.StatusUnprocessableEntity, codeEmptyCandidateSet)
	expectError(t, doRequest(f, http.MethodPost, "/api/v1/consensus",
		`{"candidates": [{"sourceId": "A", "name": "", "rank": 1, "confidence": 50}]}`), http.StatusBadRequest, codeMalformed)
	expectError(t, doRequest(f, http.MethodPost, "/api/v1/consensus", ""), http.StatusBadRequest, codeInvalidJSON)
}

func TestEvaluateEndpoint(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	body := `{
		"input": {"sex": "female", "values": ` + anemiaValues + `},
		"candidates": [
			{"sourceId": "A", "name": "Anemia Ferropriva", "rank": 1, "confidence": 80},
			{"sourceId": "B", "name": "Anemia ferropriva", "rank": 1, "confidence": 75},
			{"sourceId": "C", "name": "Deficiência de B12", "rank": 1, "confidence": 60}
		]
	}`

	rec := doRequest(f, http.MethodPost, "/api/v1/evaluate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var report analysis.Report
	decodeResponse(t, rec, &report)

	if report.Status != analysis.StatusReady || len(report.Diagnoses) != 2 {
		t.Fatalf("unexpected report %s with %d diagnoses", report.Status, len(report.Diagnoses))
	}

	if report.Diagnoses[0].Confidence != 81 || report.Summary.Critical != 1 {
		t.Fatalf("unexpected report contents %+v", report.Diagnoses[0])
	}

	expectError(t, doRequest(f, http.MethodPost, "/api/v1/evaluate", `{"input": {}, "candidates": []}`),
		http.StatusUnprocessableEntity, codeEmptyCandidateSet)
}

func TestCreateAnalysis(t *testing.T) {
	t.Parallel()

	sources := []reasoning.Source{
		stubSource{id: "conservative", cands: []consensus.Candidate{{Name: "Anemia Ferropriva", Rank: 1, Confidence: 80}}},
		stubSource{id: "aggressive", cands: []consensus.Candidate{{Name: "anemia ferropriva", Rank: 1, Confidence: 70}}},
		stubSource{id: "academic", err: errTestSourceDown},
	}

	f, _ := newTestApp(t, sources, nil)

	rec := doRequest(f, http.MethodPost, "/api/v1/analyses", `{"sex": "F", "symptoms": "fadiga", "values": `+anemiaValues+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var report analysis.Report
	decodeResponse(t, rec, &report)

	if report.ID == uuid.Nil || len(report.Diagnoses) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}

	if report.Diagnoses[0].ConsensusLevel != consensus.LevelModerate {
		t.Fatalf("expected moderate consensus, got %s", report.Diagnoses[0].ConsensusLevel)
	}

	if len(report.SourceFailures) != 1 || report.SourceFailures[0].SourceID != "academic" {
		t.Fatalf("unexpected source failures %+v", report.SourceFailures)
	}

	expectError(t, doRequest(f, http.MethodPost, "/api/v1/analyses", `{"values": []}`), http.StatusBadRequest, codeNoValues)
}

func TestCreateAnalysisFailures(t *testing.T) {
	t.Parallel()

	noSources, _ := newTestApp(t, nil, nil)
	expectError(t, doRequest(noSources, http.MethodPost, "/api/v1/analyses", `{"values": `+anemiaValues+`}`),
		http.StatusServiceUnavailable, codeNoSources)

	allDown, _ := newTestApp(t, []reasoning.Source{
		stubSource{id: "a", err: errTestSourceDown},
		stubSource{id: "b"},
	}, nil)
	expectError(t, doRequest(allDown, http.MethodPost, "/api/v1/analyses", `{"values": `+anemiaValues+`}`),
		http.StatusBadGateway, codeNoReasoning)
}

func TestAnalysesWithoutStorage(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	expectError(t, doRequest(f, http.MethodGet, "/api/v1/analyses", ""), http.StatusServiceUnavailable, codeStorageDisabled)
	expectError(t, doRequest(f, http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), ""), http.StatusServiceUnavailable, codeStorageDisabled)
}

func TestAnalysesWithStorage(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &stubRepo{records: map[uuid.UUID]*db.AnalysisRecord{
		id: {ID: id, Status: analysis.StatusReady, CreatedAt: time.Now().UTC()},
	}}

	f, _ := newTestApp(t, nil, repo)

	rec := doRequest(f, http.MethodGet, "/api/v1/analyses?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var items []db.AnalysisSummary
	decodeResponse(t, rec, &items)

	if len(items) != 1 || items[0].ID != id || repo.limit != 5 {
		t.Fatalf("unexpected list %+v (limit %d)", items, repo.limit)
	}

	rec = doRequest(f, http.MethodGet, "/api/v1/analyses/"+id.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var got db.AnalysisRecord
	decodeResponse(t, rec, &got)

	if got.ID != id || got.Status != analysis.StatusReady {
		t.Fatalf("unexpected record %+v", got)
	}

	expectError(t, doRequest(f, http.MethodGet, "/api/v1/analyses?limit=zero", ""), http.StatusBadRequest, codeInvalidLimit)
	expectError(t, doRequest(f, http.MethodGet, "/api/v1/analyses/not-a-uuid", ""), http.StatusBadRequest, codeInvalidID)
	expectError(t, doRequest(f, http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), ""), http.StatusNotFound, codeNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	doRequest(f, http.MethodPost, "/api/v1/classify", `{"values": `+anemiaValues+`}`)

	rec := doRequest(f, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "labconsensus_biomarkers_unresolved_total 1") {
		t.Fatalf("expected unresolved counter in metrics output:\n%s", rec.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	f, _ := newTestApp(t, nil, nil)

	expectError(t, doRequest(f, http.MethodGet, "/api/v1/nothing", ""), http.StatusNotFound, codeNotFound)
}
