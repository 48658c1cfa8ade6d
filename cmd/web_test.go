// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/reasoning"
)

const testCase = `{
	"sex": "F",
	"symptoms": "fadiga",
	"values": [
		{"name": "Hemoglobina", "value": 9.8, "unit": "g/dL"},
		{"name": "Ferritina", "value": 8},
		{"name": "Ferro sérico", "value": 40}
	]
}`

const testCandidates = `[
	{"sourceId": "A", "name": "Anemia Ferropriva", "rank": 1, "confidence": 80},
	{"sourceId": "B", "name": "anemia ferropriva", "rank": 1, "confidence": 75},
	{"sourceId": "C", "name": "Deficiência de B12", "rank": 1, "confidence": 60}
]`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}

	return path
}

func TestBuildSourcesWithoutLLM(t *testing.T) {
	t.Parallel()

	sources, err := buildSources(engineOptions{})
	if err != nil {
		t.Fatalf("buildSources failed: %v", err)
	}

	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}

func TestBuildSourcesDefaultPersonas(t *testing.T) {
	t.Parallel()

	sources, err := buildSources(engineOptions{LLMURL: "http://localhost:11434", LLMModel: "llama3.1"})
	if err != nil {
		t.Fatalf("buildSources failed: %v", err)
	}

	if len(sources) != len(reasoning.DefaultPersonas()) {
		t.Fatalf("expected one source per persona, got %d", len(sources))
	}

	if sources[0].ID() != "conservative" {
		t.Fatalf("unexpected first source %q", sources[0].ID())
	}
}

func TestBuildSourcesPersonasFile(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "personas.yaml", `personas:
  - id: cautious
    name: Cautious
    role: Generalist
    temperature: 0.1
    system_prompt: Prefer common diagnoses.
`)

	sources, err := buildSources(engineOptions{LLMURL: "http://localhost:11434", LLMModel: "m", PersonasFile: path})
	if err != nil {
		t.Fatalf("buildSources failed: %v", err)
	}

	if len(sources) != 1 || sources[0].ID() != "cautious" {
		t.Fatalf("unexpected sources %v", sources)
	}

	if _, err := buildSources(engineOptions{LLMURL: "http://x", LLMModel: "m", PersonasFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected missing personas file to fail")
	}

	if _, err := buildSources(engineOptions{LLMURL: "http://x"}); !errors.Is(err, reasoning.ErrClientConfigIncomplete) {
		t.Fatalf("expected incomplete client config, got %v", err)
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg, err := engineConfig(engineOptions{TotalSources: 2, SourceTimeout: time.Second})
	if err != nil {
		t.Fatalf("engineConfig failed: %v", err)
	}

	if cfg.Consensus.TotalSources != 2 || cfg.SourceTimeout != time.Second || len(cfg.Sources) != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := engineConfig(engineOptions{TotalSources: -1}); !errors.Is(err, errInvalidTotalSources) {
		t.Fatalf("expected errInvalidTotalSources, got %v", err)
	}
}

func TestRunAnalyzeWithCandidates(t *testing.T) {
	t.Parallel()

	inputPath := writeTempFile(t, "case.json", testCase)
	candidatesPath := writeTempFile(t, "candidates.json", testCandidates)

	var out bytes.Buffer

	engine := analysis.NewEngine(analysis.Config{})
	if err := runAnalyze(context.Background(), engine, nil, &out, inputPath, candidatesPath); err != nil {
		t.Fatalf("runAnalyze failed: %v", err)
	}

	var report analysis.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if len(report.Diagnoses) != 2 || report.Diagnoses[0].CanonicalName != "anemia ferropriva" {
		t.Fatalf("unexpected diagnoses %+v", report.Diagnoses)
	}

	if report.Summary.Critical != 1 {
		t.Fatalf("expected female ranges to mark hemoglobin critical, got %+v", report.Summary)
	}
}

func TestRunAnalyzeFromStdin(t *testing.T) {
	t.Parallel()

	candidatesPath := writeTempFile(t, "candidates.json", testCandidates)

	var out bytes.Buffer

	engine := analysis.NewEngine(analysis.Config{})
	if err := runAnalyze(context.Background(), engine, strings.NewReader(testCase), &out, "-", candidatesPath); err != nil {
		t.Fatalf("runAnalyze failed: %v", err)
	}

	if !strings.Contains(out.String(), `"differentialDiagnosis"`) {
		t.Fatalf("unexpected output %s", out.String())
	}
}

func TestRunAnalyzeErrors(t *testing.T) {
	t.Parallel()

	engine := analysis.NewEngine(analysis.Config{})

	var out bytes.Buffer

	if err := runAnalyze(context.Background(), engine, nil, &out, "", ""); !errors.Is(err, errInputRequired) {
		t.Fatalf("expected errInputRequired, got %v", err)
	}

	inputPath := writeTempFile(t, "case.json", testCase)
	if err := runAnalyze(context.Background(), engine, nil, &out, inputPath, ""); !errors.Is(err, analysis.ErrNoSources) {
		t.Fatalf("expected ErrNoSources without an LLM, got %v", err)
	}

	broken := writeTempFile(t, "broken.json", `{"values": [`)
	if err := runAnalyze(context.Background(), engine, nil, &out, broken, ""); err == nil {
		t.Fatal("expected malformed input to fail")
	}
}

func TestPrintCatalog(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := printCatalog(&out, biomarker.DefaultCatalog(), "Thyroid"); err != nil {
		t.Fatalf("printCatalog failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("expected header line, got %q", lines[0])
	}

	want := len(biomarker.DefaultCatalog().ByCategory(biomarker.CategoryThyroid))
	if len(lines)-1 != want {
		t.Fatalf("expected %d rows, got %d", want, len(lines)-1)
	}

	if !strings.Contains(out.String(), "tsh") {
		t.Fatalf("expected tsh in output:\n%s", out.String())
	}

	if err := printCatalog(&out, biomarker.DefaultCatalog(), "astrology"); !errors.Is(err, errUnknownCategory) {
		t.Fatalf("expected errUnknownCategory, got %v", err)
	}
}
