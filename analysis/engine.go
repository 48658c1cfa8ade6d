/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/humaidq/labconsensus/biomarker"
	"github.com/humaidq/labconsensus/consensus"
	"github.com/humaidq/labconsensus/correlation"
	"github.com/humaidq/labconsensus/logging"
	"github.com/humaidq/labconsensus/reasoning"
)

const defaultSourceTimeout = 90 * time.Second

var (
	logger = logging.Logger(logging.SourceEngine)

	errEmptyDifferential = errors.New("source returned an empty differential")
)

// Store persists analyses as they move through their lifecycle.
type Store interface {
	CreateAnalysis(ctx context.Context, id uuid.UUID, input Input) error
	CompleteAnalysis(ctx context.Context, report *Report) error
	FailAnalysis(ctx context.Context, id uuid.UUID, cause error) error
}

// Config wires an Engine. Nil catalog and registry fall back to the
// built-in ones. A zero Consensus.TotalSources takes the number of sources.
type Config struct {
	Catalog       *biomarker.Catalog
	Registry      *correlation.Registry
	Consensus     consensus.Config
	Sources       []reasoning.Source
	Store         Store
	SourceTimeout time.Duration
	Metrics       *Metrics
}

// Engine classifies lab values, detects patterns, consults reasoning
// sources and aggregates their answers.
type Engine struct {
	classifier *biomarker.Classifier
	registry   *correlation.Registry
	aggregator *consensus.Aggregator
	sources    []reasoning.Source
	store      Store
	timeout    time.Duration
	metrics    *Metrics
	now        func() time.Time
}

// NewEngine builds an engine from cfg.
func NewEngine(cfg Config) *Engine {
	registry := cfg.Registry
	if registry == nil {
		registry = correlation.DefaultRegistry()
	}

	consensusCfg := cfg.Consensus
	if consensusCfg.TotalSources <= 0 && len(cfg.Sources) > 0 {
		consensusCfg.TotalSources = len(cfg.Sources)
	}

	timeout := cfg.SourceTimeout
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	return &Engine{
		classifier: biomarker.NewClassifier(cfg.Catalog),
		registry:   registry,
		aggregator: consensus.NewAggregator(consensusCfg),
		sources:    cfg.Sources,
		store:      cfg.Store,
		timeout:    timeout,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Catalog returns the catalog the engine classifies against.
func (e *Engine) Catalog() *biomarker.Catalog {
	return e.classifier.Catalog()
}

// Aggregator returns the consensus aggregator.
func (e *Engine) Aggregator() *consensus.Aggregator {
	return e.aggregator
}

// SourceIDs lists the configured reasoning sources in call order.
func (e *Engine) SourceIDs() []string {
	ids := make([]string, 0, len(e.sources))
	for _, s := range e.sources {
		ids = append(ids, s.ID())
	}

	return ids
}

// Prepare classifies the input values and runs the pattern detectors.
func (e *Engine) Prepare(input Input) (biomarker.Batch, []correlation.Correlation) {
	batch := e.classifier.ClassifyAll(input.Values, input.sex())

	for _, r := range batch.Rejected {
		if errors.Is(r.Err, biomarker.ErrUnresolvedBiomarker) {
			e.metrics.UnresolvedBiomarker.Inc()
		}
	}

	ctx := input.Context
	ctx.Sex = input.sex()

	correlations := e.registry.Detect(batch.Markers, ctx)
	for _, c := range correlations {
		e.metrics.CorrelationsFound.WithLabelValues(string(c.Type)).Inc()
	}

	return batch, correlations
}

// Evaluate runs the deterministic path against candidates supplied by the
// caller. No source is consulted and nothing is persisted.
func (e *Engine) Evaluate(input Input, candidates []consensus.Candidate) (*Report, error) {
	start := e.now()

	batch, correlations := e.Prepare(input)

	result, err := e.aggregate(candidates)
	if err != nil {
		e.metrics.Analyses.WithLabelValues(string(StatusError)).Inc()
		return nil, err
	}

	report := e.buildReport(uuid.New(), batch, correlations, result, start)
	e.metrics.Analyses.WithLabelValues(string(report.Status)).Inc()

	return report, nil
}

// Analyze runs the full pipeline: classify, detect, consult every source
// concurrently, aggregate and persist. A failing source is recorded and
// skipped. The call fails only when no source produced anything.
func (e *Engine) Analyze(ctx context.Context, input Input) (*Report, error) {
	start := e.now()

	if len(e.sources) == 0 {
		return nil, ErrNoSources
	}

	if len(input.Values) == 0 && strings.TrimSpace(input.Symptoms) == "" {
		return nil, ErrNoValues
	}

	id := uuid.New()

	if e.store != nil {
		if err := e.store.CreateAnalysis(ctx, id, input); err != nil {
			return nil, fmt.Errorf("failed to create analysis: %w", err)
		}
	}

	batch, correlations := e.Prepare(input)

	cands, failures, timings := e.consult(ctx, input.toCase(batch.Markers, correlations))

	result, err := e.aggregate(cands)
	if err != nil {
		if errors.Is(err, consensus.ErrEmptyCandidateSet) {
			err = fmt.Errorf("%w: %d of %d sources failed: %w", ErrNoReasoningOutput, len(failures), len(e.sources), err)
		}

		e.fail(ctx, id, err)

		return nil, err
	}

	result.Metrics.ModelTimings = timings
	result.Metrics.TotalProcessingTimeMs = e.now().Sub(start).Milliseconds()

	report := e.buildReport(id, batch, correlations, result, start)
	report.SourceFailures = failures

	if e.store != nil {
		if err := e.store.CompleteAnalysis(ctx, report); err != nil {
			err = fmt.Errorf("failed to save analysis: %w", err)
			e.fail(ctx, id, err)

			return nil, err
		}
	}

	e.metrics.Analyses.WithLabelValues(string(report.Status)).Inc()

	logger.Info("analysis complete",
		"id", id,
		"status", report.Status,
		"markers", len(report.Markers),
		"correlations", len(report.Correlations),
		"diagnoses", len(report.Diagnoses),
		"source_failures", len(failures),
		"duration_ms", result.Metrics.TotalProcessingTimeMs,
	)

	return report, nil
}

type outcome struct {
	cands []consensus.Candidate
	err   error
	took  time.Duration
}

// consult calls every source concurrently and waits for all of them.
func (e *Engine) consult(ctx context.Context, c reasoning.Case) ([]consensus.Candidate, []SourceFailure, map[string]int64) {
	outcomes := make([]outcome, len(e.sources))

	var g errgroup.Group

	for i, src := range e.sources {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			began := time.Now()

			cands, err := src.Diagnose(sctx, c)
			if err == nil {
				cands, err = checkCandidates(src.ID(), cands)
			}

			outcomes[i] = outcome{cands: cands, err: err, took: time.Since(began)}

			return nil
		})
	}

	// Source errors are kept in outcomes so one failure does not cancel the rest.
	_ = g.Wait()

	var (
		cands    []consensus.Candidate
		failures []SourceFailure
		timings  = make(map[string]int64, len(e.sources))
	)

	for i, src := range e.sources {
		out := outcomes[i]
		timings[src.ID()] = out.took.Milliseconds()

		if out.err != nil {
			failures = append(failures, SourceFailure{
				SourceID:   src.ID(),
				Error:      out.err.Error(),
				DurationMs: out.took.Milliseconds(),
			})
			e.metrics.SourceFailures.WithLabelValues(src.ID()).Inc()
			logger.Warn("reasoning source failed", "source", src.ID(), "duration_ms", out.took.Milliseconds(), "error", out.err)

			continue
		}

		cands = append(cands, out.cands...)
	}

	return cands, failures, timings
}

// checkCandidates stamps the source id and rejects structurally bad output,
// so one broken source cannot refuse the whole aggregation.
func checkCandidates(sourceID string, cands []consensus.Candidate) ([]consensus.Candidate, error) {
	if len(cands) == 0 {
		return nil, errEmptyDifferential
	}

	out := make([]consensus.Candidate, len(cands))

	for i, c := range cands {
		c.SourceID = sourceID
		if err := consensus.Validate(c); err != nil {
			return nil, err
		}

		out[i] = c
	}

	return out, nil
}

func (e *Engine) aggregate(cands []consensus.Candidate) (consensus.Result, error) {
	timer := prometheus.NewTimer(e.metrics.AggregationSeconds)
	defer timer.ObserveDuration()

	return e.aggregator.Aggregate(cands)
}

func (e *Engine) fail(ctx context.Context, id uuid.UUID, cause error) {
	e.metrics.Analyses.WithLabelValues(string(StatusError)).Inc()
	logger.Error("analysis failed", "id", id, "error", cause)

	if e.store == nil {
		return
	}

	if err := e.store.FailAnalysis(ctx, id, cause); err != nil {
		logger.Error("failed to record analysis failure", "id", id, "error", err)
	}
}

func (e *Engine) buildReport(id uuid.UUID, batch biomarker.Batch, correlations []correlation.Correlation, result consensus.Result, start time.Time) *Report {
	status := StatusReady
	if result.LowConfidence {
		status = StatusInsufficientData
	}

	return &Report{
		ID:            id,
		Status:        status,
		Summary:       biomarker.Summarize(batch.Markers),
		Markers:       batch.Markers,
		Rejected:      batch.Rejected,
		Correlations:  correlations,
		Diagnoses:     result.Diagnoses,
		Metrics:       result.Metrics,
		LowConfidence: result.LowConfidence,
		Warnings:      result.Warnings,
		Disclaimer:    Disclaimer,
		CreatedAt:     start.UTC(),
	}
}
