/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"

	"github.com/flamego/flamego"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/humaidq/labconsensus/analysis"
	"github.com/humaidq/labconsensus/db"
)

// AnalysisRepository reads stored analyses.
type AnalysisRepository interface {
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, limit int) ([]db.AnalysisSummary, error)
}

// Options wires the HTTP API.
type Options struct {
	Engine *analysis.Engine
	// Analyses may be nil when no database is configured. The read
	// endpoints then answer 503.
	Analyses AnalysisRepository
	// Gatherer backs /metrics. Nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer
}

type noAnalyses struct{}

func (noAnalyses) GetAnalysis(context.Context, uuid.UUID) (*db.AnalysisRecord, error) {
	return nil, errStorageDisabled
}

func (noAnalyses) ListAnalyses(context.Context, int) ([]db.AnalysisSummary, error) {
	return nil, errStorageDisabled
}

// New builds the flamego instance serving the JSON API.
func New(opts Options) *flamego.Flame {
	if opts.Engine == nil {
		opts.Engine = analysis.NewEngine(analysis.Config{})
	}

	var repo AnalysisRepository = noAnalyses{}
	if opts.Analyses != nil {
		repo = opts.Analyses
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(RequestLogger)

	f.Map(opts.Engine)
	f.MapTo(repo, (*AnalysisRepository)(nil))
	f.MapTo(gatherer, (*prometheus.Gatherer)(nil))

	f.Get("/healthz", Healthz)
	f.Get("/metrics", Metrics)

	f.Group("/api/v1", func() {
		f.Get("/categories", ListCategories)
		f.Get("/biomarkers", ListBiomarkers)
		f.Get("/biomarkers/lookup", LookupBiomarker)

		f.Post("/classify", Classify)
		f.Post("/correlations", DetectCorrelations)
		f.Post("/consensus", AggregateConsensus)
		f.Post("/evaluate", Evaluate)

		f.Post("/analyses", CreateAnalysis)
		f.Get("/analyses", ListAnalyses)
		f.Get("/analyses/{id}", GetAnalysis)
	})

	f.NotFound(func(c flamego.Context) {
		writeError(c, 404, codeNotFound, "route not found")
	})

	return f
}
