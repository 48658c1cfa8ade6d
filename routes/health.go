/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/humaidq/labconsensus/analysis"
)

type healthResponse struct {
	Status     string   `json:"status"`
	Biomarkers int      `json:"biomarkers"`
	Sources    []string `json:"sources"`
}

// Healthz reports liveness along with the loaded catalog and sources.
func Healthz(c flamego.Context, engine *analysis.Engine) {
	writeJSON(c, http.StatusOK, healthResponse{
		Status:     "ok",
		Biomarkers: engine.Catalog().Len(),
		Sources:    engine.SourceIDs(),
	})
}

// Metrics exposes the Prometheus registry.
func Metrics(c flamego.Context, gatherer prometheus.Gatherer) {
	promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP(c.ResponseWriter(), c.Request().Request)
}
