/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package correlation

import (
	"slices"
	"sort"
	"sync"

	"github.com/humaidq/labconsensus/biomarker"
)

// DetectFunc inspects indexed markers and returns a correlation, or nil when
// its pattern is absent.
type DetectFunc func(m Markers, ctx Context) *Correlation

// Rule is one named detector with the number of contributing markers it must
// report.
type Rule struct {
	Name       string
	MinMarkers int
	Detect     DetectFunc
}

// Module groups the rules of one clinical category.
type Module struct {
	Category biomarker.Category
	Rules    []Rule
}

// RunAll runs every rule of the module. Results listing fewer markers than
// their rule requires are discarded.
func (mod Module) RunAll(markers []biomarker.Extracted, ctx Context) []Correlation {
	return mod.run(NewMarkers(markers), ctx)
}

func (mod Module) run(indexed Markers, ctx Context) []Correlation {
	var out []Correlation

	for _, rule := range mod.Rules {
		c := rule.Detect(indexed, ctx)
		if c == nil {
			continue
		}

		if len(c.Markers) < max(rule.MinMarkers, 1) {
			continue
		}

		c.Rule = rule.Name
		out = append(out, *c)
	}

	return out
}

// Registry holds the pattern modules used by Detect.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
}

// NewRegistry returns a registry with the given modules.
func NewRegistry(modules ...Module) *Registry {
	return &Registry{modules: slices.Clone(modules)}
}

// DefaultRegistry returns a registry with every built-in module.
func DefaultRegistry() *Registry {
	return NewRegistry(
		MetabolicModule(),
		HematologicModule(),
		ThyroidModule(),
		LiverModule(),
		KidneyModule(),
		InflammatoryModule(),
	)
}

// Register appends a module. Modules run in registration order.
func (r *Registry) Register(mod Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules = append(r.modules, mod)
}

// Modules returns the registered modules.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.modules)
}

// Detect runs every module and returns the correlations ordered by
// confidence (high, medium, low). Order within a confidence level follows
// module and rule registration order.
func (r *Registry) Detect(markers []biomarker.Extracted, ctx Context) []Correlation {
	indexed := NewMarkers(markers)

	var out []Correlation

	for _, mod := range r.Modules() {
		out = append(out, mod.run(indexed, ctx)...)
	}

	SortByConfidence(out)

	return out
}

// SortByConfidence stable-sorts correlations from high to low confidence.
func SortByConfidence(cs []Correlation) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Confidence.order() < cs[j].Confidence.order()
	})
}

// FilterByType returns the correlations with the given type.
func FilterByType(cs []Correlation, t PatternType) []Correlation {
	var out []Correlation

	for _, c := range cs {
		if c.Type == t {
			out = append(out, c)
		}
	}

	return out
}

// HighConfidence returns the high-confidence correlations.
func HighConfidence(cs []Correlation) []Correlation {
	var out []Correlation

	for _, c := range cs {
		if c.Confidence == ConfidenceHigh {
			out = append(out, c)
		}
	}

	return out
}
