/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package consensus

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/humaidq/labconsensus/utils"
)

const scoreEpsilon = 1e-9

// Config tunes the aggregator.
type Config struct {
	// TotalSources is the number of reasoning sources the run was planned
	// with. It decides when agreement counts as strong.
	TotalSources int `json:"totalSources" yaml:"total_sources"`
	// TopN caps the reported diagnoses.
	TopN int `json:"topN" yaml:"top_n"`
	// MaxRank is the last rank that still scores.
	MaxRank int `json:"maxRank" yaml:"max_rank"`
	// MinReportConfidence flags results whose best diagnosis is below it.
	MinReportConfidence int `json:"minReportConfidence" yaml:"min_report_confidence"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		TotalSources:        3,
		TopN:                5,
		MaxRank:             10,
		MinReportConfidence: 50,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.TotalSources <= 0 {
		c.TotalSources = def.TotalSources
	}

	if c.TopN <= 0 {
		c.TopN = def.TopN
	}

	if c.MaxRank <= 0 {
		c.MaxRank = def.MaxRank
	}

	if c.MinReportConfidence < 0 {
		c.MinReportConfidence = def.MinReportConfidence
	}

	return c
}

// Aggregator reduces ranked candidates into a consensus ranking. It holds no
// mutable state and is safe for concurrent use.
type Aggregator struct {
	cfg Config
	now func() time.Time
}

// NewAggregator returns an aggregator. Zero fields of cfg take their default.
func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg.withDefaults(), now: time.Now}
}

// Config returns the effective configuration.
func (a *Aggregator) Config() Config {
	return a.cfg
}

// RankScore is 1/rank for ranks 1..maxRank and 0 otherwise.
func RankScore(rank, maxRank int) float64 {
	if rank < 1 || rank > maxRank {
		return 0
	}

	return 1 / float64(rank)
}

// ConsensusLevelFor classifies agreement from the number of sources n that
// proposed a diagnosis, the spread between their best and worst rank, and
// the number of sources the run was planned with. Strong requires exactly the
// planned number; more proposing sources than planned is at most moderate.
func ConsensusLevelFor(n, spread, totalSources int) Level {
	if n <= 1 {
		return LevelSingle
	}

	if totalSources < 3 {
		switch {
		case spread == 0:
			return LevelStrong
		case spread <= 1:
			return LevelModerate
		default:
			return LevelDivergent
		}
	}

	switch {
	case n == totalSources && spread <= 1:
		return LevelStrong
	case spread <= 1:
		return LevelModerate
	case spread > 2:
		return LevelDivergent
	default:
		return LevelWeak
	}
}

var levelMultipliers = map[Level]float64{
	LevelStrong:    1.15,
	LevelModerate:  1.05,
	LevelWeak:      0.95,
	LevelSingle:    0.8,
	LevelDivergent: 0.7,
}

// CalibrateConfidence scales an average confidence by the level multiplier,
// rounds half up and clamps to [0, 99].
func CalibrateConfidence(avg float64, level Level) int {
	mult, ok := levelMultipliers[level]
	if !ok {
		mult = 1
	}

	v := math.Floor(avg*mult + 0.5)

	return int(math.Max(0, math.Min(99, v)))
}

type bucket struct {
	canonical     string
	display       string
	code          string
	details       map[string]SourceDetail
	supporting    []string
	contradicting []string
	tests         []string
}

// Validate checks a candidate for structural problems. Rank is not checked
// here; out-of-range ranks are reported as warnings by Aggregate.
func Validate(c Candidate) error {
	switch {
	case strings.TrimSpace(c.SourceID) == "":
		return fmt.Errorf("%w: empty source id", ErrMalformedCandidate)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: empty name from %s", ErrMalformedCandidate, c.SourceID)
	case math.IsNaN(c.Confidence) || math.IsInf(c.Confidence, 0):
		return fmt.Errorf("%w: confidence is not a number for %q", ErrMalformedCandidate, c.Name)
	case c.Confidence < 0 || c.Confidence > 100:
		return fmt.Errorf("%w: confidence %v out of 0-100 for %q", ErrMalformedCandidate, c.Confidence, c.Name)
	}

	return nil
}

// Aggregate groups candidates by normalized name, scores each group by
// reciprocal rank, keeps the top groups and calibrates their confidence by
// how well the sources agree.
func (a *Aggregator) Aggregate(cands []Candidate) (Result, error) {
	start := a.now()

	if len(cands) == 0 {
		return Result{}, ErrEmptyCandidateSet
	}

	for i, c := range cands {
		if err := Validate(c); err != nil {
			return Result{}, fmt.Errorf("candidate %d: %w", i, err)
		}
	}

	var (
		warnings   []Warning
		modelsUsed []string
		seenModels = make(map[string]struct{})
		buckets    = make(map[string]*bucket)
		keys       []string
	)

	for _, c := range cands {
		sourceID := strings.TrimSpace(c.SourceID)
		if _, ok := seenModels[sourceID]; !ok {
			seenModels[sourceID] = struct{}{}
			modelsUsed = append(modelsUsed, sourceID)
		}

		if RankScore(c.Rank, a.cfg.MaxRank) == 0 {
			warnings = append(warnings, Warning{
				Kind:     WarningInvalidCandidateRank,
				SourceID: sourceID,
				Name:     c.Name,
				Detail:   fmt.Sprintf("rank %d outside 1-%d", c.Rank, a.cfg.MaxRank),
			})

			continue
		}

		key := NormalizeName(c.Name)

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				canonical: key,
				display:   strings.TrimSpace(c.Name),
				details:   make(map[string]SourceDetail),
			}
			buckets[key] = b
			keys = append(keys, key)
		}

		if b.code == "" {
			b.code = strings.TrimSpace(c.Code)
		}

		// A source naming the same diagnosis twice counts once, at its best rank.
		if prev, ok := b.details[sourceID]; !ok || c.Rank < prev.Rank {
			b.details[sourceID] = SourceDetail{
				Rank:       c.Rank,
				Confidence: c.Confidence,
				Reasoning:  strings.TrimSpace(c.Reasoning),
			}
		}

		b.supporting = append(b.supporting, c.SupportingEvidence...)
		b.contradicting = append(b.contradicting, c.ContradictingEvidence...)
		b.tests = append(b.tests, c.SuggestedTests...)
	}

	if len(buckets) == 0 {
		return Result{}, fmt.Errorf("%w: all %d candidates had ranks outside 1-%d", ErrEmptyCandidateSet, len(cands), a.cfg.MaxRank)
	}

	diagnoses := make([]Diagnosis, 0, len(keys))
	for _, key := range keys {
		diagnoses = append(diagnoses, a.finalize(buckets[key]))
	}

	sort.SliceStable(diagnoses, func(i, j int) bool {
		di, dj := diagnoses[i].AggregateScore, diagnoses[j].AggregateScore
		if math.Abs(di-dj) > scoreEpsilon {
			return di > dj
		}

		return diagnoses[i].CanonicalName < diagnoses[j].CanonicalName
	})

	if len(diagnoses) > a.cfg.TopN {
		diagnoses = diagnoses[:a.cfg.TopN]
	}

	metrics := computeMetrics(diagnoses, modelsUsed)
	metrics.TotalProcessingTimeMs = a.now().Sub(start).Milliseconds()

	return Result{
		Diagnoses:     diagnoses,
		Metrics:       metrics,
		Warnings:      warnings,
		LowConfidence: diagnoses[0].Confidence < a.cfg.MinReportConfidence,
	}, nil
}

func (a *Aggregator) finalize(b *bucket) Diagnosis {
	score := 0.0
	confidenceSum := 0.0
	minRank, maxRank := math.MaxInt, 0

	for _, d := range b.details {
		score += RankScore(d.Rank, a.cfg.MaxRank)
		confidenceSum += d.Confidence
		minRank = min(minRank, d.Rank)
		maxRank = max(maxRank, d.Rank)
	}

	n := len(b.details)
	level := ConsensusLevelFor(n, maxRank-minRank, a.cfg.TotalSources)

	return Diagnosis{
		CanonicalName:         b.canonical,
		Name:                  b.display,
		Code:                  b.code,
		Confidence:            CalibrateConfidence(confidenceSum/float64(n), level),
		SupportingEvidence:    utils.DedupeStrings(b.supporting),
		ContradictingEvidence: utils.DedupeStrings(b.contradicting),
		SuggestedTests:        utils.DedupeStrings(b.tests),
		AggregateScore:        score,
		ConsensusLevel:        level,
		SourceDetails:         b.details,
	}
}

func computeMetrics(diagnoses []Diagnosis, modelsUsed []string) Metrics {
	m := Metrics{ModelsUsed: modelsUsed}

	strong := 0

	for _, d := range diagnoses {
		switch d.ConsensusLevel {
		case LevelStrong:
			strong++
		case LevelModerate:
			m.ModerateConsensusCount++
		case LevelDivergent:
			m.DivergentCount++
			m.DivergentDiagnoses = append(m.DivergentDiagnoses, d.Name)
		}
	}

	if len(diagnoses) > 0 {
		m.StrongConsensusRate = int(math.Floor(float64(strong)/float64(len(diagnoses))*100 + 0.5))
	}

	return m
}
