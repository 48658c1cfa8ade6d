/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/humaidq/labconsensus/analysis"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// AnalysisRecord is a stored analysis with its input and, once finished,
// its report or failure.
type AnalysisRecord struct {
	ID          uuid.UUID        `json:"id"`
	Status      analysis.Status  `json:"status"`
	Input       analysis.Input   `json:"input"`
	Report      *analysis.Report `json:"report,omitempty"`
	Error       *string          `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

// AnalysisSummary is a list row.
type AnalysisSummary struct {
	ID           uuid.UUID       `json:"id"`
	Status       analysis.Status `json:"status"`
	TopDiagnosis *string         `json:"topDiagnosis,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// AnalysisStore persists analyses in PostgreSQL.
type AnalysisStore struct {
	pool *pgxpool.Pool
}

// NewAnalysisStore returns a store on p, or on the package pool when p is nil.
func NewAnalysisStore(p *pgxpool.Pool) *AnalysisStore {
	if p == nil {
		p = pool
	}

	return &AnalysisStore{pool: p}
}

// CreateAnalysis records a pending analysis.
func (s *AnalysisStore) CreateAnalysis(ctx context.Context, id uuid.UUID, input analysis.Input) error {
	if s.pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode analysis input: %w", err)
	}

	query := `
		INSERT INTO analyses (id, status, input)
		VALUES ($1, $2, $3)
	`

	if _, err := s.pool.Exec(ctx, query, id.String(), string(analysis.StatusPending), payload); err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

// CompleteAnalysis stores the report and its final status.
func (s *AnalysisStore) CompleteAnalysis(ctx context.Context, report *analysis.Report) error {
	if s.pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode analysis report: %w", err)
	}

	query := `
		UPDATE analyses
		SET status = $2, report = $3, error = NULL, completed_at = now()
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, report.ID.String(), string(report.Status), payload)
	if err != nil {
		return fmt.Errorf("failed to complete analysis: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAnalysisNotFound
	}

	return nil
}

// FailAnalysis marks an analysis as failed with the cause.
func (s *AnalysisStore) FailAnalysis(ctx context.Context, id uuid.UUID, cause error) error {
	if s.pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	query := `
		UPDATE analyses
		SET status = $2, error = $3, completed_at = now()
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, id.String(), string(analysis.StatusError), msg)
	if err != nil {
		return fmt.Errorf("failed to mark analysis failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAnalysisNotFound
	}

	return nil
}

// GetAnalysis returns one analysis by id.
func (s *AnalysisStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	if s.pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id::text, status, input, report, error, created_at, completed_at
		FROM analyses
		WHERE id = $1
	`

	var (
		rec          AnalysisRecord
		rawID        string
		status       string
		input, reprt []byte
	)

	err := s.pool.QueryRow(ctx, query, id.String()).Scan(
		&rawID, &status, &input, &reprt, &rec.Error, &rec.CreatedAt, &rec.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}

		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	rec.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis id: %w", err)
	}

	rec.Status = analysis.Status(status)

	if err := json.Unmarshal(input, &rec.Input); err != nil {
		return nil, fmt.Errorf("failed to decode analysis input: %w", err)
	}

	if len(reprt) > 0 {
		rec.Report = &analysis.Report{}
		if err := json.Unmarshal(reprt, rec.Report); err != nil {
			return nil, fmt.Errorf("failed to decode analysis report: %w", err)
		}
	}

	return &rec, nil
}

// ListAnalyses returns the most recent analyses first. A non-positive limit
// uses the default page size.
func (s *AnalysisStore) ListAnalyses(ctx context.Context, limit int) ([]AnalysisSummary, error) {
	if s.pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = defaultListLimit
	}

	limit = min(limit, maxListLimit)

	query := `
		SELECT id::text, status, report->'differentialDiagnosis'->0->>'name', created_at, completed_at
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisSummary

	for rows.Next() {
		var (
			sum    AnalysisSummary
			rawID  string
			status string
		)

		if err := rows.Scan(&rawID, &status, &sum.TopDiagnosis, &sum.CreatedAt, &sum.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		sum.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse analysis id: %w", err)
		}

		sum.Status = analysis.Status(status)
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return out, nil
}
