package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoanghai1803/newsdesk/internal/models"
)

// ErrNotFound is returned when a usage-log row does not exist.
var ErrNotFound = errors.New("generation not found")

// RecordGeneration inserts one usage-log row and returns its ID.
func (s *Store) RecordGeneration(ctx context.Context, g *models.Generation) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO generations
			(request_id, endpoint, provider, model, status, error_kind,
			 duration_ms, input_tokens, output_tokens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.RequestID, g.Endpoint, g.Provider, g.Model, g.Status, g.ErrorKind,
		g.DurationMS, g.InputTokens, g.OutputTokens,
	)
	if err != nil {
		return 0, fmt.Errorf("recording generation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting generation id: %w", err)
	}
	return id, nil
}

const generationColumns = `id, request_id, endpoint, provider, model, status, error_kind,
	duration_ms, input_tokens, output_tokens, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (models.Generation, error) {
	var (
		g         models.Generation
		createdAt string
	)
	err := row.Scan(
		&g.ID, &g.RequestID, &g.Endpoint, &g.Provider, &g.Model, &g.Status,
		&g.ErrorKind, &g.DurationMS, &g.InputTokens, &g.OutputTokens, &createdAt,
	)
	g.CreatedAt = parseTime(createdAt)
	return g, err
}

// GetGeneration returns the usage-log row with the given ID.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetGeneration(ctx context.Context, id int64) (*models.Generation, error) {
	g, err := scanGeneration(s.db.QueryRowContext(ctx,
		`SELECT `+generationColumns+` FROM generations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting generation: %w", err)
	}
	return &g, nil
}

// RecentGenerations returns up to limit rows, newest first. An endpoint
// filter of "" matches every endpoint.
func (s *Store) RecentGenerations(ctx context.Context, endpoint string, limit int) ([]models.Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+generationColumns+`
		 FROM generations
		 WHERE (? = '' OR endpoint = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, endpoint, endpoint, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent generations: %w", err)
	}
	defer rows.Close()

	generations := []models.Generation{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning generation row: %w", err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generation rows: %w", err)
	}
	return generations, nil
}

// UsageByEndpoint aggregates the whole log per endpoint, busiest first.
// Any status of 400 or above counts as a failure.
func (s *Store) UsageByEndpoint(ctx context.Context) ([]models.EndpointUsage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT endpoint,
				COUNT(*),
				SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END),
				AVG(duration_ms),
				SUM(input_tokens),
				SUM(output_tokens)
		 FROM generations
		 GROUP BY endpoint
		 ORDER BY COUNT(*) DESC, endpoint`)
	if err != nil {
		return nil, fmt.Errorf("querying endpoint usage: %w", err)
	}
	defer rows.Close()

	usage := []models.EndpointUsage{}
	for rows.Next() {
		var u models.EndpointUsage
		if err := rows.Scan(&u.Endpoint, &u.Calls, &u.Failures, &u.AvgDurationMS, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scanning endpoint usage row: %w", err)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating endpoint usage rows: %w", err)
	}
	return usage, nil
}
