package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"plan-my-meal/internal/shared"
)

// ExecutionMetric records metadata for a single generation call.
type ExecutionMetric struct {
	Operation        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO execution_metrics (operation, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Operation, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution metric: %w", err)
	}
	return nil
}

// RecordMeta records a metric directly from shared.CallMeta. Calls that
// consumed no tokens (e.g. fully mocked runs) are skipped.
func (s *Store) RecordMeta(ctx context.Context, meta shared.CallMeta) error {
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 {
		return nil
	}
	return s.Record(ctx, ExecutionMetric{
		Operation:        meta.Operation,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
	})
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecutions int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.QueryContext(ctx,
		`SELECT date(timestamp) AS day,
		        SUM(prompt_tokens),
		        SUM(completion_tokens),
		        COUNT(*)
		 FROM execution_metrics
		 WHERE timestamp >= ?
		 GROUP BY day
		 ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var usage []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.TotalExecutions); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage row: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// Cleanup removes metric records older than the retention window and
// returns the number of rows deleted.
func (s *Store) Cleanup(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	result, err := s.db.ExecContext(ctx, `DELETE FROM execution_metrics WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up metrics: %w", err)
	}
	return result.RowsAffected()
}
