package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/shopspring/decimal"
)

// SaveRun persists a run and its records atomically. Record order is
// preserved through the position column.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if run == nil {
		return fmt.Errorf("run is required")
	}
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source_file, created_at) VALUES (?, ?, ?)`,
		run.ID, run.SourceFile, run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_transactions (run_id, position, date, description, amount, category, confidence, reasoning)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range run.Records {
		if _, err := stmt.ExecContext(ctx, run.ID, i,
			r.Date, r.Description, r.Amount.String(), r.SuggestedCategory, string(r.Confidence), r.Reasoning); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun loads a run with its records in original order.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if id == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	run := &model.Run{ID: id}
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_file, created_at FROM runs WHERE id = ?`, id,
	).Scan(&run.SourceFile, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, description, amount, category, confidence, reasoning
		 FROM run_transactions WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.TransactionRecord
		var amount, confidence string
		if err := rows.Scan(&r.Date, &r.Description, &amount, &r.SuggestedCategory, &confidence, &r.Reasoning); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt amount %q for run %s: %w", amount, id, err)
		}
		r.Confidence = model.Confidence(confidence)
		run.Records = append(run.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return run, nil
}

// RunSummary is run metadata without the records themselves.
type RunSummary struct {
	CreatedAt        time.Time
	ID               string
	SourceFile       string
	TransactionCount int
}

// ListRuns returns run metadata, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.source_file, r.created_at, COUNT(t.run_id)
		 FROM runs r
		 LEFT JOIN run_transactions t ON t.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var createdAt string
		if err := rows.Scan(&run.ID, &run.SourceFile, &createdAt, &run.TransactionCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recently saved run with its records.
func (s *SQLiteStorage) LatestRun(ctx context.Context) (*model.Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// DeleteRun removes a run and its records.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("run ID is required")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrRunNotFound
	}

	// Foreign keys are not enforced by default in SQLite; clean up manually.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_transactions WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run transactions: %w", err)
	}
	return nil
}
