// Package store persists run history: every interpreted request, the plan
// or decline it produced, and the per-operation outcomes of dispatch.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/decocereus/magic-agent/config"
)

// Run statuses persisted with each record.
const (
	RunStatusCompleted = "completed"
	RunStatusPartial   = "partial"
	RunStatusDeclined  = "declined"
	RunStatusRejected  = "rejected"
	RunStatusFailed    = "failed"
)

// RunRecord is one interpreted request and its outcome.
type RunRecord struct {
	ID              string
	Request         string
	Status          string
	PlanJSON        []byte
	DeclineReason   string
	Suggestion      string
	ValidationError string
	Succeeded       int
	Failed          int
	NotAttempted    int
	DryRun          bool
	Halted          bool
	CreatedAt       time.Time
	Operations      []OperationRecord
}

// OperationRecord is one dispatched operation within a run.
type OperationRecord struct {
	Index        int
	Op           string
	Status       string
	ErrorCode    string
	ErrorMessage string
	Result       []byte
}

// RunSummary is the listing shape: a run without its operations.
type RunSummary struct {
	ID        string
	Request   string
	Status    string
	Succeeded int
	Failed    int
	CreatedAt time.Time
}

type Store struct {
	DB *sql.DB
}

// NewRunID mints an identifier for a run.
func NewRunID() string { return uuid.NewString() }

// New opens a store from configuration and verifies connectivity.
func New(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, errors.New("postgres storage is not configured")
	}
	return NewWithDSN(ctx, cfg.DSN())
}

// NewWithDSN constructs the Store using an explicit Postgres DSN.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error { return s.DB.Close() }

// SaveRun inserts the run and its operations in one transaction.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, request, status, plan_json, decline_reason, suggestion, validation_error, succeeded, failed, not_attempted, dry_run, halted, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW())`,
		rec.ID, rec.Request, rec.Status, nullBytes(rec.PlanJSON), rec.DeclineReason, rec.Suggestion,
		rec.ValidationError, rec.Succeeded, rec.Failed, rec.NotAttempted, rec.DryRun, rec.Halted)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, op := range rec.Operations {
		_, err = tx.ExecContext(ctx, `
INSERT INTO run_operations (run_id, idx, op, status, error_code, error_message, result)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			rec.ID, op.Index, op.Op, op.Status, op.ErrorCode, op.ErrorMessage, nullBytes(op.Result))
		if err != nil {
			return fmt.Errorf("insert run operation %d: %w", op.Index, err)
		}
	}
	return tx.Commit()
}

// GetRun loads one run with its operations. The second result is false when
// the run does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (RunRecord, bool, error) {
	var rec RunRecord
	var planJSON []byte
	err := s.DB.QueryRowContext(ctx, `
SELECT id, request, status, plan_json, decline_reason, suggestion, validation_error, succeeded, failed, not_attempted, dry_run, halted, created_at
FROM runs
WHERE id=$1`, id).Scan(
		&rec.ID, &rec.Request, &rec.Status, &planJSON, &rec.DeclineReason, &rec.Suggestion,
		&rec.ValidationError, &rec.Succeeded, &rec.Failed, &rec.NotAttempted, &rec.DryRun, &rec.Halted, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, false, nil
	}
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("select run: %w", err)
	}
	rec.PlanJSON = planJSON

	rows, err := s.DB.QueryContext(ctx, `
SELECT idx, op, status, error_code, error_message, result
FROM run_operations
WHERE run_id=$1
ORDER BY idx`, id)
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("select run operations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var op OperationRecord
		var result []byte
		if err := rows.Scan(&op.Index, &op.Op, &op.Status, &op.ErrorCode, &op.ErrorMessage, &result); err != nil {
			return RunRecord{}, false, err
		}
		op.Result = result
		rec.Operations = append(rec.Operations, op)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, false, err
	}
	return rec, true, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, request, status, succeeded, failed, created_at
FROM runs
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Request, &r.Status, &r.Succeeded, &r.Failed, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
