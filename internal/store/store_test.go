package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestSaveRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	rec := RunRecord{
		ID:        "2f8c7aa1-64f2-4f5e-b2cd-29a1f1a5f0ee",
		Request:   "add a blue marker at frame 100",
		Status:    RunStatusCompleted,
		PlanJSON:  []byte(`{"version":"1.0","operations":[{"op":"add_marker"}]}`),
		Succeeded: 1,
		Operations: []OperationRecord{
			{Index: 0, Op: "add_marker", Status: "ok", Result: []byte(`{"added":true}`)},
		},
	}

	runInsert := regexp.QuoteMeta(`
INSERT INTO runs (id, request, status, plan_json, decline_reason, suggestion, validation_error, succeeded, failed, not_attempted, dry_run, halted, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW())`)
	opInsert := regexp.QuoteMeta(`
INSERT INTO run_operations (run_id, idx, op, status, error_code, error_message, result)
VALUES ($1,$2,$3,$4,$5,$6,$7)`)

	mock.ExpectBegin()
	mock.ExpectExec(runInsert).
		WithArgs(rec.ID, rec.Request, rec.Status, rec.PlanJSON, "", "", "", 1, 0, 0, false, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(opInsert).
		WithArgs(rec.ID, 0, "add_marker", "ok", "", "", []byte(`{"added":true}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := st.SaveRun(context.Background(), rec); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveRunRollsBackOnOperationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	rec := RunRecord{
		ID:      "7e9a1f34-1111-4f5e-b2cd-29a1f1a5f0ee",
		Request: "do a thing",
		Status:  RunStatusFailed,
		Operations: []OperationRecord{
			{Index: 0, Op: "save_project", Status: "failed", ErrorCode: "PYTHON_ERROR", ErrorMessage: "bridge died"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO runs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO run_operations").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	if err := st.SaveRun(context.Background(), rec); err == nil {
		t.Fatalf("expected SaveRun to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	now := time.Now()
	id := "2f8c7aa1-64f2-4f5e-b2cd-29a1f1a5f0ee"

	runQuery := regexp.QuoteMeta(`
SELECT id, request, status, plan_json, decline_reason, suggestion, validation_error, succeeded, failed, not_attempted, dry_run, halted, created_at
FROM runs
WHERE id=$1`)
	opsQuery := regexp.QuoteMeta(`
SELECT idx, op, status, error_code, error_message, result
FROM run_operations
WHERE run_id=$1
ORDER BY idx`)

	mock.ExpectQuery(runQuery).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request", "status", "plan_json", "decline_reason", "suggestion", "validation_error", "succeeded", "failed", "not_attempted", "dry_run", "halted", "created_at"}).
			AddRow(id, "add a marker", RunStatusPartial, []byte(`{"version":"1.0"}`), "", "", "", 1, 1, 0, false, false, now))
	mock.ExpectQuery(opsQuery).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"idx", "op", "status", "error_code", "error_message", "result"}).
			AddRow(0, "add_marker", "ok", "", "", []byte(`{"added":true}`)).
			AddRow(1, "save_project", "failed", "NO_PROJECT", "no project is open", nil))

	rec, found, err := st.GetRun(context.Background(), id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !found {
		t.Fatalf("expected run to be found")
	}
	if len(rec.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(rec.Operations))
	}
	if rec.Operations[1].ErrorCode != "NO_PROJECT" {
		t.Fatalf("unexpected second operation: %+v", rec.Operations[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetRunMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	mock.ExpectQuery("SELECT id, request, status").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, found, err := st.GetRun(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if found {
		t.Fatalf("expected run to be absent")
	}
}

func TestListRuns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	st := &Store{DB: db}
	now := time.Now()
	query := regexp.QuoteMeta(`
SELECT id, request, status, succeeded, failed, created_at
FROM runs
ORDER BY created_at DESC
LIMIT $1`)
	mock.ExpectQuery(query).WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request", "status", "succeeded", "failed", "created_at"}).
			AddRow("a", "first", RunStatusCompleted, 2, 0, now).
			AddRow("b", "second", RunStatusDeclined, 0, 0, now))

	runs, err := st.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "a" || runs[1].Status != RunStatusDeclined {
		t.Fatalf("unexpected listing: %+v", runs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
