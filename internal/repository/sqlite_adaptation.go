package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteAdaptationRepo implements AdaptationRepo over SQLite.
type SQLiteAdaptationRepo struct {
	db db.DBTX
}

// NewSQLiteAdaptationRepo creates an AdaptationRepo bound to the given
// connection or transaction.
func NewSQLiteAdaptationRepo(dbtx db.DBTX) *SQLiteAdaptationRepo {
	return &SQLiteAdaptationRepo{db: dbtx}
}

func (r *SQLiteAdaptationRepo) Create(ctx context.Context, rec *domain.AdaptationRecord) error {
	var params any
	if rec.Params != nil {
		data, err := json.Marshal(rec.Params)
		if err != nil {
			return fmt.Errorf("marshaling adaptation params: %w", err)
		}
		params = string(data)
	}
	query := `INSERT INTO adaptation_records
		(id, plan_id, user_id, intent, category, params, snapshot_before, applied_at, is_rolled_back, is_invalidated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.PlanID, rec.UserID, string(rec.Intent), string(rec.Category),
		params, rec.SnapshotBefore, rec.AppliedAt.UTC().Format(time.RFC3339),
		boolToInt(rec.IsRolledBack), boolToInt(rec.IsInvalidated),
	)
	if err != nil {
		return fmt.Errorf("inserting adaptation record: %w", err)
	}
	return nil
}

func (r *SQLiteAdaptationRepo) GetByID(ctx context.Context, id string) (*domain.AdaptationRecord, error) {
	query := `SELECT id, plan_id, user_id, intent, category, params, snapshot_before, applied_at, is_rolled_back, is_invalidated
		FROM adaptation_records WHERE id = ?`
	return r.scanRecord(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteAdaptationRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.AdaptationRecord, error) {
	query := `SELECT id, plan_id, user_id, intent, category, params, snapshot_before, applied_at, is_rolled_back, is_invalidated
		FROM adaptation_records WHERE plan_id = ? ORDER BY applied_at, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing adaptation records: %w", err)
	}
	defer rows.Close()

	var records []*domain.AdaptationRecord
	for rows.Next() {
		rec, err := r.scanRecordRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating adaptation records: %w", err)
	}
	return records, nil
}

// MarkRolledBack flips is_rolled_back in a single guarded UPDATE so two
// concurrent rollbacks cannot both succeed.
func (r *SQLiteAdaptationRepo) MarkRolledBack(ctx context.Context, id string) error {
	query := `UPDATE adaptation_records SET is_rolled_back = 1
		WHERE id = ? AND is_rolled_back = 0`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("marking adaptation rolled back: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rollback update: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("adaptation %s: %w", id, ErrAlreadyRolledBack)
	}
	return nil
}

func (r *SQLiteAdaptationRepo) MarkInvalidated(ctx context.Context, id string) error {
	query := `UPDATE adaptation_records SET is_invalidated = 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("invalidating adaptation record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking invalidation update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("adaptation %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteAdaptationRepo) scanRecord(row *sql.Row) (*domain.AdaptationRecord, error) {
	rec, err := scanAdaptation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("adaptation record: %w", ErrNotFound)
	}
	return rec, err
}

func (r *SQLiteAdaptationRepo) scanRecordRows(rows *sql.Rows) (*domain.AdaptationRecord, error) {
	return scanAdaptation(rows)
}

func scanAdaptation(s rowScanner) (*domain.AdaptationRecord, error) {
	var rec domain.AdaptationRecord
	var intent, category, appliedAt string
	var params sql.NullString
	var rolledBack, invalidated int

	err := s.Scan(&rec.ID, &rec.PlanID, &rec.UserID, &intent, &category,
		&params, &rec.SnapshotBefore, &appliedAt, &rolledBack, &invalidated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning adaptation record: %w", err)
	}

	rec.Intent = domain.AdaptationIntent(intent)
	rec.Category = domain.AdaptationCategory(category)
	rec.IsRolledBack = intToBool(rolledBack)
	rec.IsInvalidated = intToBool(invalidated)
	if t, err := time.Parse(time.RFC3339, appliedAt); err == nil {
		rec.AppliedAt = t
	}
	if params.Valid && params.String != "" {
		if err := json.Unmarshal([]byte(params.String), &rec.Params); err != nil {
			return nil, fmt.Errorf("unmarshaling adaptation params: %w", err)
		}
	}
	return &rec, nil
}
