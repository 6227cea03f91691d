package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteUsageRepo implements UsageRepo over SQLite.
type SQLiteUsageRepo struct {
	db db.DBTX
}

// NewSQLiteUsageRepo creates a UsageRepo bound to the given connection or
// transaction.
func NewSQLiteUsageRepo(dbtx db.DBTX) *SQLiteUsageRepo {
	return &SQLiteUsageRepo{db: dbtx}
}

func (r *SQLiteUsageRepo) ListByUser(ctx context.Context, userID string) ([]domain.UsageRecord, error) {
	query := `SELECT user_id, exercise_id, last_used_day
		FROM usage_records WHERE user_id = ? ORDER BY exercise_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing usage records: %w", err)
	}
	defer rows.Close()

	var records []domain.UsageRecord
	for rows.Next() {
		var rec domain.UsageRecord
		if err := rows.Scan(&rec.UserID, &rec.ExerciseID, &rec.LastUsedDay); err != nil {
			return nil, fmt.Errorf("scanning usage record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage records: %w", err)
	}
	return records, nil
}

func (r *SQLiteUsageRepo) UpsertBatch(ctx context.Context, records []domain.UsageRecord) error {
	query := `INSERT INTO usage_records (user_id, exercise_id, last_used_day, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, exercise_id) DO UPDATE SET
			last_used_day = excluded.last_used_day,
			updated_at = excluded.updated_at`
	now := nowUTC()
	for _, rec := range records {
		if _, err := r.db.ExecContext(ctx, query, rec.UserID, rec.ExerciseID, rec.LastUsedDay, now); err != nil {
			return fmt.Errorf("upserting usage record %s/%s: %w", rec.UserID, rec.ExerciseID, err)
		}
	}
	return nil
}
