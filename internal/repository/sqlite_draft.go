package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteDraftRepo implements DraftRepo over SQLite. A draft and its steps
// are written together; callers wanting atomicity with other writes pass a
// transaction-scoped DBTX.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a DraftRepo bound to the given connection or
// transaction.
func NewSQLiteDraftRepo(dbtx db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: dbtx}
}

func (r *SQLiteDraftRepo) Create(ctx context.Context, d *domain.Draft) error {
	query := `INSERT INTO drafts (id, user_id, duration, focus, load, total_days, total_steps, is_valid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.UserID, string(d.Duration), string(d.Focus), string(d.Load),
		d.TotalDays, d.TotalSteps, boolToInt(d.IsValid),
		d.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting draft: %w", err)
	}

	stepQuery := `INSERT INTO draft_steps (draft_id, day_number, slot_index, slot_type, exercise_id, time_slot, category, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, s := range d.Steps {
		if _, err := r.db.ExecContext(ctx, stepQuery,
			d.ID, s.DayNumber, s.SlotIndex, string(s.SlotType),
			s.ExerciseID, string(s.TimeSlot), string(s.Category), s.Difficulty,
		); err != nil {
			return fmt.Errorf("inserting draft step %d/%d: %w", s.DayNumber, s.SlotIndex, err)
		}
	}
	return nil
}

func (r *SQLiteDraftRepo) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := `SELECT id, user_id, duration, focus, load, total_days, total_steps, is_valid, created_at
		FROM drafts WHERE id = ?`
	draft, err := r.scanDraft(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSteps(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *SQLiteDraftRepo) GetLatestByUser(ctx context.Context, userID string) (*domain.Draft, error) {
	query := `SELECT id, user_id, duration, focus, load, total_days, total_steps, is_valid, created_at
		FROM drafts WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`
	draft, err := r.scanDraft(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadSteps(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *SQLiteDraftRepo) scanDraft(row *sql.Row) (*domain.Draft, error) {
	var d domain.Draft
	var duration, focus, load, createdAt string
	var isValid int
	err := row.Scan(&d.ID, &d.UserID, &duration, &focus, &load,
		&d.TotalDays, &d.TotalSteps, &isValid, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("draft: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	d.Duration = domain.Duration(duration)
	d.Focus = domain.Focus(focus)
	d.Load = domain.Load(load)
	d.IsValid = intToBool(isValid)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		d.CreatedAt = t
	}
	return &d, nil
}

func (r *SQLiteDraftRepo) loadSteps(ctx context.Context, d *domain.Draft) error {
	query := `SELECT day_number, slot_index, slot_type, exercise_id, time_slot, category, difficulty
		FROM draft_steps WHERE draft_id = ? ORDER BY day_number, slot_index`
	rows, err := r.db.QueryContext(ctx, query, d.ID)
	if err != nil {
		return fmt.Errorf("listing draft steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.DraftStep
		var slotType, timeSlot, category string
		if err := rows.Scan(&s.DayNumber, &s.SlotIndex, &slotType, &s.ExerciseID, &timeSlot, &category, &s.Difficulty); err != nil {
			return fmt.Errorf("scanning draft step: %w", err)
		}
		s.SlotType = domain.SlotType(slotType)
		s.TimeSlot = domain.TimeSlot(timeSlot)
		s.Category = domain.Focus(category)
		d.Steps = append(d.Steps, s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating draft steps: %w", err)
	}
	return nil
}
