package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteConversationRepo implements ConversationRepo over SQLite.
type SQLiteConversationRepo struct {
	db db.DBTX
}

// NewSQLiteConversationRepo creates a ConversationRepo bound to the given
// connection or transaction.
func NewSQLiteConversationRepo(dbtx db.DBTX) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{db: dbtx}
}

func (r *SQLiteConversationRepo) Get(ctx context.Context, userID string) (*ConversationSnapshot, error) {
	query := `SELECT user_id, current_state, duration, focus, load, preferred_time_slots
		FROM conversations WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var snap ConversationSnapshot
	var state string
	var duration, focus, load, slots sql.NullString
	if err := row.Scan(&snap.UserID, &state, &duration, &focus, &load, &slots); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("conversation %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}

	snap.State = domain.ConversationState(state)
	if duration.Valid {
		d, err := domain.ParseDuration(duration.String)
		if err != nil {
			return nil, fmt.Errorf("conversation %s: %w", userID, err)
		}
		snap.Params.Duration = &d
	}
	if focus.Valid {
		f, err := domain.ParseFocus(focus.String)
		if err != nil {
			return nil, fmt.Errorf("conversation %s: %w", userID, err)
		}
		snap.Params.Focus = &f
	}
	if load.Valid {
		l, err := domain.ParseLoad(load.String)
		if err != nil {
			return nil, fmt.Errorf("conversation %s: %w", userID, err)
		}
		snap.Params.Load = &l
	}
	if slots.Valid {
		snap.Params.PreferredTimeSlots = slotsFromCSV(slots.String)
	}
	return &snap, nil
}

func (r *SQLiteConversationRepo) Upsert(ctx context.Context, snap *ConversationSnapshot) error {
	query := `INSERT INTO conversations (user_id, current_state, duration, focus, load, preferred_time_slots, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			current_state = excluded.current_state,
			duration = excluded.duration,
			focus = excluded.focus,
			load = excluded.load,
			preferred_time_slots = excluded.preferred_time_slots,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		snap.UserID,
		string(snap.State),
		nullableEnum(snap.Params.Duration),
		nullableEnum(snap.Params.Focus),
		nullableEnum(snap.Params.Load),
		slotsToCSV(snap.Params.PreferredTimeSlots),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting conversation: %w", err)
	}
	return nil
}

// nullableEnum converts a nil-able enum pointer to a SQL value.
func nullableEnum[T ~string](v *T) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
