package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE duplicates from re-runs are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS conversations (
		user_id              TEXT PRIMARY KEY,
		current_state        TEXT NOT NULL DEFAULT 'IDLE'
		                     CHECK(current_state IN (
		                        'IDLE','PLAN_FLOW:DATA_COLLECTION','PLAN_FLOW:CONFIRMATION_PENDING',
		                        'PLAN_FLOW:FINALIZATION','ACTIVE','ACTIVE_CONFIRMATION',
		                        'ADAPTATION_FLOW','IDLE_PLAN_ABORTED')),
		duration             TEXT CHECK(duration IN ('SHORT','STANDARD','EXTENDED','LONG')),
		focus                TEXT CHECK(focus IN ('somatic','cognitive','boundaries','rest','mixed')),
		load                 TEXT CHECK(load IN ('LITE','MID','INTENSIVE')),
		preferred_time_slots TEXT,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS usage_records (
		user_id       TEXT NOT NULL,
		exercise_id   TEXT NOT NULL,
		last_used_day INTEGER NOT NULL,
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (user_id, exercise_id)
	)`,

	`CREATE TABLE IF NOT EXISTS drafts (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		duration    TEXT NOT NULL CHECK(duration IN ('SHORT','STANDARD','EXTENDED','LONG')),
		focus       TEXT NOT NULL CHECK(focus IN ('somatic','cognitive','boundaries','rest','mixed')),
		load        TEXT NOT NULL CHECK(load IN ('LITE','MID','INTENSIVE')),
		total_days  INTEGER NOT NULL,
		total_steps INTEGER NOT NULL,
		is_valid    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS draft_steps (
		draft_id    TEXT NOT NULL REFERENCES drafts(id) ON DELETE CASCADE,
		day_number  INTEGER NOT NULL,
		slot_index  INTEGER NOT NULL,
		slot_type   TEXT NOT NULL CHECK(slot_type IN ('CORE','SUPPORT','REST')),
		exercise_id TEXT NOT NULL,
		time_slot   TEXT NOT NULL CHECK(time_slot IN ('MORNING','DAY','EVENING')),
		category    TEXT NOT NULL,
		difficulty  INTEGER NOT NULL CHECK(difficulty BETWEEN 1 AND 3),
		PRIMARY KEY (draft_id, day_number, slot_index)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_drafts_user ON drafts(user_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS adaptation_records (
		id              TEXT PRIMARY KEY,
		plan_id         TEXT NOT NULL,
		user_id         TEXT NOT NULL,
		intent          TEXT NOT NULL,
		category        TEXT NOT NULL,
		params          TEXT,
		snapshot_before BLOB NOT NULL,
		applied_at      TEXT NOT NULL,
		is_rolled_back  INTEGER NOT NULL DEFAULT 0,
		is_invalidated  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_adaptations_plan ON adaptation_records(plan_id, applied_at)`,
}
