package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/cadence/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRolledBack guards rollback idempotency: a ledger record can be
// rolled back exactly once.
var ErrAlreadyRolledBack = errors.New("adaptation already rolled back")

// ConversationSnapshot is the persisted per-user conversation state: FSM
// position plus the parameters collected so far. Writes are all-or-nothing;
// a reader never observes a half-applied update.
type ConversationSnapshot struct {
	UserID string
	State  domain.ConversationState
	Params domain.PlanParameters
}

type ConversationRepo interface {
	Get(ctx context.Context, userID string) (*ConversationSnapshot, error)
	// Upsert atomically replaces the whole snapshot.
	Upsert(ctx context.Context, snap *ConversationSnapshot) error
}

type UsageRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.UsageRecord, error)
	// UpsertBatch replaces the last-used day for each record.
	UpsertBatch(ctx context.Context, records []domain.UsageRecord) error
}

type DraftRepo interface {
	Create(ctx context.Context, d *domain.Draft) error
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	GetLatestByUser(ctx context.Context, userID string) (*domain.Draft, error)
}

type AdaptationRepo interface {
	Create(ctx context.Context, r *domain.AdaptationRecord) error
	GetByID(ctx context.Context, id string) (*domain.AdaptationRecord, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.AdaptationRecord, error)
	// MarkRolledBack flips is_rolled_back false->true, failing with
	// ErrAlreadyRolledBack if it was already set.
	MarkRolledBack(ctx context.Context, id string) error
	// MarkInvalidated compensates a record whose diff never landed.
	MarkInvalidated(ctx context.Context, id string) error
}
