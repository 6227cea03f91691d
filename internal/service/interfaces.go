package service

import (
	"context"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/repository"
)

type ConversationService interface {
	// Get returns the user's conversation snapshot, creating an IDLE one
	// in memory when none is stored yet.
	Get(ctx context.Context, userID string) (*repository.ConversationSnapshot, error)

	// ApplyUpdate runs one gate decision and persists the new snapshot
	// atomically when accepted. A rejected update changes nothing.
	ApplyUpdate(ctx context.Context, userID string, update gate.ProposedUpdate) (*gate.Result, error)

	// Transition moves the conversation along a validated signal. A nil
	// signal is a no-op.
	Transition(ctx context.Context, userID string, signal *domain.ConversationState) (domain.ConversationState, error)

	// Abort leaves the plan flow, keeping collected parameters for a
	// later resume.
	Abort(ctx context.Context, userID string) error
}

type PlanService interface {
	// BuildDraft assembles, persists and activates a draft from the
	// user's confirmed parameters. Draft, usage history and the state
	// transition commit in one transaction.
	BuildDraft(ctx context.Context, userID string) (*domain.Draft, error)

	GetDraft(ctx context.Context, id string) (*domain.Draft, error)
	GetLatestDraft(ctx context.Context, userID string) (*domain.Draft, error)
}

type AdaptationService interface {
	// Record snapshots the plan, writes the ledger entry and then applies
	// the change. A failed application invalidates the entry instead of
	// leaving a record that claims a change which never landed.
	Record(ctx context.Context, req AdaptationRequest) (*domain.AdaptationRecord, error)

	// Rollback marks the entry rolled back and returns it with the
	// pre-change snapshot. A second rollback of the same entry fails
	// with repository.ErrAlreadyRolledBack.
	Rollback(ctx context.Context, id string) (*domain.AdaptationRecord, error)

	ListByPlan(ctx context.Context, planID string) ([]*domain.AdaptationRecord, error)
}
