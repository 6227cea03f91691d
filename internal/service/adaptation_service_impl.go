package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

// ErrNotReversible marks a rollback attempt on an intent whose change
// cannot be undone from a snapshot.
var ErrNotReversible = errors.New("adaptation intent is not reversible")

// AdaptationRequest describes one approved plan change. Apply performs
// the actual change inside a transaction; a nil Apply records a change
// that has no structural effect (pause, resume).
type AdaptationRequest struct {
	PlanID string
	UserID string
	Intent domain.AdaptationIntent
	Params map[string]any
	Apply  func(ctx context.Context, tx db.DBTX) error
}

type adaptationService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewAdaptationService creates the adaptation-ledger use cases.
func NewAdaptationService(conn db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) AdaptationService {
	return &adaptationService{
		conn:     conn,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *adaptationService) Record(ctx context.Context, req AdaptationRequest) (rec *domain.AdaptationRecord, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"plan_id": req.PlanID, "intent": string(req.Intent)}
		if rec != nil {
			fields["adaptation_id"] = rec.ID
		}
		observe(ctx, s.observer, "adaptation.record", start, err, fields)
	}()

	meta := req.Intent.Meta()
	if meta.Category == "" {
		return nil, fmt.Errorf("invalid adaptation intent %q", req.Intent)
	}
	if meta.RequiresParams && len(req.Params) == 0 {
		return nil, fmt.Errorf("intent %s requires parameters", req.Intent)
	}

	// The snapshot is taken strictly before any change lands, so a later
	// rollback restores exactly the pre-change plan.
	draft, err := repository.NewSQLiteDraftRepo(s.conn).GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("snapshotting plan: %w", err)
	}

	rec = &domain.AdaptationRecord{
		ID:             uuid.New().String(),
		PlanID:         req.PlanID,
		UserID:         req.UserID,
		Intent:         req.Intent,
		Category:       meta.Category,
		Params:         req.Params,
		SnapshotBefore: snapshot,
		AppliedAt:      time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAdaptationRepo(tx).Create(ctx, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("writing ledger entry: %w", err)
	}

	if req.Apply == nil {
		return rec, nil
	}

	applyErr := s.uow.WithinTx(ctx, req.Apply)
	if applyErr != nil {
		// The entry is already committed; invalidate it so the ledger
		// never claims a change that did not land.
		if invErr := repository.NewSQLiteAdaptationRepo(s.conn).MarkInvalidated(ctx, rec.ID); invErr != nil {
			return nil, fmt.Errorf("applying adaptation: %v (invalidation also failed: %w)", applyErr, invErr)
		}
		return nil, fmt.Errorf("applying adaptation: %w", applyErr)
	}
	return rec, nil
}

func (s *adaptationService) Rollback(ctx context.Context, id string) (rec *domain.AdaptationRecord, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "adaptation.rollback", start, err, map[string]any{"adaptation_id": id})
	}()

	repo := repository.NewSQLiteAdaptationRepo(s.conn)
	rec, err = repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.Intent.Meta().Reversible {
		return nil, fmt.Errorf("intent %s: %w", rec.Intent, ErrNotReversible)
	}
	if rec.IsInvalidated {
		return nil, fmt.Errorf("adaptation %s was invalidated, nothing to roll back", id)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAdaptationRepo(tx).MarkRolledBack(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	rec.IsRolledBack = true
	return rec, nil
}

func (s *adaptationService) ListByPlan(ctx context.Context, planID string) ([]*domain.AdaptationRecord, error) {
	return repository.NewSQLiteAdaptationRepo(s.conn).ListByPlan(ctx, planID)
}
