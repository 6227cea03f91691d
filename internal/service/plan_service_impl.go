package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/catalog"
	"github.com/alexanderramin/cadence/internal/composer"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type planService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	library  *catalog.Library
	locks    *userLocks
	observer UseCaseObserver
}

// NewPlanService creates the draft use cases over the given connection,
// unit of work and exercise library.
func NewPlanService(conn db.DBTX, uow db.UnitOfWork, library *catalog.Library, observers ...UseCaseObserver) PlanService {
	return &planService{
		conn:     conn,
		uow:      uow,
		library:  library,
		locks:    newUserLocks(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) BuildDraft(ctx context.Context, userID string) (draft *domain.Draft, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"user_id": userID}
		if draft != nil {
			fields["draft_id"] = draft.ID
			fields["total_steps"] = draft.TotalSteps
		}
		observe(ctx, s.observer, "plan.build_draft", start, err, fields)
	}()

	unlock := s.locks.lock(userID)
	defer unlock()

	snap, err := repository.NewSQLiteConversationRepo(s.conn).Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap.State != domain.StateFinalization {
		return nil, fmt.Errorf("cannot build a draft in state %s", snap.State)
	}

	usage, err := repository.NewSQLiteUsageRepo(s.conn).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft, usageAfter, err := composer.Build(userID, snap.Params, s.library.Active(), usage)
	if err != nil {
		return nil, err
	}
	draft.ID = uuid.New().String()
	draft.CreatedAt = time.Now().UTC()

	// Draft, usage history and activation land together or not at all.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteDraftRepo(tx).Create(ctx, draft); err != nil {
			return err
		}
		if err := repository.NewSQLiteUsageRepo(tx).UpsertBatch(ctx, usageAfter); err != nil {
			return err
		}
		return repository.NewSQLiteConversationRepo(tx).Upsert(ctx, &repository.ConversationSnapshot{
			UserID: userID,
			State:  domain.StateActive,
			Params: snap.Params,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("persisting draft: %w", err)
	}
	return draft, nil
}

func (s *planService) GetDraft(ctx context.Context, id string) (*domain.Draft, error) {
	return repository.NewSQLiteDraftRepo(s.conn).GetByID(ctx, id)
}

func (s *planService) GetLatestDraft(ctx context.Context, userID string) (*domain.Draft, error) {
	return repository.NewSQLiteDraftRepo(s.conn).GetLatestByUser(ctx, userID)
}
