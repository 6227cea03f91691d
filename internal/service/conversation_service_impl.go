package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/policy"
	"github.com/alexanderramin/cadence/internal/repository"
)

type conversationService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	locks    *userLocks
	observer UseCaseObserver
}

// NewConversationService creates the conversation use cases over the given
// connection and unit of work.
func NewConversationService(conn db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) ConversationService {
	return &conversationService{
		conn:     conn,
		uow:      uow,
		locks:    newUserLocks(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *conversationService) Get(ctx context.Context, userID string) (*repository.ConversationSnapshot, error) {
	snap, err := repository.NewSQLiteConversationRepo(s.conn).Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &repository.ConversationSnapshot{UserID: userID, State: domain.StateIdle}, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *conversationService) ApplyUpdate(ctx context.Context, userID string, update gate.ProposedUpdate) (result *gate.Result, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"user_id": userID}
		if result != nil {
			fields["accepted"] = result.Accepted
		}
		observe(ctx, s.observer, "conversation.apply_update", start, err, fields)
	}()

	unlock := s.locks.lock(userID)
	defer unlock()

	snap, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := gate.Apply(snap.Params, update)
	result = &r
	if !r.Accepted {
		return result, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteConversationRepo(tx).Upsert(ctx, &repository.ConversationSnapshot{
			UserID: userID,
			State:  snap.State,
			Params: r.Params,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("persisting accepted update: %w", err)
	}
	return result, nil
}

func (s *conversationService) Transition(ctx context.Context, userID string, signal *domain.ConversationState) (next domain.ConversationState, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.observer, "conversation.transition", start, err,
			map[string]any{"user_id": userID, "to": string(next)})
	}()

	unlock := s.locks.lock(userID)
	defer unlock()

	snap, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if signal == nil {
		return snap.State, nil
	}

	if err = gate.ValidateSignal(snap.State, signal); err != nil {
		return "", err
	}
	if *signal == domain.StateConfirmationPending {
		if err = requireReady(snap.Params); err != nil {
			return "", err
		}
	}

	next = *signal
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteConversationRepo(tx).Upsert(ctx, &repository.ConversationSnapshot{
			UserID: userID,
			State:  next,
			Params: snap.Params,
		})
	})
	if err != nil {
		return "", fmt.Errorf("persisting transition: %w", err)
	}
	return next, nil
}

func (s *conversationService) Abort(ctx context.Context, userID string) error {
	target := domain.StateIdlePlanAborted
	_, err := s.Transition(ctx, userID, &target)
	return err
}

// requireReady guards entry into confirmation: all base parameters set and
// the slot set matching the load's cardinality.
func requireReady(p domain.PlanParameters) error {
	if err := gate.RequireComplete(p); err != nil {
		return err
	}
	want := policy.ExpectedSlotCount(*p.Load)
	if len(p.PreferredTimeSlots) != want {
		return fmt.Errorf("%w: %d of %d time slots selected",
			gate.ErrMissingBaseParameter, len(p.PreferredTimeSlots), want)
	}
	return nil
}
