package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversationService(t *testing.T) ConversationService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewConversationService(database, testutil.NewTestUoW(database))
}

func durPtr(d domain.Duration) *domain.Duration { return &d }
func focPtr(f domain.Focus) *domain.Focus       { return &f }
func loadPtr(l domain.Load) *domain.Load        { return &l }
func statePtr(s domain.ConversationState) *domain.ConversationState {
	return &s
}

func TestConversationService_GetUnknownUserDefaultsToIdle(t *testing.T) {
	svc := newConversationService(t)

	snap, err := svc.Get(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", snap.UserID)
	assert.Equal(t, domain.StateIdle, snap.State)
	assert.False(t, snap.Params.IsComplete())
}

func TestConversationService_AcceptedUpdatePersists(t *testing.T) {
	svc := newConversationService(t)
	ctx := context.Background()

	r, err := svc.ApplyUpdate(ctx, "alice", gate.ProposedUpdate{
		Duration: durPtr(domain.DurationStandard),
		Focus:    focPtr(domain.FocusCognitive),
	})
	require.NoError(t, err)
	require.True(t, r.Accepted)

	snap, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.DurationStandard, *snap.Params.Duration)
	assert.Equal(t, domain.FocusCognitive, *snap.Params.Focus)
}

func TestConversationService_RejectedUpdateNotPersisted(t *testing.T) {
	svc := newConversationService(t)
	ctx := context.Background()

	r, err := svc.ApplyUpdate(ctx, "alice", gate.ProposedUpdate{
		Load:      loadPtr(domain.LoadMid),
		TimeSlots: &[]domain.TimeSlot{domain.TimeMorning, domain.TimeDay, domain.TimeEvening},
	})
	require.NoError(t, err, "a rejection is a result, not an error")
	require.False(t, r.Accepted)

	snap, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, snap.Params.Load, "rejected update must leave nothing behind")
	assert.Empty(t, snap.Params.PreferredTimeSlots)
}

func TestConversationService_TransitionNilSignalIsNoOp(t *testing.T) {
	svc := newConversationService(t)

	next, err := svc.Transition(context.Background(), "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, next)
}

func TestConversationService_TransitionRejectsOffListSignal(t *testing.T) {
	svc := newConversationService(t)

	_, err := svc.Transition(context.Background(), "alice", statePtr(domain.StateActive))
	assert.ErrorIs(t, err, gate.ErrInvalidTransitionSignal)
}

func TestConversationService_ConfirmationRequiresReadiness(t *testing.T) {
	svc := newConversationService(t)
	ctx := context.Background()

	_, err := svc.Transition(ctx, "alice", statePtr(domain.StateDataCollection))
	require.NoError(t, err)

	// Base parameters only, no slots yet.
	_, err = svc.ApplyUpdate(ctx, "alice", gate.ProposedUpdate{
		Duration: durPtr(domain.DurationShort),
		Focus:    focPtr(domain.FocusRest),
		Load:     loadPtr(domain.LoadLite),
	})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, "alice", statePtr(domain.StateConfirmationPending))
	require.ErrorIs(t, err, gate.ErrMissingBaseParameter)

	_, err = svc.ApplyUpdate(ctx, "alice", gate.ProposedUpdate{
		TimeSlots: &[]domain.TimeSlot{domain.TimeEvening},
	})
	require.NoError(t, err)

	next, err := svc.Transition(ctx, "alice", statePtr(domain.StateConfirmationPending))
	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirmationPending, next)
}

func TestConversationService_AbortFromConfirmation(t *testing.T) {
	svc := newConversationService(t)
	ctx := context.Background()

	_, err := svc.Transition(ctx, "alice", statePtr(domain.StateDataCollection))
	require.NoError(t, err)
	_, err = svc.ApplyUpdate(ctx, "alice", gate.ProposedUpdate{
		Duration:  durPtr(domain.DurationShort),
		Focus:     focPtr(domain.FocusRest),
		Load:      loadPtr(domain.LoadLite),
		TimeSlots: &[]domain.TimeSlot{domain.TimeDay},
	})
	require.NoError(t, err)
	_, err = svc.Transition(ctx, "alice", statePtr(domain.StateConfirmationPending))
	require.NoError(t, err)

	require.NoError(t, svc.Abort(ctx, "alice"))
	snap, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdlePlanAborted, snap.State)
}

func TestConversationService_AbortFromIdleRejected(t *testing.T) {
	svc := newConversationService(t)
	err := svc.Abort(context.Background(), "alice")
	assert.ErrorIs(t, err, gate.ErrInvalidTransitionSignal)
}
