package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedAgent_IdleStartsCollection(t *testing.T) {
	agent := NewScriptedAgent()

	for _, state := range []domain.ConversationState{domain.StateIdle, domain.StateIdlePlanAborted} {
		turn, err := agent.Respond(context.Background(), state, domain.PlanParameters{}, "hi")
		require.NoError(t, err)
		require.NotNil(t, turn.Signal, "state %s", state)
		assert.Equal(t, domain.StateDataCollection, *turn.Signal)
		assert.NotEmpty(t, turn.ReplyText)
	}
}

func TestScriptedAgent_AsksForMissingParamsInOrder(t *testing.T) {
	agent := NewScriptedAgent()
	ctx := context.Background()

	var params domain.PlanParameters
	turn, err := agent.Respond(ctx, domain.StateDataCollection, params, "")
	require.NoError(t, err)
	assert.Contains(t, turn.ReplyText, "long")

	d := domain.DurationShort
	params.Duration = &d
	turn, err = agent.Respond(ctx, domain.StateDataCollection, params, "")
	require.NoError(t, err)
	assert.Contains(t, turn.ReplyText, "focus")

	f := domain.FocusRest
	params.Focus = &f
	turn, err = agent.Respond(ctx, domain.StateDataCollection, params, "")
	require.NoError(t, err)
	assert.Contains(t, turn.ReplyText, "LITE")

	l := domain.LoadMid
	params.Load = &l
	turn, err = agent.Respond(ctx, domain.StateDataCollection, params, "")
	require.NoError(t, err)
	assert.Contains(t, turn.ReplyText, "2")
	assert.Nil(t, turn.Signal, "not ready yet")
}

func TestScriptedAgent_SignalsConfirmationWhenReady(t *testing.T) {
	agent := NewScriptedAgent()

	params := testutil.NewTestParams(
		domain.DurationShort, domain.FocusRest, domain.LoadMid,
		domain.TimeMorning, domain.TimeEvening,
	)
	turn, err := agent.Respond(context.Background(), domain.StateDataCollection, params, "")
	require.NoError(t, err)
	require.NotNil(t, turn.Signal)
	assert.Equal(t, domain.StateConfirmationPending, *turn.Signal)
	assert.Contains(t, turn.ReplyText, "rest")
	assert.True(t, turn.Update.Empty())
}

func TestScriptedAgent_NeverExtractsFromFreeText(t *testing.T) {
	agent := NewScriptedAgent()

	turn, err := agent.Respond(context.Background(), domain.StateDataCollection, domain.PlanParameters{},
		"a STANDARD somatic plan at MID load please")
	require.NoError(t, err)
	assert.True(t, turn.Update.Empty(), "the scripted agent asks, it does not parse")
}

func TestScriptedAgent_PassiveOutsidePlanFlow(t *testing.T) {
	agent := NewScriptedAgent()

	turn, err := agent.Respond(context.Background(), domain.StateActive, domain.PlanParameters{}, "hello")
	require.NoError(t, err)
	assert.Nil(t, turn.Signal)
	assert.Equal(t, gate.ProposedUpdate{}, turn.Update)
}
