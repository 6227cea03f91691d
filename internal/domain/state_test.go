package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalAllowed_NilAlwaysAllowed(t *testing.T) {
	for state := range ValidStates {
		assert.True(t, SignalAllowed(state, nil), "state %s", state)
	}
}

func TestSignalAllowed_PlanFlow(t *testing.T) {
	sig := func(s ConversationState) *ConversationState { return &s }

	assert.True(t, SignalAllowed(StateIdle, sig(StateDataCollection)))
	assert.True(t, SignalAllowed(StateDataCollection, sig(StateConfirmationPending)))
	assert.True(t, SignalAllowed(StateConfirmationPending, sig(StateFinalization)))
	assert.True(t, SignalAllowed(StateConfirmationPending, sig(StateIdlePlanAborted)))
	assert.True(t, SignalAllowed(StateFinalization, sig(StateActive)))
	assert.True(t, SignalAllowed(StateIdlePlanAborted, sig(StateDataCollection)))

	// No shortcuts across the tunnel.
	assert.False(t, SignalAllowed(StateIdle, sig(StateActive)))
	assert.False(t, SignalAllowed(StateDataCollection, sig(StateFinalization)))
	assert.False(t, SignalAllowed(StateIdle, sig(StateIdle)), "self-transitions are not signals")
}

func TestSignalAllowed_AdaptationFlow(t *testing.T) {
	sig := func(s ConversationState) *ConversationState { return &s }

	assert.True(t, SignalAllowed(StateActive, sig(StateAdaptationFlow)))
	assert.True(t, SignalAllowed(StateAdaptationFlow, sig(StateActiveConfirmation)))
	assert.True(t, SignalAllowed(StateActiveConfirmation, sig(StateActive)))

	// The adaptation tunnel never reaches back into plan setup.
	assert.False(t, SignalAllowed(StateActive, sig(StateDataCollection)))
	assert.False(t, SignalAllowed(StateAdaptationFlow, sig(StateIdle)))
}

func TestSignalAllowed_UnknownStates(t *testing.T) {
	limbo := ConversationState("LIMBO")
	assert.False(t, SignalAllowed(StateIdle, &limbo))
	assert.False(t, SignalAllowed(limbo, &limbo))
}

func TestAllowedSignals_SortedAndComplete(t *testing.T) {
	got := AllowedSignals(StateConfirmationPending)
	assert.Equal(t, []ConversationState{StateIdlePlanAborted, StateFinalization}, got)

	assert.Empty(t, AllowedSignals(ConversationState("LIMBO")))
}
