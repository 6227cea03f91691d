package domain

import "sort"

// ConversationState is the coaching conversation's position in the plan
// lifecycle. States form two tunnels (plan flow and adaptation flow) that
// never cross directly.
type ConversationState string

const (
	StateIdle                ConversationState = "IDLE"
	StateDataCollection      ConversationState = "PLAN_FLOW:DATA_COLLECTION"
	StateConfirmationPending ConversationState = "PLAN_FLOW:CONFIRMATION_PENDING"
	StateFinalization        ConversationState = "PLAN_FLOW:FINALIZATION"
	StateActive              ConversationState = "ACTIVE"
	StateActiveConfirmation  ConversationState = "ACTIVE_CONFIRMATION"
	StateAdaptationFlow      ConversationState = "ADAPTATION_FLOW"
	StateIdlePlanAborted     ConversationState = "IDLE_PLAN_ABORTED"
)

// ValidStates is the canonical set of conversation states.
var ValidStates = map[ConversationState]bool{
	StateIdle: true, StateDataCollection: true, StateConfirmationPending: true,
	StateFinalization: true, StateActive: true, StateActiveConfirmation: true,
	StateAdaptationFlow: true, StateIdlePlanAborted: true,
}

// allowedSignals is the closed per-state transition-signal vocabulary.
// A nil-signal (agent emits null) is always acceptable and means "stay".
var allowedSignals = map[ConversationState]map[ConversationState]bool{
	StateIdle: {
		StateDataCollection: true,
	},
	StateDataCollection: {
		StateConfirmationPending: true,
	},
	StateConfirmationPending: {
		StateFinalization:    true,
		StateIdlePlanAborted: true,
	},
	StateFinalization: {
		StateActive: true,
	},
	StateActive: {
		StateAdaptationFlow: true,
	},
	StateAdaptationFlow: {
		StateActiveConfirmation: true,
	},
	StateActiveConfirmation: {
		StateActive: true,
	},
	StateIdlePlanAborted: {
		StateDataCollection: true,
	},
}

// SignalAllowed reports whether the given transition signal is inside the
// current state's allow-list. A nil signal is always allowed.
func SignalAllowed(current ConversationState, signal *ConversationState) bool {
	if signal == nil {
		return true
	}
	return allowedSignals[current][*signal]
}

// AllowedSignals returns the target states reachable from current, in a
// stable order.
func AllowedSignals(current ConversationState) []ConversationState {
	targets := allowedSignals[current]
	out := make([]ConversationState, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
