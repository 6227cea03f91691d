package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/policy"
)

// scriptedAgent is the offline PlanAgent. It never extracts parameters
// from free text; it only asks for the next missing one and signals
// readiness, so plan setup still works without a model server.
type scriptedAgent struct{}

// NewScriptedAgent creates the deterministic fallback PlanAgent.
func NewScriptedAgent() PlanAgent {
	return scriptedAgent{}
}

func (scriptedAgent) Respond(_ context.Context, state domain.ConversationState, params domain.PlanParameters, _ string) (*AgentTurn, error) {
	switch state {
	case domain.StateIdle, domain.StateIdlePlanAborted:
		signal := domain.StateDataCollection
		return &AgentTurn{
			ReplyText: "Let's set up your plan. How long should it run: SHORT (1 week), STANDARD (2 weeks), EXTENDED (3 weeks) or LONG (3 months)?",
			Signal:    &signal,
		}, nil

	case domain.StateDataCollection:
		return dataCollectionTurn(params), nil

	case domain.StateConfirmationPending:
		return &AgentTurn{
			ReplyText: "Your plan is ready to build. Confirm to generate it, or tell me what to change.",
		}, nil

	default:
		return &AgentTurn{
			ReplyText: "I can help with your plan once you start or adapt one.",
		}, nil
	}
}

func dataCollectionTurn(params domain.PlanParameters) *AgentTurn {
	if missing := params.Missing(); len(missing) > 0 {
		return &AgentTurn{ReplyText: questionFor(missing[0])}
	}

	want := policy.ExpectedSlotCount(*params.Load)
	if len(params.PreferredTimeSlots) != want {
		return &AgentTurn{
			ReplyText: fmt.Sprintf("Which %d of MORNING, DAY, EVENING would you like to practice in?", want),
		}
	}

	signal := domain.StateConfirmationPending
	return &AgentTurn{
		ReplyText: summarize(params) + " Shall I build it?",
		Signal:    &signal,
		Update:    gate.ProposedUpdate{},
	}
}

func questionFor(field string) string {
	switch field {
	case "duration":
		return "How long should your plan run: SHORT, STANDARD, EXTENDED or LONG?"
	case "focus":
		return "What should the plan focus on: somatic, cognitive, boundaries, rest or mixed?"
	case "load":
		return "How much daily practice suits you: LITE, MID or INTENSIVE?"
	default:
		return "Tell me more about the plan you'd like."
	}
}

func summarize(params domain.PlanParameters) string {
	slots := make([]string, len(params.PreferredTimeSlots))
	for i, s := range params.PreferredTimeSlots {
		slots[i] = string(s)
	}
	return fmt.Sprintf("So far: a %s %s plan at %s load, practicing in the %s slots.",
		strings.ToLower(string(*params.Duration)),
		strings.ToLower(string(*params.Focus)),
		strings.ToLower(string(*params.Load)),
		strings.Join(slots, "/"))
}
