package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
)

// planAgentSystemPrompt instructs the model to act as the self-care
// coaching agent and to answer in the strict envelope format.
const planAgentSystemPrompt = `You are Cadence, a warm but concise self-care coach.
You guide the user through setting up a recovery plan by collecting three
parameters (duration, focus, load) plus preferred time slots, one question
at a time.

You must output ONLY a JSON object with these exact fields:
- reply_text: string, your next message to the user (never empty)
- transition_signal: a state name from the allowed list below, or null to stay
- plan_updates: object or null, with only the fields the user actually stated:
  - duration: one of [SHORT, STANDARD, EXTENDED, LONG]
  - focus: one of [somatic, cognitive, boundaries, rest, mixed]
  - load: one of [LITE, MID, INTENSIVE]
  - preferred_time_slots: array of [MORNING, DAY, EVENING]

CRITICAL RULES:
1. Never invent parameter values the user did not state. Omit unknown fields.
2. Ask about exactly one missing parameter per turn.
3. Emit a transition_signal ONLY from the allowed list you are given.
4. Never describe concrete exercises; the plan engine picks those.
5. Output ONLY the JSON object, no markdown, no explanation`

// buildPlanAgentUserPrompt renders the conversation context the agent
// needs for one turn: current state, its allowed signals, the known
// parameters and the user's message.
func buildPlanAgentUserPrompt(state domain.ConversationState, params domain.PlanParameters, userText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Current state: %s\n", state)
	fmt.Fprintf(&b, "Allowed transition signals: %s\n", strings.Join(allowedSignalNames(state), ", "))

	b.WriteString("Known parameters:\n")
	fmt.Fprintf(&b, "  duration: %s\n", orUnset(params.Duration))
	fmt.Fprintf(&b, "  focus: %s\n", orUnset(params.Focus))
	fmt.Fprintf(&b, "  load: %s\n", orUnset(params.Load))
	if len(params.PreferredTimeSlots) == 0 {
		b.WriteString("  preferred_time_slots: (unset)\n")
	} else {
		names := make([]string, len(params.PreferredTimeSlots))
		for i, s := range params.PreferredTimeSlots {
			names[i] = string(s)
		}
		fmt.Fprintf(&b, "  preferred_time_slots: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "\nUser message: %s\n", userText)
	return b.String()
}

func allowedSignalNames(state domain.ConversationState) []string {
	targets := domain.AllowedSignals(state)
	if len(targets) == 0 {
		return []string{"(none)"}
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return names
}

func orUnset[T ~string](v *T) string {
	if v == nil {
		return "(unset)"
	}
	return string(*v)
}
