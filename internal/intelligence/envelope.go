package intelligence

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/llm"
)

// AgentEnvelope is the JSON contract every agent turn must satisfy. The
// schema is closed: unknown fields fail the decode, and every enum value
// is checked against the domain vocabulary before anything downstream
// sees it.
type AgentEnvelope struct {
	ReplyText        string       `json:"reply_text"`
	TransitionSignal *string      `json:"transition_signal"`
	PlanUpdates      *PlanUpdates `json:"plan_updates"`
}

// PlanUpdates carries the raw parameter delta the agent extracted from
// the user's message. Nil fields mean "not mentioned".
type PlanUpdates struct {
	Duration           *string   `json:"duration"`
	Focus              *string   `json:"focus"`
	Load               *string   `json:"load"`
	PreferredTimeSlots *[]string `json:"preferred_time_slots"`
}

// DecodeEnvelope extracts and validates an AgentEnvelope from raw model
// output. Enum fields are verified here so a hallucinated value is an
// ErrInvalidOutput at the boundary, never a bad write later.
func DecodeEnvelope(raw string) (*AgentEnvelope, error) {
	env, err := llm.ExtractJSON[AgentEnvelope](raw, validateEnvelope)
	if err != nil {
		return nil, err
	}
	return &env, nil
}

func validateEnvelope(e AgentEnvelope) error {
	if e.ReplyText == "" {
		return fmt.Errorf("reply_text must not be empty")
	}
	if e.TransitionSignal != nil {
		if !domain.ValidStates[domain.ConversationState(*e.TransitionSignal)] {
			return fmt.Errorf("unknown transition_signal: %s", *e.TransitionSignal)
		}
	}
	if e.PlanUpdates == nil {
		return nil
	}
	u := e.PlanUpdates
	if u.Duration != nil {
		if _, err := domain.ParseDuration(*u.Duration); err != nil {
			return err
		}
	}
	if u.Focus != nil {
		if _, err := domain.ParseFocus(*u.Focus); err != nil {
			return err
		}
	}
	if u.Load != nil {
		if _, err := domain.ParseLoad(*u.Load); err != nil {
			return err
		}
	}
	if u.PreferredTimeSlots != nil {
		for _, s := range *u.PreferredTimeSlots {
			if _, err := domain.ParseTimeSlot(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// Signal returns the envelope's transition signal as a typed state, or
// nil when the agent emitted null.
func (e *AgentEnvelope) Signal() *domain.ConversationState {
	if e.TransitionSignal == nil {
		return nil
	}
	s := domain.ConversationState(*e.TransitionSignal)
	return &s
}

// ProposedUpdate converts the envelope's raw plan updates into the typed
// delta the parameter gate consumes. The envelope must have passed
// DecodeEnvelope first; parse errors here indicate a caller bug.
func (e *AgentEnvelope) ProposedUpdate() (gate.ProposedUpdate, error) {
	var out gate.ProposedUpdate
	if e.PlanUpdates == nil {
		return out, nil
	}
	u := e.PlanUpdates
	if u.Duration != nil {
		d, err := domain.ParseDuration(*u.Duration)
		if err != nil {
			return gate.ProposedUpdate{}, err
		}
		out.Duration = &d
	}
	if u.Focus != nil {
		f, err := domain.ParseFocus(*u.Focus)
		if err != nil {
			return gate.ProposedUpdate{}, err
		}
		out.Focus = &f
	}
	if u.Load != nil {
		l, err := domain.ParseLoad(*u.Load)
		if err != nil {
			return gate.ProposedUpdate{}, err
		}
		out.Load = &l
	}
	if u.PreferredTimeSlots != nil {
		slots := make([]domain.TimeSlot, 0, len(*u.PreferredTimeSlots))
		for _, s := range *u.PreferredTimeSlots {
			ts, err := domain.ParseTimeSlot(s)
			if err != nil {
				return gate.ProposedUpdate{}, err
			}
			slots = append(slots, ts)
		}
		out.TimeSlots = &slots
	}
	return out, nil
}
