package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/llm"
)

// AgentTurn is the typed outcome of one coaching turn, ready for the
// gate and state machine.
type AgentTurn struct {
	ReplyText string
	Signal    *domain.ConversationState
	Update    gate.ProposedUpdate
}

// PlanAgent produces one coaching turn for a user message.
type PlanAgent interface {
	Respond(ctx context.Context, state domain.ConversationState, params domain.PlanParameters, userText string) (*AgentTurn, error)
}

type planAgent struct {
	client llm.Client
}

// NewPlanAgent creates a PlanAgent backed by a model client.
func NewPlanAgent(client llm.Client) PlanAgent {
	return &planAgent{client: client}
}

func (a *planAgent) Respond(ctx context.Context, state domain.ConversationState, params domain.PlanParameters, userText string) (*AgentTurn, error) {
	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlanAgent,
		SystemPrompt: planAgentSystemPrompt,
		UserPrompt:   buildPlanAgentUserPrompt(state, params, userText),
	})
	if err != nil {
		return nil, fmt.Errorf("plan agent call failed: %w", err)
	}

	env, err := DecodeEnvelope(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("plan agent envelope: %w", err)
	}

	signal := env.Signal()
	if !domain.SignalAllowed(state, signal) {
		return nil, fmt.Errorf("%w: signal %s not allowed in state %s",
			llm.ErrInvalidOutput, *signal, state)
	}

	update, err := env.ProposedUpdate()
	if err != nil {
		return nil, fmt.Errorf("plan agent updates: %w", err)
	}

	return &AgentTurn{
		ReplyText: env.ReplyText,
		Signal:    signal,
		Update:    update,
	}, nil
}
