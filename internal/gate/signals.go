package gate

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
)

var (
	// ErrInvalidTransitionSignal marks a transition signal outside the
	// current state's allow-list. Recoverable: the signal is dropped, the
	// state stays.
	ErrInvalidTransitionSignal = errors.New("invalid transition signal")

	// ErrMissingBaseParameter marks an attempt to advance the flow before
	// duration, focus and load are all collected.
	ErrMissingBaseParameter = errors.New("missing base parameter")
)

// ValidateSignal checks a proposed transition signal against the closed
// per-state vocabulary. Signals outside the allow-list are rejected, never
// forwarded. A nil signal is a no-op and always passes.
func ValidateSignal(current domain.ConversationState, signal *domain.ConversationState) error {
	if signal == nil {
		return nil
	}
	if !domain.ValidStates[*signal] {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransitionSignal, *signal)
	}
	if !domain.SignalAllowed(current, signal) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransitionSignal, current, *signal)
	}
	return nil
}

// RequireComplete returns ErrMissingBaseParameter naming every unset base
// parameter, or nil when duration, focus and load are all present.
func RequireComplete(p domain.PlanParameters) error {
	missing := p.Missing()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrMissingBaseParameter, missing)
}
