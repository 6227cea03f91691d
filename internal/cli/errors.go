package cli

import (
	"errors"

	"github.com/alexanderramin/cadence/internal/composer"
)

// engineFailureMessage is all the terminal shows when the draft engine
// fails internally. The underlying error still reaches the use-case log
// when CADENCE_LOG is set.
const engineFailureMessage = "Something went wrong while putting your plan together. Please try again in a moment."

// maskEngineError replaces fatal draft-engine errors with a generic,
// user-safe message. Recoverable errors pass through unchanged.
func maskEngineError(err error) error {
	if err == nil {
		return nil
	}
	var precondition *composer.PreconditionError
	var structure *composer.DraftStructureError
	if errors.As(err, &precondition) || errors.As(err, &structure) {
		return errors.New(engineFailureMessage)
	}
	return err
}
