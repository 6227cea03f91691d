package llm

import "errors"

// Sentinel failures of the model boundary. Callers branch on these with
// errors.Is; anything else is a plain transport error.
var (
	// ErrUnavailable: the model server could not be reached at all.
	ErrUnavailable = errors.New("model server unreachable")

	// ErrTimeout: the call ran past its task deadline.
	ErrTimeout = errors.New("model call deadline exceeded")

	// ErrInvalidOutput: the response could not be decoded into the
	// expected structured form.
	ErrInvalidOutput = errors.New("model output failed structured decoding")

	// ErrRetryExhausted: every allowed attempt failed.
	ErrRetryExhausted = errors.New("model call failed after all attempts")
)

// Code classifies err into a short stable tag for call events and logs.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
