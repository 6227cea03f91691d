package composer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSelectionExhausted reports that no eligible catalog item exists for a
// slot even after every fallback tier. It is a data-completeness condition:
// the build fails whole, nothing partial is published.
var ErrSelectionExhausted = errors.New("selection exhausted")

// PreconditionError is fatal and non-retryable: the caller handed the
// builder parameters that the gate should never have let through. It marks
// a caller-contract breach, not a user error.
type PreconditionError struct {
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("build precondition violated: %s", e.Detail)
}

// DraftStructureError is fatal: a completed draft failed its structural
// certification, which indicates an upstream algorithmic defect.
type DraftStructureError struct {
	Violations []string
}

func (e *DraftStructureError) Error() string {
	return fmt.Sprintf("draft structure invalid: %s", strings.Join(e.Violations, "; "))
}
