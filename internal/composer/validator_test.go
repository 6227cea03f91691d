package composer

import (
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builtDraft returns a freshly built, known-good draft together with the
// pool it was built from, for corruption tests.
func builtDraft(t *testing.T, params domain.PlanParameters) (*domain.Draft, []domain.ContentItem) {
	t.Helper()
	pool := testutil.BroadCatalog()
	draft, _, err := Build("alice", params, pool, nil)
	require.NoError(t, err)
	return draft, pool
}

func TestValidate_FreshBuildPasses(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)
	assert.NoError(t, Validate(draft, params, pool))
}

func TestValidate_EmptyDraft(t *testing.T) {
	err := Validate(&domain.Draft{}, standardParams(), testutil.BroadCatalog())
	var structural *DraftStructureError
	require.ErrorAs(t, err, &structural)
	assert.Contains(t, structural.Violations[0], "no steps")
}

func TestValidate_RechecksPreconditions(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)

	params.Load = nil
	var structural *DraftStructureError
	assert.ErrorAs(t, Validate(draft, params, pool), &structural)
}

func TestValidate_MissingStepDetected(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)
	draft.Steps = draft.Steps[:len(draft.Steps)-1]
	draft.TotalSteps = len(draft.Steps)

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.NotEmpty(t, structural.Violations)
}

func TestValidate_DeclaredCountMismatch(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)
	draft.TotalSteps++

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "declared step count")
}

func TestValidate_SlotTypeOrderEnforced(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)

	// MID days run CORE then SUPPORT; swap day 1.
	draft.Steps[0].SlotType, draft.Steps[1].SlotType =
		draft.Steps[1].SlotType, draft.Steps[0].SlotType

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "day 1 slot 0")
}

func TestValidate_DifficultyOverCap(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)
	draft.Steps[0].Difficulty = 3 // day 1 is capped at 1

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "exceeds cap")
}

func TestValidate_InvalidTimeSlot(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)
	draft.Steps[3].TimeSlot = domain.TimeSlot("NIGHT")

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "invalid time slot")
}

func TestValidate_UnknownExerciseDetected(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)
	draft.Steps[5].ExerciseID = "not-in-the-catalog"

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "unknown exercise")
}

func TestValidate_CategoryTamperingDetected(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)

	// Rewrite every step to one category without touching the exercises.
	for i := range draft.Steps {
		draft.Steps[i].Category = domain.FocusBoundaries
	}

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "category")
}

func TestValidate_CooldownViolationDetected(t *testing.T) {
	params := standardParams()
	draft, pool := builtDraft(t, params)

	// Clone the day-1 CORE pick into the day-1 SUPPORT slot: same-day reuse
	// breaks spacing even at cooldown zero.
	draft.Steps[1].ExerciseID = draft.Steps[0].ExerciseID
	draft.Steps[1].Category = draft.Steps[0].Category
	draft.Steps[1].Difficulty = draft.Steps[0].Difficulty

	var structural *DraftStructureError
	require.ErrorAs(t, Validate(draft, params, pool), &structural)
	assert.Contains(t, structural.Error(), "reused")
}
