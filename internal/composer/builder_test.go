package composer

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/alexanderramin/cadence/internal/catalog"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/policy"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardParams() domain.PlanParameters {
	return testutil.NewTestParams(
		domain.DurationStandard, domain.FocusSomatic, domain.LoadMid,
		domain.TimeMorning, domain.TimeDay,
	)
}

func TestBuild_StandardSomaticMid(t *testing.T) {
	draft, usage, err := Build("alice", standardParams(), testutil.BroadCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, 14, draft.TotalDays)
	assert.Equal(t, 28, draft.TotalSteps)
	assert.Len(t, draft.Steps, 28)
	assert.True(t, draft.IsValid)
	assert.NotEmpty(t, usage)

	// Every step's time slot comes from the preferred pair and slot types
	// follow the MID structure.
	for _, step := range draft.Steps {
		assert.Contains(t, []domain.TimeSlot{domain.TimeMorning, domain.TimeDay}, step.TimeSlot)
	}
	byDay := draft.StepsByDay()
	for day := 1; day <= 14; day++ {
		require.Len(t, byDay[day], 2)
		assert.Equal(t, domain.SlotCore, byDay[day][0].SlotType)
		assert.Equal(t, domain.SlotSupport, byDay[day][1].SlotType)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	params := standardParams()
	pool := testutil.BroadCatalog()

	first, firstUsage, err := Build("alice", params, pool, nil)
	require.NoError(t, err)
	second, secondUsage, err := Build("alice", params, pool, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs must yield an identical draft")
	assert.Equal(t, firstUsage, secondUsage)
}

func TestBuild_DifferentUsersDiverge(t *testing.T) {
	params := standardParams()
	pool := testutil.BroadCatalog()

	alice, _, err := Build("alice", params, pool, nil)
	require.NoError(t, err)
	bob, _, err := Build("bob", params, pool, nil)
	require.NoError(t, err)

	same := true
	for i := range alice.Steps {
		if alice.Steps[i].ExerciseID != bob.Steps[i].ExerciseID {
			same = false
			break
		}
	}
	assert.False(t, same, "per-user seeding should produce different plans")
}

func TestBuild_IncompleteParamsIsPreconditionError(t *testing.T) {
	params := standardParams()
	params.Focus = nil

	_, _, err := Build("alice", params, testutil.BroadCatalog(), nil)
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Contains(t, pre.Detail, "focus")
}

func TestBuild_SlotCountMismatchIsPreconditionError(t *testing.T) {
	params := testutil.NewTestParams(
		domain.DurationShort, domain.FocusRest, domain.LoadMid,
		domain.TimeMorning, // MID needs two
	)

	_, _, err := Build("alice", params, testutil.BroadCatalog(), nil)
	var pre *PreconditionError
	assert.ErrorAs(t, err, &pre)
}

func TestBuild_DuplicateSlotIsPreconditionError(t *testing.T) {
	params := testutil.NewTestParams(
		domain.DurationShort, domain.FocusRest, domain.LoadMid,
		domain.TimeMorning, domain.TimeMorning,
	)

	_, _, err := Build("alice", params, testutil.BroadCatalog(), nil)
	var pre *PreconditionError
	assert.ErrorAs(t, err, &pre)
}

func TestBuild_ExhaustedCatalogFailsWhole(t *testing.T) {
	// Two items with long cooldowns cannot cover 7 LITE days.
	pool := []domain.ContentItem{
		testutil.NewTestItem(domain.FocusRest, testutil.WithCooldown(30)),
		testutil.NewTestItem(domain.FocusRest, testutil.WithCooldown(30)),
	}
	params := testutil.NewTestParams(
		domain.DurationShort, domain.FocusRest, domain.LoadLite,
		domain.TimeEvening,
	)

	draft, usage, err := Build("alice", params, pool, nil)
	assert.ErrorIs(t, err, ErrSelectionExhausted)
	assert.Nil(t, draft, "nothing partial is returned")
	assert.Nil(t, usage)
}

func TestBuild_CooldownBlocksReuse(t *testing.T) {
	pool := testutil.BroadCatalog()
	for i := range pool {
		pool[i].CooldownDays = 2
	}

	draft, _, err := Build("alice", testutil.NewTestParams(
		domain.DurationShort, domain.FocusMixed, domain.LoadLite, domain.TimeMorning,
	), pool, nil)
	require.NoError(t, err)

	lastUsed := make(map[string]int)
	for _, step := range draft.Steps {
		if last, ok := lastUsed[step.ExerciseID]; ok {
			assert.Greater(t, step.DayNumber-last, 2,
				"exercise %s reused on day %d after day %d", step.ExerciseID, step.DayNumber, last)
		}
		lastUsed[step.ExerciseID] = step.DayNumber
	}
}

func TestBuild_UsageHistoryRespected(t *testing.T) {
	item := testutil.NewTestItem(domain.FocusRest, testutil.WithCooldown(10))
	other := testutil.NewTestItem(domain.FocusRest)
	pool := []domain.ContentItem{item, other}

	history := []domain.UsageRecord{{UserID: "alice", ExerciseID: item.ID, LastUsedDay: 0}}
	params := testutil.NewTestParams(
		domain.DurationShort, domain.FocusRest, domain.LoadLite, domain.TimeDay,
	)

	draft, _, err := Build("alice", params, pool, history)
	require.NoError(t, err)
	for _, step := range draft.Steps {
		if step.DayNumber <= 10 {
			assert.NotEqual(t, item.ID, step.ExerciseID,
				"day %d is inside the cooldown window", step.DayNumber)
		}
	}
}

func TestBuild_OtherUsersHistoryIgnored(t *testing.T) {
	item := testutil.NewTestItem(domain.FocusRest, testutil.WithCooldown(90))
	pool := []domain.ContentItem{item}
	history := []domain.UsageRecord{{UserID: "bob", ExerciseID: item.ID, LastUsedDay: 0}}

	params := testutil.NewTestParams(
		domain.DurationShort, domain.FocusRest, domain.LoadLite, domain.TimeDay,
	)
	_, _, err := Build("alice", params, pool, history)
	assert.NoError(t, err, "bob's usage must not block alice")
}

func TestBuild_DifficultyProgression(t *testing.T) {
	draft, _, err := Build("alice", testutil.NewTestParams(
		domain.DurationExtended, domain.FocusCognitive, domain.LoadMid,
		domain.TimeMorning, domain.TimeEvening,
	), testutil.BroadCatalog(), nil)
	require.NoError(t, err)

	for _, step := range draft.Steps {
		limit := policy.MaxDifficultyForDay(step.DayNumber-1, domain.DurationExtended)
		assert.LessOrEqual(t, step.Difficulty, limit,
			"day %d difficulty %d over cap %d", step.DayNumber, step.Difficulty, limit)
	}
}

func TestBuild_IDAndCreatedAtLeftForCaller(t *testing.T) {
	draft, _, err := Build("alice", standardParams(), testutil.BroadCatalog(), nil)
	require.NoError(t, err)
	assert.Empty(t, draft.ID)
	assert.True(t, draft.CreatedAt.IsZero())
}

// TestBuild_DefaultLibraryServesEveryCombination builds every valid
// (duration, focus, load) combination against the embedded exercise
// library. The shipped catalog must carry each of them to a valid draft;
// a user who picked their answers in the wizard never sees a failure.
func TestBuild_DefaultLibraryServesEveryCombination(t *testing.T) {
	library, err := catalog.LoadDefault()
	require.NoError(t, err)
	pool := library.Active()

	slotChoices := map[domain.Load][]domain.TimeSlot{
		domain.LoadLite:      {domain.TimeMorning},
		domain.LoadMid:       {domain.TimeMorning, domain.TimeDay},
		domain.LoadIntensive: {domain.TimeMorning, domain.TimeDay, domain.TimeEvening},
	}

	durations := []domain.Duration{domain.DurationShort, domain.DurationStandard, domain.DurationExtended, domain.DurationLong}
	focuses := []domain.Focus{domain.FocusSomatic, domain.FocusCognitive, domain.FocusBoundaries, domain.FocusRest, domain.FocusMixed}
	loads := []domain.Load{domain.LoadLite, domain.LoadMid, domain.LoadIntensive}

	for _, duration := range durations {
		for _, focus := range focuses {
			for _, load := range loads {
				params := testutil.NewTestParams(duration, focus, load, slotChoices[load]...)

				draft, usage, err := Build("alice", params, pool, nil)
				require.NoErrorf(t, err, "%s/%s/%s", duration, focus, load)
				assert.Truef(t, draft.IsValid, "%s/%s/%s", duration, focus, load)
				assert.Equalf(t, policy.DaysFor(duration)*policy.ExpectedSlotCount(load),
					draft.TotalSteps, "%s/%s/%s", duration, focus, load)
				assert.NotEmptyf(t, usage, "%s/%s/%s", duration, focus, load)
			}
		}
	}
}

// TestBuild_Invariants_RandomInputs property-tests the builder across random
// valid parameter combinations: every build either fails whole or satisfies
// all structural invariants.
func TestBuild_Invariants_RandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	durations := []domain.Duration{domain.DurationShort, domain.DurationStandard, domain.DurationExtended, domain.DurationLong}
	focuses := []domain.Focus{domain.FocusSomatic, domain.FocusCognitive, domain.FocusBoundaries, domain.FocusRest, domain.FocusMixed}
	loads := []domain.Load{domain.LoadLite, domain.LoadMid, domain.LoadIntensive}

	pool := testutil.BroadCatalog()

	for trial := 0; trial < 60; trial++ {
		duration := durations[rng.Intn(len(durations))]
		focus := focuses[rng.Intn(len(focuses))]
		load := loads[rng.Intn(len(loads))]

		slots := make([]domain.TimeSlot, len(domain.AllTimeSlots))
		copy(slots, domain.AllTimeSlots)
		rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })
		slots = slots[:policy.ExpectedSlotCount(load)]

		params := testutil.NewTestParams(duration, focus, load, slots...)
		userID := string(rune('a' + trial%26))

		draft, _, err := Build(userID, params, pool, nil)
		if err != nil {
			assert.True(t, errors.Is(err, ErrSelectionExhausted),
				"trial %d: only exhaustion may fail valid params, got %v", trial, err)
			continue
		}

		require.NoError(t, Validate(draft, params, pool), "trial %d", trial)

		// No time slot repeats within a day.
		for day, steps := range draft.StepsByDay() {
			seen := map[domain.TimeSlot]bool{}
			for _, step := range steps {
				assert.False(t, seen[step.TimeSlot], "trial %d day %d repeats %s", trial, day, step.TimeSlot)
				seen[step.TimeSlot] = true
			}
		}
	}
}
