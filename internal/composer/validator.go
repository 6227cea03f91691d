package composer

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/policy"
)

// Validate certifies a completed draft against its parameters and the
// catalog snapshot it was built from. Any violation means the builder
// itself misbehaved, so the error is the fatal *DraftStructureError, not a
// recoverable condition.
//
// The focus weighting is enforced by the quota schedule at selection time;
// tiered fallback may legally reshape the final category counts when
// cooldowns thin a category out. The certification therefore checks every
// step against the catalog (known exercise, matching category and
// difficulty, cooldown spacing honored) rather than re-deriving a
// statistical target the builder was allowed to bend.
func Validate(draft *domain.Draft, params domain.PlanParameters, pool []domain.ContentItem) error {
	var violations []string

	if len(draft.Steps) == 0 {
		return &DraftStructureError{Violations: []string{"draft has no steps"}}
	}
	if err := checkPreconditions(params); err != nil {
		return &DraftStructureError{Violations: []string{err.Error()}}
	}

	duration := *params.Duration
	load := *params.Load
	totalDays := policy.DaysFor(duration)
	expectedPerDay := policy.ExpectedSlotCount(load)
	expectedTotal := totalDays * expectedPerDay

	if draft.TotalDays != totalDays {
		violations = append(violations, fmt.Sprintf(
			"total days %d, expected %d for %s", draft.TotalDays, totalDays, duration))
	}
	if len(draft.Steps) != expectedTotal {
		violations = append(violations, fmt.Sprintf(
			"total steps %d, expected %d", len(draft.Steps), expectedTotal))
	}
	if draft.TotalSteps != len(draft.Steps) {
		violations = append(violations, fmt.Sprintf(
			"declared step count %d does not match actual %d", draft.TotalSteps, len(draft.Steps)))
	}

	structure := policy.SlotStructure(load)
	byDay := draft.StepsByDay()
	for day := 1; day <= totalDays; day++ {
		daySteps := byDay[day]
		if len(daySteps) != expectedPerDay {
			violations = append(violations, fmt.Sprintf(
				"day %d has %d steps, expected %d", day, len(daySteps), expectedPerDay))
			continue
		}
		maxDifficulty := policy.MaxDifficultyForDay(day-1, duration)
		for i, step := range daySteps {
			if step.SlotType != structure[i] {
				violations = append(violations, fmt.Sprintf(
					"day %d slot %d is %s, expected %s", day, i, step.SlotType, structure[i]))
			}
			if step.Difficulty > maxDifficulty {
				violations = append(violations, fmt.Sprintf(
					"day %d slot %d difficulty %d exceeds cap %d", day, i, step.Difficulty, maxDifficulty))
			}
			if !domain.ValidTimeSlots[step.TimeSlot] {
				violations = append(violations, fmt.Sprintf(
					"day %d slot %d has invalid time slot %q", day, i, step.TimeSlot))
			}
		}
	}

	violations = append(violations, checkCatalogConsistency(draft, pool)...)
	violations = append(violations, checkCooldownSpacing(draft, pool)...)

	if len(violations) > 0 {
		return &DraftStructureError{Violations: violations}
	}
	return nil
}

// checkCatalogConsistency verifies every step against the catalog item it
// references: the exercise must exist, be active, and the step must carry
// that item's category and difficulty unchanged.
func checkCatalogConsistency(draft *domain.Draft, pool []domain.ContentItem) []string {
	byID := make(map[string]domain.ContentItem, len(pool))
	for _, item := range pool {
		byID[item.ID] = item
	}

	var violations []string
	for _, step := range draft.Steps {
		item, ok := byID[step.ExerciseID]
		if !ok {
			violations = append(violations, fmt.Sprintf(
				"day %d slot %d references unknown exercise %q", step.DayNumber, step.SlotIndex, step.ExerciseID))
			continue
		}
		if !item.IsActive {
			violations = append(violations, fmt.Sprintf(
				"day %d slot %d uses inactive exercise %q", step.DayNumber, step.SlotIndex, step.ExerciseID))
		}
		if step.Category != item.Category {
			violations = append(violations, fmt.Sprintf(
				"day %d slot %d carries category %s, exercise %q is %s",
				step.DayNumber, step.SlotIndex, step.Category, step.ExerciseID, item.Category))
		}
		if step.Difficulty != item.Difficulty {
			violations = append(violations, fmt.Sprintf(
				"day %d slot %d carries difficulty %d, exercise %q is %d",
				step.DayNumber, step.SlotIndex, step.Difficulty, step.ExerciseID, item.Difficulty))
		}
	}
	return violations
}

// checkCooldownSpacing verifies that no exercise recurs within the draft
// before its cooldown has elapsed. A cooldown of N demands a gap of more
// than N days between uses; even a zero cooldown forbids same-day reuse.
func checkCooldownSpacing(draft *domain.Draft, pool []domain.ContentItem) []string {
	cooldowns := make(map[string]int, len(pool))
	for _, item := range pool {
		cooldowns[item.ID] = item.CooldownDays
	}

	lastUsed := make(map[string]int)
	var violations []string
	for _, step := range draft.Steps {
		if last, ok := lastUsed[step.ExerciseID]; ok {
			if step.DayNumber-last <= cooldowns[step.ExerciseID] {
				violations = append(violations, fmt.Sprintf(
					"exercise %q reused on day %d, only %d day(s) after day %d (cooldown %d)",
					step.ExerciseID, step.DayNumber, step.DayNumber-last, last, cooldowns[step.ExerciseID]))
			}
		}
		lastUsed[step.ExerciseID] = step.DayNumber
	}
	return violations
}
