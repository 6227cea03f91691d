// Package composer turns validated plan parameters and a catalog snapshot
// into a complete draft: candidate selection with tiered fallback, seeded
// weighted choice, time-slot assignment and final structural validation.
// Everything is pure and synchronous; persistence happens elsewhere.
package composer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/policy"
)

// Build assembles a full draft for userID from already-materialized
// snapshots of the catalog and usage history. It re-checks the gate's
// preconditions independently; a violation here is a caller-contract
// breach surfaced as *PreconditionError, never shown to the end user.
//
// Identical inputs always yield an identical draft. The returned usage
// records reflect the last use of every exercise scheduled by this build;
// the caller persists them only after accepting the draft. ID and
// CreatedAt are left zero for the caller to stamp, keeping the build
// replayable.
func Build(
	userID string,
	params domain.PlanParameters,
	catalog []domain.ContentItem,
	usageHistory []domain.UsageRecord,
) (*domain.Draft, []domain.UsageRecord, error) {
	if err := checkPreconditions(params); err != nil {
		return nil, nil, err
	}

	duration := *params.Duration
	focus := *params.Focus
	load := *params.Load

	totalDays := policy.DaysFor(duration)
	dayStructures := policy.DayStructures(load, totalDays)
	totalSlots := totalDays * policy.ExpectedSlotCount(load)
	quota := policy.CategoryQuota(focus, totalSlots)

	lastUsed := make(map[string]int, len(usageHistory))
	for _, u := range usageHistory {
		if u.UserID == userID {
			lastUsed[u.ExerciseID] = u.LastUsedDay
		}
	}

	steps := make([]domain.DraftStep, 0, totalSlots)

	for d := 1; d <= totalDays; d++ {
		maxDifficulty := policy.MaxDifficultyForDay(d-1, duration)
		usedToday := make(map[domain.TimeSlot]bool, len(dayStructures[d-1]))

		for s, slotType := range dayStructures[d-1] {
			category := policy.NextCategory(quota, focus)

			pool := cooldownFiltered(catalog, lastUsed, d)
			item, ok := SelectWithFallback(pool, Filter{
				PreferredCategory: category,
				Tier:              slotType,
				MaxDifficulty:     maxDifficulty,
			}, SeedKey{UserID: userID, DayIndex: d - 1, SlotIndex: s})
			if !ok {
				return nil, nil, fmt.Errorf("day %d slot %d (%s): %w", d, s, slotType, ErrSelectionExhausted)
			}

			// The served category pays for the slot, not the requested one:
			// when cooldowns push a pick into another category, that
			// category's budget shrinks and the focus share stays owed.
			policy.ConsumeQuota(quota, category, item.Category)

			timeSlot := AssignTimeSlot(slotType, params.PreferredTimeSlots, usedToday)
			usedToday[timeSlot] = true
			lastUsed[item.ID] = d

			steps = append(steps, domain.DraftStep{
				DayNumber:  d,
				SlotIndex:  s,
				SlotType:   slotType,
				ExerciseID: item.ID,
				TimeSlot:   timeSlot,
				Category:   item.Category,
				Difficulty: item.Difficulty,
			})
		}
	}

	draft := &domain.Draft{
		UserID:     userID,
		Duration:   duration,
		Focus:      focus,
		Load:       load,
		TotalDays:  totalDays,
		TotalSteps: len(steps),
		Steps:      steps,
	}

	if err := Validate(draft, params, catalog); err != nil {
		return nil, nil, err
	}
	draft.IsValid = true

	return draft, usageAsRecords(userID, lastUsed), nil
}

// checkPreconditions re-validates what the gate already enforced. Defense
// in depth: the builder trusts nobody with its structural invariants.
func checkPreconditions(params domain.PlanParameters) error {
	if !params.IsComplete() {
		return &PreconditionError{Detail: fmt.Sprintf("base parameters missing: %v", params.Missing())}
	}
	want := policy.ExpectedSlotCount(*params.Load)
	if len(params.PreferredTimeSlots) != want {
		return &PreconditionError{Detail: fmt.Sprintf(
			"load %s expects %d time slots, got %d", *params.Load, want, len(params.PreferredTimeSlots))}
	}
	seen := make(map[domain.TimeSlot]bool, len(params.PreferredTimeSlots))
	for _, s := range params.PreferredTimeSlots {
		if !domain.ValidTimeSlots[s] {
			return &PreconditionError{Detail: fmt.Sprintf("unknown time slot %q", s)}
		}
		if seen[s] {
			return &PreconditionError{Detail: fmt.Sprintf("duplicate time slot %q", s)}
		}
		seen[s] = true
	}
	return nil
}

// cooldownFiltered excludes exercises still inside their cooldown window on
// the given day. A cooldown of N blocks reuse until more than N days have
// passed since the last use.
func cooldownFiltered(catalog []domain.ContentItem, lastUsed map[string]int, day int) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(catalog))
	for _, item := range catalog {
		if last, ok := lastUsed[item.ID]; ok && day-last <= item.CooldownDays {
			continue
		}
		out = append(out, item)
	}
	return out
}

func usageAsRecords(userID string, lastUsed map[string]int) []domain.UsageRecord {
	ids := make([]string, 0, len(lastUsed))
	for id := range lastUsed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	records := make([]domain.UsageRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, domain.UsageRecord{
			UserID:      userID,
			ExerciseID:  id,
			LastUsedDay: lastUsed[id],
		})
	}
	return records
}
