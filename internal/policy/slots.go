// Package policy holds the pure lookup tables behind plan composition:
// slot counts per load, canonical time slots, per-day slot structure,
// duration day counts, difficulty progression and focus weighting.
// Everything here is stateless and deterministic.
package policy

import "github.com/alexanderramin/cadence/internal/domain"

var slotStructures = map[domain.Load][]domain.SlotType{
	domain.LoadLite:      {domain.SlotCore},
	domain.LoadMid:       {domain.SlotCore, domain.SlotSupport},
	domain.LoadIntensive: {domain.SlotCore, domain.SlotSupport, domain.SlotRest},
}

// ExpectedSlotCount returns the number of daily slots for a load tier.
func ExpectedSlotCount(load domain.Load) int {
	return len(slotStructures[load])
}

// CanonicalSlots returns the fixed time-slot set for loads that do not let
// the user choose. INTENSIVE fills the whole day; LITE and MID return nil.
func CanonicalSlots(load domain.Load) []domain.TimeSlot {
	if load == domain.LoadIntensive {
		return []domain.TimeSlot{domain.TimeMorning, domain.TimeDay, domain.TimeEvening}
	}
	return nil
}

// SlotStructure returns the ordered slot types filled each day for a load.
// The returned slice is a copy; callers may mutate it.
func SlotStructure(load domain.Load) []domain.SlotType {
	src := slotStructures[load]
	out := make([]domain.SlotType, len(src))
	copy(out, src)
	return out
}

// DayStructures returns the slot-type sequence for every day of a plan.
// The structure depends only on load, never on content or history.
func DayStructures(load domain.Load, totalDays int) [][]domain.SlotType {
	days := make([][]domain.SlotType, totalDays)
	for d := range days {
		days[d] = SlotStructure(load)
	}
	return days
}
