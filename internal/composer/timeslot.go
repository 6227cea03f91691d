package composer

import "github.com/alexanderramin/cadence/internal/domain"

// slotTimePreferences orders time-of-day candidates per slot type. CORE
// work lands early, REST late.
var slotTimePreferences = map[domain.SlotType][]domain.TimeSlot{
	domain.SlotCore:    {domain.TimeMorning, domain.TimeDay, domain.TimeEvening},
	domain.SlotSupport: {domain.TimeDay, domain.TimeEvening, domain.TimeMorning},
	domain.SlotRest:    {domain.TimeEvening, domain.TimeDay, domain.TimeMorning},
}

// AssignTimeSlot picks a time slot for slotType from the user's preferred
// set, avoiding slots already used today when possible. When every
// preferred slot is taken it falls back to repeating one; it never returns
// a slot outside preferred. As long as the preferred set has at least as
// many distinct entries as the day has slots, no day repeats a time slot.
func AssignTimeSlot(slotType domain.SlotType, preferred []domain.TimeSlot, usedToday map[domain.TimeSlot]bool) domain.TimeSlot {
	prefSet := make(map[domain.TimeSlot]bool, len(preferred))
	for _, s := range preferred {
		prefSet[s] = true
	}

	for _, candidate := range slotTimePreferences[slotType] {
		if prefSet[candidate] && !usedToday[candidate] {
			return candidate
		}
	}
	for _, candidate := range slotTimePreferences[slotType] {
		if prefSet[candidate] {
			return candidate
		}
	}
	return preferred[0]
}
