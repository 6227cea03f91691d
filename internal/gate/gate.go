// Package gate validates proposed plan-parameter updates before they are
// ever persisted. Apply is a pure decision function: it either accepts the
// whole update (returning the new parameter set) or rejects it with a
// user-facing correction, leaving the known parameters untouched.
package gate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/policy"
)

// RejectReason enumerates recoverable gate rejections.
type RejectReason string

const (
	ReasonSlotCountMismatch RejectReason = "SLOT_COUNT_MISMATCH"
	ReasonInvalidTimeSlot   RejectReason = "INVALID_TIME_SLOT"
)

// ProposedUpdate is a parameter delta extracted by the agent boundary.
// Nil fields mean "not mentioned". TimeSlots distinguishes absent (nil)
// from explicitly empty.
type ProposedUpdate struct {
	Duration  *domain.Duration
	Focus     *domain.Focus
	Load      *domain.Load
	TimeSlots *[]domain.TimeSlot
}

// Empty reports whether the update carries no changes at all.
func (u ProposedUpdate) Empty() bool {
	return u.Duration == nil && u.Focus == nil && u.Load == nil && u.TimeSlots == nil
}

// Result is the outcome of one gate decision.
type Result struct {
	Accepted             bool
	Params               domain.PlanParameters
	ReadyForConfirmation bool
	Reason               RejectReason
	Correction           string
}

// Apply validates and commits update against known, atomically. Rules:
//
//   - A load change clears the stored slot set before the rest of the
//     update is validated in the same call.
//   - INTENSIVE discards any user-supplied slots and force-sets the
//     canonical MORNING/DAY/EVENING set; a self-heal, never an error.
//     Replacing slots the user had chosen, whether carried in this update
//     or stored from before the load change, surfaces a correction.
//   - MID requires exactly 2 distinct slots, LITE exactly 1; anything else
//     rejects with SLOT_COUNT_MISMATCH and leaves known untouched.
//
// Readiness is true iff duration, focus and load are all set and the slot
// set's cardinality equals the load's expected slot count.
func Apply(known domain.PlanParameters, update ProposedUpdate) Result {
	next := known.Clone()
	var corrections []string

	loadChanged := update.Load != nil && (next.Load == nil || *next.Load != *update.Load)
	var cleared []domain.TimeSlot
	if loadChanged {
		cleared = next.PreferredTimeSlots
		next.PreferredTimeSlots = nil
	}

	if update.Duration != nil {
		d := *update.Duration
		next.Duration = &d
	}
	if update.Focus != nil {
		f := *update.Focus
		next.Focus = &f
	}
	if update.Load != nil {
		l := *update.Load
		next.Load = &l
	}

	if update.TimeSlots != nil {
		slots, ok := normalizeSlots(*update.TimeSlots)
		if !ok {
			return rejected(known, ReasonInvalidTimeSlot,
				"One of the time slots is not recognized. Valid slots are MORNING, DAY and EVENING.")
		}
		next.PreferredTimeSlots = slots
	}

	if next.Load != nil {
		switch *next.Load {
		case domain.LoadIntensive:
			canonical := policy.CanonicalSlots(domain.LoadIntensive)
			if !slotsEqual(next.PreferredTimeSlots, canonical) {
				switch {
				case len(next.PreferredTimeSlots) > 0:
					corrections = append(corrections,
						"An intensive plan always uses all three time slots, so your selection was replaced with MORNING, DAY and EVENING.")
				case len(cleared) > 0:
					corrections = append(corrections,
						"An intensive plan always uses all three time slots, so your stored time slots were replaced with MORNING, DAY and EVENING.")
				}
				next.PreferredTimeSlots = canonical
			}
		case domain.LoadMid, domain.LoadLite:
			want := policy.ExpectedSlotCount(*next.Load)
			if len(next.PreferredTimeSlots) > 0 && len(next.PreferredTimeSlots) != want {
				return rejected(known, ReasonSlotCountMismatch, fmt.Sprintf(
					"A %s plan needs exactly %d time slot%s, but %d were given. Please pick %d of MORNING, DAY, EVENING.",
					strings.ToLower(string(*next.Load)), want, plural(want), len(next.PreferredTimeSlots), want))
			}
		}
	}

	return Result{
		Accepted:             true,
		Params:               next,
		ReadyForConfirmation: readiness(next),
		Correction:           strings.Join(corrections, " "),
	}
}

// readiness is the single place that may decide confirmation readiness.
func readiness(p domain.PlanParameters) bool {
	if !p.IsComplete() {
		return false
	}
	return len(p.PreferredTimeSlots) == policy.ExpectedSlotCount(*p.Load)
}

func rejected(known domain.PlanParameters, reason RejectReason, correction string) Result {
	return Result{
		Accepted:   false,
		Params:     known,
		Reason:     reason,
		Correction: correction,
	}
}

// normalizeSlots dedupes and canonically orders a slot set, reporting
// whether every entry is a known time slot.
func normalizeSlots(raw []domain.TimeSlot) ([]domain.TimeSlot, bool) {
	seen := make(map[domain.TimeSlot]bool, len(raw))
	var out []domain.TimeSlot
	for _, s := range raw {
		if !domain.ValidTimeSlots[s] {
			return nil, false
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return slotOrder(out[i]) < slotOrder(out[j]) })
	return out, true
}

func slotOrder(s domain.TimeSlot) int {
	switch s {
	case domain.TimeMorning:
		return 0
	case domain.TimeDay:
		return 1
	default:
		return 2
	}
}

func slotsEqual(a, b []domain.TimeSlot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
