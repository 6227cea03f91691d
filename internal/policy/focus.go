package policy

import (
	"sort"

	"github.com/alexanderramin/cadence/internal/domain"
)

// focusDistribution defines how plan slots split between the dominant
// category and its complements. Ratios are configuration constants applied
// deterministically when the quota table is computed, never sampled.
type focusDistribution struct {
	Dominant      float64
	Complementary map[domain.Focus]float64
}

var focusDistributions = map[domain.Focus]focusDistribution{
	domain.FocusSomatic: {
		Dominant: 0.8,
		Complementary: map[domain.Focus]float64{
			domain.FocusCognitive: 0.5,
			domain.FocusRest:      0.5,
		},
	},
	domain.FocusCognitive: {
		Dominant: 0.8,
		Complementary: map[domain.Focus]float64{
			domain.FocusSomatic:    0.5,
			domain.FocusBoundaries: 0.5,
		},
	},
	domain.FocusBoundaries: {
		Dominant: 0.8,
		Complementary: map[domain.Focus]float64{
			domain.FocusCognitive: 0.75,
			domain.FocusRest:      0.25,
		},
	},
	domain.FocusRest: {
		Dominant: 0.9,
		Complementary: map[domain.Focus]float64{
			domain.FocusSomatic: 1.0,
		},
	},
	// MIXED has no dominant category of its own; all slots spread across
	// the real catalog categories.
	domain.FocusMixed: {
		Dominant: 0,
		Complementary: map[domain.Focus]float64{
			domain.FocusSomatic:    0.35,
			domain.FocusCognitive:  0.35,
			domain.FocusBoundaries: 0.15,
			domain.FocusRest:       0.15,
		},
	},
}

// DominantShare returns the fraction of slots reserved for the focus's own
// category.
func DominantShare(focus domain.Focus) float64 {
	return focusDistributions[focus].Dominant
}

// CategoryQuota apportions totalSlots across categories for a focus.
// The dominant category gets its share rounded down; the remainder splits
// across complements, with any leftover slot going back to the dominant
// category (or to the heaviest complement when there is no dominant one).
// For plans with more than one slot, at least one complementary slot is
// guaranteed so no plan is fully monochrome.
func CategoryQuota(focus domain.Focus, totalSlots int) map[domain.Focus]int {
	dist := focusDistributions[focus]
	quota := make(map[domain.Focus]int)

	dominant := int(float64(totalSlots) * dist.Dominant)
	if dist.Dominant > 0 {
		quota[focus] = dominant
	}

	remaining := totalSlots - dominant
	for _, cat := range sortedComplements(dist.Complementary) {
		n := int(float64(remaining) * dist.Complementary[cat])
		quota[cat] += n
	}

	assigned := 0
	for _, n := range quota {
		assigned += n
	}
	if assigned < totalSlots {
		if dist.Dominant > 0 {
			quota[focus] += totalSlots - assigned
		} else {
			quota[heaviestComplement(dist)] += totalSlots - assigned
		}
	}

	if dist.Dominant > 0 && totalSlots > 1 && quota[focus] == totalSlots {
		for _, cat := range sortedComplements(dist.Complementary) {
			if quota[cat] == 0 {
				quota[cat] = 1
				quota[focus]--
				break
			}
		}
	}

	return quota
}

// heaviestComplement returns the complement with the largest weight, name
// as tie-break.
func heaviestComplement(dist focusDistribution) domain.Focus {
	best := domain.Focus("")
	bestWeight := -1.0
	for _, cat := range sortedComplements(dist.Complementary) {
		if dist.Complementary[cat] > bestWeight {
			best = cat
			bestWeight = dist.Complementary[cat]
		}
	}
	return best
}

// NextCategory returns the category the weighting schedule asks for next:
// the dominant focus while it has budget, then the complement with the
// largest remaining count (name as tie-break). Exhausted quotas fall back
// to the dominant focus. The quota is not modified; callers settle the
// slot with ConsumeQuota once they know which category the catalog could
// actually serve.
func NextCategory(quota map[domain.Focus]int, focus domain.Focus) domain.Focus {
	if quota[focus] > 0 {
		return focus
	}

	best := domain.Focus("")
	bestCount := 0
	for _, cat := range sortedQuotaKeys(quota) {
		if quota[cat] > bestCount {
			best = cat
			bestCount = quota[cat]
		}
	}
	if best == "" {
		return focus
	}
	return best
}

// ConsumeQuota debits one filled slot. The category that actually landed in
// the plan pays while it still has budget, so a fallback pick reduces that
// category's later demand instead of eating the requested category's share.
// Once the served category is out of budget, the requested category absorbs
// the debit and the schedule keeps advancing.
func ConsumeQuota(quota map[domain.Focus]int, requested, served domain.Focus) {
	if quota[served] > 0 {
		quota[served]--
		return
	}
	quota[requested]--
}

func sortedComplements(m map[domain.Focus]float64) []domain.Focus {
	keys := make([]domain.Focus, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedQuotaKeys(m map[domain.Focus]int) []domain.Focus {
	keys := make([]domain.Focus, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
