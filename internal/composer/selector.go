package composer

import (
	"sort"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Filter describes what a slot wants from the catalog.
type Filter struct {
	PreferredCategory domain.Focus
	Tier              domain.SlotType
	MaxDifficulty     int
}

// SelectWithFallback picks one exercise from pool, relaxing the filter in
// three tiers, first non-empty tier wins:
//
//  1. preferred category, matching priority tier, difficulty within cap
//  2. any category, matching priority tier, difficulty within cap
//  3. any category, difficulty within cap
//
// Returns false when even tier 3 is empty.
func SelectWithFallback(pool []domain.ContentItem, f Filter, seed SeedKey) (domain.ContentItem, bool) {
	tiers := [][]domain.ContentItem{
		filterPool(pool, &f.PreferredCategory, &f.Tier, f.MaxDifficulty),
		filterPool(pool, nil, &f.Tier, f.MaxDifficulty),
		filterPool(pool, nil, nil, f.MaxDifficulty),
	}
	for _, tier := range tiers {
		if len(tier) > 0 {
			return weightedChoice(tier, seed), true
		}
	}
	return domain.ContentItem{}, false
}

func filterPool(pool []domain.ContentItem, category *domain.Focus, tier *domain.SlotType, maxDifficulty int) []domain.ContentItem {
	var out []domain.ContentItem
	for _, item := range pool {
		if !item.IsActive {
			continue
		}
		if category != nil && item.Category != *category {
			continue
		}
		if tier != nil && item.PriorityTier != *tier {
			continue
		}
		if item.Difficulty > maxDifficulty {
			continue
		}
		out = append(out, item)
	}
	return out
}

// weightedChoice draws one item with probability proportional to its base
// weight. The pool is first sorted by (name, id) so input order cannot leak
// into the outcome; the generator is freshly constructed from the seed key.
// Higher weight raises the odds but never guarantees selection.
func weightedChoice(pool []domain.ContentItem, seed SeedKey) domain.ContentItem {
	sorted := make([]domain.ContentItem, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	var total float64
	for _, item := range sorted {
		total += item.BaseWeight
	}

	r := seed.rng().Float64() * total
	for _, item := range sorted {
		r -= item.BaseWeight
		if r < 0 {
			return item
		}
	}
	return sorted[len(sorted)-1]
}
