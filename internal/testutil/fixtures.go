package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/cadence/internal/domain"
)

var itemCounter atomic.Int64

// ItemOption customizes a test content item.
type ItemOption func(*domain.ContentItem)

func WithDifficulty(d int) ItemOption {
	return func(i *domain.ContentItem) { i.Difficulty = d }
}

func WithCooldown(days int) ItemOption {
	return func(i *domain.ContentItem) { i.CooldownDays = days }
}

func WithWeight(w float64) ItemOption {
	return func(i *domain.ContentItem) { i.BaseWeight = w }
}

func WithTier(t domain.SlotType) ItemOption {
	return func(i *domain.ContentItem) { i.PriorityTier = t }
}

func Inactive() ItemOption {
	return func(i *domain.ContentItem) { i.IsActive = false }
}

// NewTestItem builds an active difficulty-1 CORE item in the given category.
func NewTestItem(category domain.Focus, opts ...ItemOption) domain.ContentItem {
	n := itemCounter.Add(1)
	item := domain.ContentItem{
		ID:           fmt.Sprintf("item-%03d", n),
		Name:         fmt.Sprintf("Test Exercise %d", n),
		Category:     category,
		Difficulty:   1,
		CooldownDays: 0,
		BaseWeight:   1.0,
		PriorityTier: domain.SlotCore,
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// NewTestParams builds a complete parameter set with a slot count matching
// the load.
func NewTestParams(duration domain.Duration, focus domain.Focus, load domain.Load, slots ...domain.TimeSlot) domain.PlanParameters {
	return domain.PlanParameters{
		Duration:           &duration,
		Focus:              &focus,
		Load:               &load,
		PreferredTimeSlots: slots,
	}
}

// BroadCatalog returns a pool with several items per category so fallback
// tiers never empty out in builder tests.
func BroadCatalog() []domain.ContentItem {
	var pool []domain.ContentItem
	categories := []domain.Focus{domain.FocusSomatic, domain.FocusCognitive, domain.FocusBoundaries, domain.FocusRest}
	tiers := []domain.SlotType{domain.SlotCore, domain.SlotSupport, domain.SlotRest}
	for _, c := range categories {
		for _, t := range tiers {
			pool = append(pool, NewTestItem(c, WithTier(t)))
			pool = append(pool, NewTestItem(c, WithTier(t), WithDifficulty(2)))
		}
	}
	return pool
}
