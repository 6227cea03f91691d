// Package catalog loads the read-only exercise library. The library is
// owned by the content team and shipped as JSON; this package only parses,
// validates and indexes it.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/cadence/internal/domain"
)

//go:embed default_library.json
var defaultLibrary []byte

// libraryFile is the on-disk JSON shape.
type libraryFile struct {
	Inventory []libraryItem `json:"inventory"`
}

type libraryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Difficulty   int     `json:"difficulty"`
	CooldownDays int     `json:"cooldown_days"`
	BaseWeight   float64 `json:"base_weight"`
	PriorityTier string  `json:"priority_tier"`
	IsActive     bool    `json:"is_active"`
}

// Library is an immutable, indexed view of the content inventory.
type Library struct {
	items []domain.ContentItem
	byID  map[string]domain.ContentItem
}

// LoadFile reads and validates a library JSON file from disk.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content library: %w", err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing content library %s: %w", path, err)
	}
	return lib, nil
}

// LoadDefault parses the library embedded in the binary.
func LoadDefault() (*Library, error) {
	return Parse(defaultLibrary)
}

// Parse decodes and validates library JSON. Unknown fields are rejected so
// schema drift surfaces immediately instead of silently dropping data.
func Parse(data []byte) (*Library, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var file libraryFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding library json: %w", err)
	}

	lib := &Library{byID: make(map[string]domain.ContentItem, len(file.Inventory))}
	for i, raw := range file.Inventory {
		item, err := convertItem(raw)
		if err != nil {
			return nil, fmt.Errorf("inventory[%d] (%s): %w", i, raw.ID, err)
		}
		if _, dup := lib.byID[item.ID]; dup {
			return nil, fmt.Errorf("inventory[%d]: duplicate id %q", i, item.ID)
		}
		lib.items = append(lib.items, item)
		lib.byID[item.ID] = item
	}
	return lib, nil
}

func convertItem(raw libraryItem) (domain.ContentItem, error) {
	if raw.ID == "" {
		return domain.ContentItem{}, fmt.Errorf("missing id")
	}
	if raw.Name == "" {
		return domain.ContentItem{}, fmt.Errorf("missing name")
	}
	category, err := domain.ParseFocus(raw.Category)
	if err != nil {
		return domain.ContentItem{}, err
	}
	if category == domain.FocusMixed {
		return domain.ContentItem{}, fmt.Errorf("mixed is a focus, not an item category")
	}
	if raw.Difficulty < 1 || raw.Difficulty > 3 {
		return domain.ContentItem{}, fmt.Errorf("difficulty %d out of range 1..3", raw.Difficulty)
	}
	if raw.CooldownDays < 0 {
		return domain.ContentItem{}, fmt.Errorf("negative cooldown_days %d", raw.CooldownDays)
	}
	if raw.BaseWeight <= 0 {
		return domain.ContentItem{}, fmt.Errorf("base_weight must be > 0, got %v", raw.BaseWeight)
	}
	tier := domain.SlotType(raw.PriorityTier)
	switch tier {
	case domain.SlotCore, domain.SlotSupport, domain.SlotRest:
	default:
		return domain.ContentItem{}, fmt.Errorf("invalid priority_tier %q", raw.PriorityTier)
	}

	return domain.ContentItem{
		ID:           raw.ID,
		Name:         raw.Name,
		Category:     category,
		Difficulty:   raw.Difficulty,
		CooldownDays: raw.CooldownDays,
		BaseWeight:   raw.BaseWeight,
		PriorityTier: tier,
		IsActive:     raw.IsActive,
	}, nil
}

// All returns every item, active or not, in file order.
func (l *Library) All() []domain.ContentItem {
	out := make([]domain.ContentItem, len(l.items))
	copy(out, l.items)
	return out
}

// Active returns only the items eligible for scheduling.
func (l *Library) Active() []domain.ContentItem {
	var out []domain.ContentItem
	for _, item := range l.items {
		if item.IsActive {
			out = append(out, item)
		}
	}
	return out
}

// ByID looks up an item by its identifier.
func (l *Library) ByID(id string) (domain.ContentItem, bool) {
	item, ok := l.byID[id]
	return item, ok
}

// Len returns the total inventory size.
func (l *Library) Len() int {
	return len(l.items)
}
