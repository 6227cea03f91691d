package catalog

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLibraryJSON = `{
  "inventory": [
    {
      "id": "breath-box",
      "name": "Box breathing",
      "category": "somatic",
      "difficulty": 1,
      "cooldown_days": 0,
      "base_weight": 1.5,
      "priority_tier": "CORE",
      "is_active": true
    },
    {
      "id": "journal-dump",
      "name": "Evening brain dump",
      "category": "cognitive",
      "difficulty": 2,
      "cooldown_days": 3,
      "base_weight": 1.0,
      "priority_tier": "SUPPORT",
      "is_active": false
    }
  ]
}`

func TestParse_ValidLibrary(t *testing.T) {
	lib, err := Parse([]byte(validLibraryJSON))
	require.NoError(t, err)

	assert.Equal(t, 2, lib.Len())
	assert.Len(t, lib.All(), 2)

	item, ok := lib.ByID("breath-box")
	require.True(t, ok)
	assert.Equal(t, "Box breathing", item.Name)
	assert.Equal(t, domain.FocusSomatic, item.Category)
	assert.Equal(t, domain.SlotCore, item.PriorityTier)
	assert.InDelta(t, 1.5, item.BaseWeight, 1e-9)
}

func TestParse_ActiveExcludesInactive(t *testing.T) {
	lib, err := Parse([]byte(validLibraryJSON))
	require.NoError(t, err)

	active := lib.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "breath-box", active[0].ID)
}

func TestParse_DuplicateID(t *testing.T) {
	data := `{"inventory": [
		{"id": "x", "name": "a", "category": "rest", "difficulty": 1, "cooldown_days": 0, "base_weight": 1, "priority_tier": "REST", "is_active": true},
		{"id": "x", "name": "b", "category": "rest", "difficulty": 1, "cooldown_days": 0, "base_weight": 1, "priority_tier": "REST", "is_active": true}
	]}`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	data := `{"inventory": [], "version": 2}`
	_, err := Parse([]byte(data))
	assert.Error(t, err)
}

func TestParse_ItemValidation(t *testing.T) {
	item := func(id, name, category string, difficulty, cooldown int, weight float64, tier string) string {
		return fmt.Sprintf(`{"inventory": [{
			"id": %q, "name": %q, "category": %q,
			"difficulty": %d, "cooldown_days": %d, "base_weight": %v,
			"priority_tier": %q, "is_active": true
		}]}`, id, name, category, difficulty, cooldown, weight, tier)
	}

	cases := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"missing id", item("", "X", "somatic", 1, 0, 1, "CORE"), "missing id"},
		{"missing name", item("x", "", "somatic", 1, 0, 1, "CORE"), "missing name"},
		{"unknown category", item("x", "X", "spiritual", 1, 0, 1, "CORE"), "focus"},
		{"mixed category", item("x", "X", "mixed", 1, 0, 1, "CORE"), "not an item category"},
		{"difficulty too low", item("x", "X", "somatic", 0, 0, 1, "CORE"), "out of range"},
		{"difficulty too high", item("x", "X", "somatic", 4, 0, 1, "CORE"), "out of range"},
		{"negative cooldown", item("x", "X", "somatic", 1, -1, 1, "CORE"), "negative"},
		{"zero weight", item("x", "X", "somatic", 1, 0, 0, "CORE"), "base_weight"},
		{"bad tier", item("x", "X", "somatic", 1, 0, 1, "PRIMARY"), "priority_tier"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadDefault(t *testing.T) {
	lib, err := LoadDefault()
	require.NoError(t, err)
	assert.Greater(t, lib.Len(), 0)

	// The shipped library must be able to cover every category and tier so
	// builds never exhaust on a fresh install.
	byCategoryTier := make(map[domain.Focus]map[domain.SlotType]bool)
	for _, item := range lib.Active() {
		if byCategoryTier[item.Category] == nil {
			byCategoryTier[item.Category] = make(map[domain.SlotType]bool)
		}
		byCategoryTier[item.Category][item.PriorityTier] = true
	}
	for _, cat := range []domain.Focus{domain.FocusSomatic, domain.FocusCognitive, domain.FocusBoundaries, domain.FocusRest} {
		require.Contains(t, byCategoryTier, cat)
	}
}

func TestLoadFile_MissingPath(t *testing.T) {
	_, err := LoadFile("/nonexistent/library.json")
	assert.Error(t, err)
}
