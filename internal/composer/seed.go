package composer

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SeedKey identifies one selection decision. Identical keys always produce
// identical draws; distinct keys are independent.
type SeedKey struct {
	UserID    string
	DayIndex  int
	SlotIndex int
}

// rng constructs a fresh generator scoped to this key. Never shared and
// never globally seeded, so builds are reproducible and parallel-safe
// across users. The sequence is stable within a deployment only.
func (k SeedKey) rng() *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d:%d", k.UserID, k.DayIndex, k.SlotIndex)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
