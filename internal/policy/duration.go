package policy

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
)

var durationDays = map[domain.Duration]int{
	domain.DurationShort:    7,
	domain.DurationStandard: 14,
	domain.DurationExtended: 21,
	domain.DurationLong:     90,
}

// DaysFor returns the canonical day count for a duration.
func DaysFor(d domain.Duration) int {
	return durationDays[d]
}

// CanonicalPlanDays is the closed set of valid plan lengths.
var CanonicalPlanDays = map[int]bool{7: true, 14: true, 21: true, 90: true}

// AssertCanonicalDays rejects plan lengths outside the canonical set.
func AssertCanonicalDays(totalDays int) error {
	if !CanonicalPlanDays[totalDays] {
		return fmt.Errorf("invalid total_days=%d", totalDays)
	}
	return nil
}
