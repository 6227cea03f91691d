package policy

import "github.com/alexanderramin/cadence/internal/domain"

// difficultyCaps maps a duration to its week-indexed max-difficulty table.
// The last entry holds for all later weeks. Caps never decrease, so
// difficulty never regresses within a plan.
var difficultyCaps = map[domain.Duration][]int{
	domain.DurationShort:    {1, 2},
	domain.DurationStandard: {1, 2},
	domain.DurationExtended: {1, 2, 3},
	domain.DurationLong:     {1, 1, 2, 2, 3},
}

// MaxDifficultyForDay returns the difficulty ceiling for a 0-based day
// index, derived from the plan's week index.
func MaxDifficultyForDay(dayIndex int, d domain.Duration) int {
	caps := difficultyCaps[d]
	if len(caps) == 0 {
		return 2
	}
	week := dayIndex / 7
	if week >= len(caps) {
		week = len(caps) - 1
	}
	return caps[week]
}
