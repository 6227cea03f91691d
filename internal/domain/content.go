package domain

// ContentItem is a read-only catalog entry owned by the content library.
// The draft engine never mutates it.
type ContentItem struct {
	ID           string
	Name         string
	Category     Focus
	Difficulty   int // 1..3
	CooldownDays int // minimum day gap before reuse; 0 = no cooldown
	BaseWeight   float64
	PriorityTier SlotType
	IsActive     bool
}

// UsageRecord tracks when an exercise was last scheduled for a user,
// expressed as a day index within the active plan horizon.
type UsageRecord struct {
	UserID      string
	ExerciseID  string
	LastUsedDay int
}
