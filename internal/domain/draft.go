package domain

import "time"

// DraftStep is one scheduled exercise within a draft. Immutable once built.
type DraftStep struct {
	DayNumber  int // 1-based
	SlotIndex  int // 0-based within the day
	SlotType   SlotType
	ExerciseID string
	TimeSlot   TimeSlot
	Category   Focus
	Difficulty int
}

// Draft is a complete, not-yet-approved day-by-day exercise sequence.
// It is produced atomically by the builder and never partially published.
type Draft struct {
	ID         string
	UserID     string
	Duration   Duration
	Focus      Focus
	Load       Load
	TotalDays  int
	TotalSteps int
	IsValid    bool
	Steps      []DraftStep
	CreatedAt  time.Time
}

// StepsByDay groups steps by day number, preserving slot order within a day.
func (d *Draft) StepsByDay() map[int][]DraftStep {
	byDay := make(map[int][]DraftStep, d.TotalDays)
	for _, s := range d.Steps {
		byDay[s.DayNumber] = append(byDay[s.DayNumber], s)
	}
	return byDay
}
