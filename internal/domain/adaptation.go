package domain

import (
	"fmt"
	"time"
)

// AdaptationIntent enumerates the supported changes to a live plan.
type AdaptationIntent string

const (
	IntentReduceDailyLoad    AdaptationIntent = "REDUCE_DAILY_LOAD"
	IntentIncreaseDailyLoad  AdaptationIntent = "INCREASE_DAILY_LOAD"
	IntentLowerDifficulty    AdaptationIntent = "LOWER_DIFFICULTY"
	IntentIncreaseDifficulty AdaptationIntent = "INCREASE_DIFFICULTY"
	IntentExtendDuration     AdaptationIntent = "EXTEND_PLAN_DURATION"
	IntentShortenDuration    AdaptationIntent = "SHORTEN_PLAN_DURATION"
	IntentPausePlan          AdaptationIntent = "PAUSE_PLAN"
	IntentResumePlan         AdaptationIntent = "RESUME_PLAN"
	IntentChangeMainCategory AdaptationIntent = "CHANGE_MAIN_CATEGORY"
)

// AdaptationCategory groups intents for eligibility checks and analytics.
type AdaptationCategory string

const (
	CategoryLoadAdjustment       AdaptationCategory = "LOAD_ADJUSTMENT"
	CategoryDifficultyAdjustment AdaptationCategory = "DIFFICULTY_ADJUSTMENT"
	CategoryDurationAdjustment   AdaptationCategory = "DURATION_ADJUSTMENT"
	CategoryExecutionState       AdaptationCategory = "EXECUTION_STATE"
	CategoryFocusChange          AdaptationCategory = "FOCUS_CHANGE"
)

// AdaptationMeta describes one intent's structural properties. All intent
// properties derive from this table; nothing duplicates it elsewhere.
type AdaptationMeta struct {
	RequiresParams   bool
	Category         AdaptationCategory
	AffectsStructure bool
	Reversible       bool
}

var adaptationMetadata = map[AdaptationIntent]AdaptationMeta{
	IntentReduceDailyLoad:    {false, CategoryLoadAdjustment, true, true},
	IntentIncreaseDailyLoad:  {false, CategoryLoadAdjustment, true, true},
	IntentLowerDifficulty:    {false, CategoryDifficultyAdjustment, true, true},
	IntentIncreaseDifficulty: {false, CategoryDifficultyAdjustment, true, true},
	IntentExtendDuration:     {true, CategoryDurationAdjustment, true, false},
	IntentShortenDuration:    {true, CategoryDurationAdjustment, true, false},
	IntentPausePlan:          {false, CategoryExecutionState, false, true},
	IntentResumePlan:         {false, CategoryExecutionState, false, true},
	IntentChangeMainCategory: {true, CategoryFocusChange, true, false},
}

// ParseAdaptationIntent validates a raw string against the closed intent set.
func ParseAdaptationIntent(raw string) (AdaptationIntent, error) {
	i := AdaptationIntent(raw)
	if _, ok := adaptationMetadata[i]; !ok {
		return "", fmt.Errorf("invalid adaptation intent %q", raw)
	}
	return i, nil
}

// Meta returns the intent's metadata. Unknown intents yield the zero value.
func (i AdaptationIntent) Meta() AdaptationMeta {
	return adaptationMetadata[i]
}

// AdaptationRecord is a ledger entry capturing the full prior plan state
// strictly before an approved change is applied. IsRolledBack transitions
// false to true at most once.
type AdaptationRecord struct {
	ID             string
	PlanID         string
	UserID         string
	Intent         AdaptationIntent
	Category       AdaptationCategory
	Params         map[string]any
	SnapshotBefore []byte // serialized prior plan state
	AppliedAt      time.Time
	IsRolledBack   bool
	IsInvalidated  bool // compensated: the associated diff never landed
}
