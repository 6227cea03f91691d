package domain

import "fmt"

type Duration string

const (
	DurationShort    Duration = "SHORT"    // 7 days
	DurationStandard Duration = "STANDARD" // 14 days
	DurationExtended Duration = "EXTENDED" // 21 days
	DurationLong     Duration = "LONG"     // 90 days
)

// ValidDurations is the canonical set of accepted duration strings.
var ValidDurations = map[Duration]bool{
	DurationShort: true, DurationStandard: true,
	DurationExtended: true, DurationLong: true,
}

// ParseDuration validates a raw string against the closed duration set.
func ParseDuration(raw string) (Duration, error) {
	d := Duration(raw)
	if !ValidDurations[d] {
		return "", fmt.Errorf("invalid duration %q", raw)
	}
	return d, nil
}

type Focus string

const (
	FocusSomatic    Focus = "somatic"
	FocusCognitive  Focus = "cognitive"
	FocusBoundaries Focus = "boundaries"
	FocusRest       Focus = "rest"
	FocusMixed      Focus = "mixed"
)

// ValidFocuses is the canonical set of accepted focus strings.
var ValidFocuses = map[Focus]bool{
	FocusSomatic: true, FocusCognitive: true, FocusBoundaries: true,
	FocusRest: true, FocusMixed: true,
}

// ParseFocus validates a raw string against the closed focus set.
func ParseFocus(raw string) (Focus, error) {
	f := Focus(raw)
	if !ValidFocuses[f] {
		return "", fmt.Errorf("invalid focus %q", raw)
	}
	return f, nil
}

type Load string

const (
	LoadLite      Load = "LITE"      // 1 slot per day
	LoadMid       Load = "MID"       // 2 slots per day
	LoadIntensive Load = "INTENSIVE" // 3 slots per day
)

// ValidLoads is the canonical set of accepted load strings.
var ValidLoads = map[Load]bool{
	LoadLite: true, LoadMid: true, LoadIntensive: true,
}

// ParseLoad validates a raw string against the closed load set.
func ParseLoad(raw string) (Load, error) {
	l := Load(raw)
	if !ValidLoads[l] {
		return "", fmt.Errorf("invalid load %q", raw)
	}
	return l, nil
}

type SlotType string

const (
	SlotCore    SlotType = "CORE"
	SlotSupport SlotType = "SUPPORT"
	SlotRest    SlotType = "REST"
)

type TimeSlot string

const (
	TimeMorning TimeSlot = "MORNING"
	TimeDay     TimeSlot = "DAY"
	TimeEvening TimeSlot = "EVENING"
)

// AllTimeSlots lists every time slot in canonical day order.
var AllTimeSlots = []TimeSlot{TimeMorning, TimeDay, TimeEvening}

// ValidTimeSlots is the canonical set of accepted time slot strings.
var ValidTimeSlots = map[TimeSlot]bool{
	TimeMorning: true, TimeDay: true, TimeEvening: true,
}

// ParseTimeSlot validates a raw string against the closed time slot set.
func ParseTimeSlot(raw string) (TimeSlot, error) {
	t := TimeSlot(raw)
	if !ValidTimeSlots[t] {
		return "", fmt.Errorf("invalid time slot %q", raw)
	}
	return t, nil
}
