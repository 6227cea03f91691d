package repository

import (
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// slotsToCSV serializes a time-slot set for storage. Empty sets store as
// SQL NULL so "never chosen" and "chosen nothing" stay distinguishable.
func slotsToCSV(slots []domain.TimeSlot) any {
	if len(slots) == 0 {
		return nil
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

// slotsFromCSV parses a stored time-slot set, dropping anything invalid.
func slotsFromCSV(csv string) []domain.TimeSlot {
	if csv == "" {
		return nil
	}
	var out []domain.TimeSlot
	for _, part := range strings.Split(csv, ",") {
		slot, err := domain.ParseTimeSlot(part)
		if err != nil {
			continue
		}
		out = append(out, slot)
	}
	return out
}
