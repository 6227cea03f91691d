package domain

// PlanParameters holds the per-conversation plan setup collected by the
// parameter gate. Each field stays nil until the user supplies it; once all
// four are set, the slot set's cardinality matches the load's slot policy.
// No partially-valid combination is ever persisted.
type PlanParameters struct {
	Duration           *Duration
	Focus              *Focus
	Load               *Load
	PreferredTimeSlots []TimeSlot
}

// IsComplete reports whether duration, focus and load are all set.
func (p PlanParameters) IsComplete() bool {
	return p.Duration != nil && p.Focus != nil && p.Load != nil
}

// Missing returns the names of unset base parameters.
func (p PlanParameters) Missing() []string {
	var missing []string
	if p.Duration == nil {
		missing = append(missing, "duration")
	}
	if p.Focus == nil {
		missing = append(missing, "focus")
	}
	if p.Load == nil {
		missing = append(missing, "load")
	}
	return missing
}

// Clone returns a deep copy. Gate decisions operate on the copy so a
// rejected update leaves the caller's value untouched.
func (p PlanParameters) Clone() PlanParameters {
	out := PlanParameters{}
	if p.Duration != nil {
		d := *p.Duration
		out.Duration = &d
	}
	if p.Focus != nil {
		f := *p.Focus
		out.Focus = &f
	}
	if p.Load != nil {
		l := *p.Load
		out.Load = &l
	}
	if p.PreferredTimeSlots != nil {
		out.PreferredTimeSlots = make([]TimeSlot, len(p.PreferredTimeSlots))
		copy(out.PreferredTimeSlots, p.PreferredTimeSlots)
	}
	return out
}

// HasTimeSlot reports whether slot is in the preferred set.
func (p PlanParameters) HasTimeSlot(slot TimeSlot) bool {
	for _, s := range p.PreferredTimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
