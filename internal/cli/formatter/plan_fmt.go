package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/policy"
)

// FormatParameters renders the collected plan parameters with unset fields
// dimmed, plus a readiness line.
func FormatParameters(state domain.ConversationState, params domain.PlanParameters) string {
	var b strings.Builder

	b.WriteString(StateIndicator(state) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("DURATION"), paramValue(params.Duration, durationLabel)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("FOCUS   "), paramValue(params.Focus, func(f domain.Focus) string { return string(f) })))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("LOAD    "), paramValue(params.Load, loadLabel)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("SLOTS   "), slotsLabel(params)))

	return RenderBox("Plan Setup", b.String())
}

func paramValue[T ~string](v *T, label func(T) string) string {
	if v == nil {
		return Dim("(not set)")
	}
	return Bold(label(*v))
}

func durationLabel(d domain.Duration) string {
	return fmt.Sprintf("%s (%d days)", d, policy.DaysFor(d))
}

func loadLabel(l domain.Load) string {
	n := policy.ExpectedSlotCount(l)
	if n == 1 {
		return fmt.Sprintf("%s (1 slot/day)", l)
	}
	return fmt.Sprintf("%s (%d slots/day)", l, n)
}

func slotsLabel(params domain.PlanParameters) string {
	if len(params.PreferredTimeSlots) == 0 {
		return Dim("(not set)")
	}
	names := make([]string, len(params.PreferredTimeSlots))
	for i, s := range params.PreferredTimeSlots {
		names[i] = string(s)
	}
	label := strings.Join(names, ", ")
	if params.Load != nil && len(params.PreferredTimeSlots) != policy.ExpectedSlotCount(*params.Load) {
		return StyleYellow.Render(label + " (incomplete)")
	}
	return Bold(label)
}

// FormatDraft renders a full draft as a per-day table inside a box.
func FormatDraft(d *domain.Draft, library map[string]string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s %s plan, %s load\n", Bold(fmt.Sprintf("%d days", d.TotalDays)),
		Dim(strings.ToLower(string(d.Duration))), CategoryStyle(d.Focus).Render(string(d.Focus)),
		Dim(strings.ToLower(string(d.Load)))))
	b.WriteString(Dim(fmt.Sprintf("%d steps, created %s", d.TotalSteps, d.CreatedAt.Format("Jan 2, 2006"))) + "\n\n")

	headers := []string{"DAY", "TIME", "TYPE", "EXERCISE", "CAT", "DIFF"}
	var rows [][]string
	for _, step := range d.Steps {
		name := step.ExerciseID
		if n, ok := library[step.ExerciseID]; ok {
			name = n
		}
		day := ""
		if step.SlotIndex == 0 {
			day = fmt.Sprintf("%d", step.DayNumber)
		}
		rows = append(rows, []string{
			day,
			string(step.TimeSlot),
			Dim(string(step.SlotType)),
			name,
			CategoryStyle(step.Category).Render(string(step.Category)),
			strings.Repeat("▪", step.Difficulty),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Draft", b.String())
}

// FormatDraftSummary renders a one-box summary without the step table.
func FormatDraftSummary(d *domain.Draft) string {
	var b strings.Builder
	status := StyleGreen.Render("valid")
	if !d.IsValid {
		status = StyleRed.Render("invalid")
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("ID     "), d.ID))
	b.WriteString(fmt.Sprintf("  %s  %s / %s / %s\n", StyleDim.Render("PARAMS "), d.Duration, d.Focus, d.Load))
	b.WriteString(fmt.Sprintf("  %s  %d days, %d steps\n", StyleDim.Render("SIZE   "), d.TotalDays, d.TotalSteps))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("STATUS "), status))
	return RenderBox("Draft", b.String())
}

// FormatAdaptations renders the adaptation ledger for a plan.
func FormatAdaptations(records []*domain.AdaptationRecord) string {
	if len(records) == 0 {
		return Dim("No adaptations recorded.")
	}
	headers := []string{"ID", "INTENT", "CATEGORY", "APPLIED", "STATE"}
	var rows [][]string
	for _, r := range records {
		state := StyleGreen.Render("applied")
		switch {
		case r.IsInvalidated:
			state = StyleRed.Render("invalidated")
		case r.IsRolledBack:
			state = StyleYellow.Render("rolled back")
		}
		rows = append(rows, []string{
			shortID(r.ID),
			string(r.Intent),
			Dim(string(r.Category)),
			r.AppliedAt.Format("Jan 2 15:04"),
			state,
		})
	}
	return RenderTable(headers, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
