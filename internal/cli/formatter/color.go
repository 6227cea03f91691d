package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// CategoryStyle returns the style used for an exercise category.
func CategoryStyle(f domain.Focus) lipgloss.Style {
	switch f {
	case domain.FocusSomatic:
		return StyleGreen
	case domain.FocusCognitive:
		return StyleBlue
	case domain.FocusBoundaries:
		return StylePurple
	case domain.FocusRest:
		return StyleYellow
	default:
		return StyleFg
	}
}

// StateIndicator returns a colored conversation-state indicator.
func StateIndicator(s domain.ConversationState) string {
	switch s {
	case domain.StateActive:
		return StyleGreen.Render("● ACTIVE")
	case domain.StateDataCollection, domain.StateConfirmationPending, domain.StateFinalization:
		return StyleYellow.Render("● PLAN SETUP")
	case domain.StateAdaptationFlow, domain.StateActiveConfirmation:
		return StyleBlue.Render("● ADAPTING")
	case domain.StateIdlePlanAborted:
		return StyleRed.Render("● ABORTED")
	default:
		return StyleDim.Render("● IDLE")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
