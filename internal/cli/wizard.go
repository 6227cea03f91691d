package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/policy"
)

// cadenceHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func cadenceHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newPlanWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Set up the plan interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the wizard needs an interactive terminal; use \"cadence plan set\" instead")
			}

			ctx := context.Background()
			if err := ensureCollecting(ctx, app); err != nil {
				return err
			}

			var durationStr, focusStr, loadStr string
			base := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("How long should your plan run?").
						Options(
							huh.NewOption("Short · 1 week", string(domain.DurationShort)),
							huh.NewOption("Standard · 2 weeks", string(domain.DurationStandard)),
							huh.NewOption("Extended · 3 weeks", string(domain.DurationExtended)),
							huh.NewOption("Long · 3 months", string(domain.DurationLong)),
						).
						Value(&durationStr),
					huh.NewSelect[string]().
						Title("What should it focus on?").
						Options(
							huh.NewOption("Somatic · body and breath", string(domain.FocusSomatic)),
							huh.NewOption("Cognitive · thoughts and attention", string(domain.FocusCognitive)),
							huh.NewOption("Boundaries · saying no", string(domain.FocusBoundaries)),
							huh.NewOption("Rest · recovery and sleep", string(domain.FocusRest)),
							huh.NewOption("Mixed · a bit of everything", string(domain.FocusMixed)),
						).
						Value(&focusStr),
					huh.NewSelect[string]().
						Title("How much daily practice suits you?").
						Options(
							huh.NewOption("Lite · 1 slot per day", string(domain.LoadLite)),
							huh.NewOption("Mid · 2 slots per day", string(domain.LoadMid)),
							huh.NewOption("Intensive · 3 slots per day", string(domain.LoadIntensive)),
						).
						Value(&loadStr),
				),
			).WithTheme(cadenceHuhTheme()).WithShowHelp(false)

			if err := base.Run(); err != nil {
				return err
			}

			load, err := domain.ParseLoad(loadStr)
			if err != nil {
				return err
			}
			slotStrs, err := askSlots(load)
			if err != nil {
				return err
			}

			update, err := updateFromFlags(durationStr, focusStr, loadStr, slotStrs, true)
			if err != nil {
				return err
			}

			result, err := app.Conversations.ApplyUpdate(ctx, app.UserID, update)
			if err != nil {
				return err
			}
			if !result.Accepted {
				return fmt.Errorf("%s", result.Correction)
			}
			if result.Correction != "" {
				fmt.Println(formatter.StyleYellow.Render("Note: ") + result.Correction)
			}

			snap, err := app.Conversations.Get(ctx, app.UserID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatParameters(snap.State, result.Params))
			if result.ReadyForConfirmation {
				fmt.Println("Run " + formatter.Bold("cadence plan confirm") + " to continue.")
			}
			return nil
		},
	}
}

// askSlots collects exactly the number of time slots the load expects.
// INTENSIVE skips the question; the gate force-sets all three anyway.
func askSlots(load domain.Load) ([]string, error) {
	want := policy.ExpectedSlotCount(load)
	if load == domain.LoadIntensive {
		return []string{string(domain.TimeMorning), string(domain.TimeDay), string(domain.TimeEvening)}, nil
	}

	var picked []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Pick %d time slot(s)", want)).
				Options(
					huh.NewOption("Morning", string(domain.TimeMorning)),
					huh.NewOption("Day", string(domain.TimeDay)),
					huh.NewOption("Evening", string(domain.TimeEvening)),
				).
				Limit(want).
				Validate(func(sel []string) error {
					if len(sel) != want {
						return fmt.Errorf("pick exactly %d", want)
					}
					return nil
				}).
				Value(&picked),
		),
	).WithTheme(cadenceHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return picked, nil
}
