package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/gate"
	"github.com/alexanderramin/cadence/internal/repository"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Set up, confirm and inspect your plan",
	}

	cmd.AddCommand(
		newPlanSetCmd(app),
		newPlanStatusCmd(app),
		newPlanWizardCmd(app),
		newPlanConfirmCmd(app),
		newPlanAbortCmd(app),
		newPlanBuildCmd(app),
		newPlanShowCmd(app),
	)

	return cmd
}

func newPlanSetCmd(app *App) *cobra.Command {
	var durationStr, focusStr, loadStr string
	var slotStrs []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set one or more plan parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			update, err := updateFromFlags(durationStr, focusStr, loadStr, slotStrs, cmd.Flags().Changed("slots"))
			if err != nil {
				return err
			}
			if update.Empty() {
				return fmt.Errorf("nothing to set; pass at least one of --duration, --focus, --load, --slots")
			}

			if err := ensureCollecting(ctx, app); err != nil {
				return err
			}

			result, err := app.Conversations.ApplyUpdate(ctx, app.UserID, update)
			if err != nil {
				return err
			}
			if !result.Accepted {
				fmt.Println(formatter.StyleRed.Render("Rejected: ") + result.Correction)
				return nil
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
				fmt.Println("All parameters collected. Run " + formatter.Bold("cadence plan confirm") + " to continue.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&durationStr, "duration", "", "Plan duration (SHORT, STANDARD, EXTENDED, LONG)")
	cmd.Flags().StringVar(&focusStr, "focus", "", "Plan focus (somatic, cognitive, boundaries, rest, mixed)")
	cmd.Flags().StringVar(&loadStr, "load", "", "Daily load (LITE, MID, INTENSIVE)")
	cmd.Flags().StringSliceVar(&slotStrs, "slots", nil, "Preferred time slots (MORNING, DAY, EVENING)")

	return cmd
}

// updateFromFlags converts raw flag values into a typed gate update.
// slotsChanged distinguishes "--slots not given" from an explicit empty set.
func updateFromFlags(durationStr, focusStr, loadStr string, slotStrs []string, slotsChanged bool) (gate.ProposedUpdate, error) {
	var update gate.ProposedUpdate

	if durationStr != "" {
		d, err := domain.ParseDuration(durationStr)
		if err != nil {
			return gate.ProposedUpdate{}, err
		}
		update.Duration = &d
	}
	if focusStr != "" {
		f, err := domain.ParseFocus(focusStr)
		if err != nil {
			return gate.ProposedUpdate{}, err
		}
		update.Focus = &f
	}
	if loadStr != "" {
		l, err := domain.ParseLoad(loadStr)
		if err != nil {
			return gate.ProposedUpdate{}, err
		}
		update.Load = &l
	}
	if slotsChanged {
		slots := make([]domain.TimeSlot, 0, len(slotStrs))
		for _, s := range slotStrs {
			ts, err := domain.ParseTimeSlot(s)
			if err != nil {
				return gate.ProposedUpdate{}, err
			}
			slots = append(slots, ts)
		}
		update.TimeSlots = &slots
	}
	return update, nil
}

// ensureCollecting moves an idle conversation into data collection so that
// direct parameter edits work without a coach turn first.
func ensureCollecting(ctx context.Context, app *App) error {
	snap, err := app.Conversations.Get(ctx, app.UserID)
	if err != nil {
		return err
	}
	if snap.State != domain.StateIdle && snap.State != domain.StateIdlePlanAborted {
		return nil
	}
	target := domain.StateDataCollection
	_, err = app.Conversations.Transition(ctx, app.UserID, &target)
	return err
}

func newPlanStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show conversation state and collected parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Conversations.Get(context.Background(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatParameters(snap.State, snap.Params))
			return nil
		},
	}
}

func newPlanConfirmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the collected parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			target := domain.StateConfirmationPending
			if _, err := app.Conversations.Transition(ctx, app.UserID, &target); err != nil {
				return err
			}
			fmt.Println("Parameters confirmed. Run " + formatter.Bold("cadence plan build") + " to generate your plan.")
			return nil
		},
	}
}

func newPlanAbortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "abort",
		Short: "Leave plan setup, keeping collected parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Conversations.Abort(context.Background(), app.UserID); err != nil {
				return err
			}
			fmt.Println("Plan setup aborted. Your answers are kept for next time.")
			return nil
		},
	}
}

func newPlanBuildCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate and activate the plan draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Confirmation precedes finalization; entering finalization is
			// what commits the user to a build.
			target := domain.StateFinalization
			if _, err := app.Conversations.Transition(ctx, app.UserID, &target); err != nil {
				return err
			}

			draft, err := app.Plans.BuildDraft(ctx, app.UserID)
			if err != nil {
				return maskEngineError(err)
			}
			fmt.Println(formatter.FormatDraftSummary(draft))
			fmt.Println("Plan is active. Run " + formatter.Bold("cadence plan show") + " to see every day.")
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	var draftID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the latest draft day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var draft *domain.Draft
			var err error
			if draftID != "" {
				draft, err = app.Plans.GetDraft(ctx, draftID)
			} else {
				draft, err = app.Plans.GetLatestDraft(ctx, app.UserID)
			}
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Println(formatter.Dim("No draft yet. Run \"cadence plan build\" first."))
				return nil
			}
			if err != nil {
				return err
			}

			names := make(map[string]string, app.Library.Len())
			for _, item := range app.Library.All() {
				names[item.ID] = item.Name
			}
			fmt.Println(formatter.FormatDraft(draft, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&draftID, "id", "", "Draft ID (defaults to the latest)")
	return cmd
}
