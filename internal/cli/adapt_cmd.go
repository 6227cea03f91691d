package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/service"
)

func newAdaptCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapt",
		Short: "Record and inspect plan adaptations",
	}

	cmd.AddCommand(
		newAdaptRecordCmd(app),
		newAdaptListCmd(app),
		newAdaptRollbackCmd(app),
	)

	return cmd
}

func newAdaptRecordCmd(app *App) *cobra.Command {
	var intentStr string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an approved change to the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			intent, err := domain.ParseAdaptationIntent(intentStr)
			if err != nil {
				return err
			}

			draft, err := app.Plans.GetLatestDraft(ctx, app.UserID)
			if err != nil {
				return err
			}

			rec, err := app.Adaptations.Record(ctx, service.AdaptationRequest{
				PlanID: draft.ID,
				UserID: app.UserID,
				Intent: intent,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s as %s\n", rec.Intent, formatter.Bold(rec.ID[:8]))
			return nil
		},
	}

	cmd.Flags().StringVar(&intentStr, "intent", "", "Adaptation intent (e.g. REDUCE_DAILY_LOAD, PAUSE_PLAN)")
	cmd.MarkFlagRequired("intent")
	return cmd
}

func newAdaptListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List adaptations of the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			draft, err := app.Plans.GetLatestDraft(ctx, app.UserID)
			if err != nil {
				return err
			}
			records, err := app.Adaptations.ListByPlan(ctx, draft.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatAdaptations(records))
			return nil
		},
	}
}

func newAdaptRollbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <adaptation-id>",
		Short: "Roll back a recorded adaptation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Adaptations.Rollback(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Rolled back %s (%s)\n", formatter.Bold(rec.ID[:8]), rec.Intent)
			return nil
		},
	}
}
