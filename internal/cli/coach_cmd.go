package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
)

func newCoachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "coach [message]",
		Short: "Talk to the coach to set up or adjust your plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			message := strings.Join(args, " ")

			snap, err := app.Conversations.Get(ctx, app.UserID)
			if err != nil {
				return err
			}

			turn, err := app.Agent.Respond(ctx, snap.State, snap.Params, message)
			if err != nil {
				return maskEngineError(err)
			}

			// Parameter updates land first so a transition signal in the
			// same turn sees the post-update readiness.
			if !turn.Update.Empty() {
				result, err := app.Conversations.ApplyUpdate(ctx, app.UserID, turn.Update)
				if err != nil {
					return maskEngineError(err)
				}
				if !result.Accepted {
					fmt.Println(formatter.StyleRed.Render("Coach: ") + result.Correction)
					return nil
				}
				if result.Correction != "" {
					fmt.Println(formatter.StyleYellow.Render("Note: ") + result.Correction)
				}
			}

			if turn.Signal != nil {
				if _, err := app.Conversations.Transition(ctx, app.UserID, turn.Signal); err != nil {
					return err
				}
			}

			fmt.Println(formatter.StyleHeader.Render("Coach: ") + turn.ReplyText)
			return nil
		},
	}
}
