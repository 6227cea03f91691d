package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the exercise library",
	}

	cmd.AddCommand(newCatalogListCmd(app))
	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := app.Library.Active()
			if all {
				items = app.Library.All()
			}

			headers := []string{"ID", "NAME", "CAT", "TIER", "DIFF", "COOLDOWN"}
			var rows [][]string
			for _, item := range items {
				name := item.Name
				if !item.IsActive {
					name = formatter.Dim(name + " (inactive)")
				}
				rows = append(rows, []string{
					item.ID,
					name,
					formatter.CategoryStyle(item.Category).Render(string(item.Category)),
					formatter.Dim(string(item.PriorityTier)),
					strings.Repeat("▪", item.Difficulty),
					fmt.Sprintf("%dd", item.CooldownDays),
				})
			}
			fmt.Println(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive exercises")
	return cmd
}
