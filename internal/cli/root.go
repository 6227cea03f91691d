package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/cadence/internal/catalog"
	"github.com/alexanderramin/cadence/internal/intelligence"
	"github.com/alexanderramin/cadence/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Conversations service.ConversationService
	Plans         service.PlanService
	Adaptations   service.AdaptationService
	Agent         intelligence.PlanAgent
	Library       *catalog.Library

	// UserID identifies the local profile all commands act on.
	UserID string

	// IsInteractive reports whether stdin is a terminal. The wizard
	// refuses to run without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cadence",
		Short: "Self-care plan coach and generator",
	}

	root.AddCommand(
		newPlanCmd(app),
		newCoachCmd(app),
		newAdaptCmd(app),
		newCatalogCmd(app),
	)

	return root
}
