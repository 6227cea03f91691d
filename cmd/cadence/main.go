package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/cadence/internal/catalog"
	"github.com/alexanderramin/cadence/internal/cli"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/intelligence"
	"github.com/alexanderramin/cadence/internal/llm"
	"github.com/alexanderramin/cadence/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.cadence/cadence.db
	dbPath := os.Getenv("CADENCE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".cadence", "cadence.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Exercise library: external file or the embedded default.
	var library *catalog.Library
	if path := os.Getenv("CADENCE_LIBRARY"); path != "" {
		library, err = catalog.LoadFile(path)
	} else {
		library, err = catalog.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("loading exercise library: %w", err)
	}

	userID := os.Getenv("CADENCE_USER")
	if userID == "" {
		userID = "local"
	}

	var observers []service.UseCaseObserver
	if os.Getenv("CADENCE_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Conversations: service.NewConversationService(database, uow, observers...),
		Plans:         service.NewPlanService(database, uow, library, observers...),
		Adaptations:   service.NewAdaptationService(database, uow, observers...),
		Library:       library,
		UserID:        userID,
	}

	// The coach answers from a model when one is configured, otherwise
	// from the deterministic script.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		app.Agent = intelligence.NewPlanAgent(llm.NewOllamaClient(llmCfg, observer))
	} else {
		app.Agent = intelligence.NewScriptedAgent()
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
