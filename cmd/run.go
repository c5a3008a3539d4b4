package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecarvalho/aulaplan/internal/app"
	"github.com/ecarvalho/aulaplan/internal/genplan"
	"github.com/ecarvalho/aulaplan/internal/llm"
	"github.com/ecarvalho/aulaplan/internal/machine"
	"github.com/ecarvalho/aulaplan/internal/screens"
	"github.com/ecarvalho/aulaplan/internal/store"
	"github.com/ecarvalho/aulaplan/internal/weather"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	lessonRepo := st.LessonRepo()
	collection, err := lessonRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}

	deps := screens.Deps{
		Machine: machine.New(collection),
		Lessons: lessonRepo,
		Weather: &weather.Simulated{},
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		deps.Gen = genplan.NewService(provider, genplan.DefaultConfig())
	}

	return app.Run(deps)
}
