// Package screens contains the application screens. Each screen drives
// the continuity state machine and renders its slice of the state; the
// machine, not the screens, decides which transitions are legal.
package screens

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/genplan"
	"github.com/ecarvalho/aulaplan/internal/machine"
	"github.com/ecarvalho/aulaplan/internal/plan"
	"github.com/ecarvalho/aulaplan/internal/store"
	"github.com/ecarvalho/aulaplan/internal/weather"
)

// Deps bundles what every screen may need.
type Deps struct {
	Machine *machine.Machine
	Lessons store.LessonRepo

	// Gen is nil when no LLM provider is configured; generation actions
	// are disabled in that case.
	Gen *genplan.Service

	Weather weather.Forecaster
}

// collectionSavedMsg reports the result of persisting the collection.
type collectionSavedMsg struct {
	Err error
}

// persistCmd writes the machine's collection through the repository.
func persistCmd(deps Deps) tea.Cmd {
	collection := deps.Machine.Collection()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return collectionSavedMsg{Err: deps.Lessons.Save(ctx, collection)}
	}
}

// weatherResolvedMsg carries a forecast result back to the form screen.
// DraftID and IssuedAt tag the lookup so stale completions are discarded:
// the last-issued lookup wins, by issuance time, not completion time.
type weatherResolvedMsg struct {
	DraftID   string
	IssuedAt  time.Time
	Condition plan.Condition
	Err       error
}

// scheduleGeneratedMsg carries a generation result back to the form
// screen. DraftID tags the request; a result for a draft that is no
// longer on screen is a no-op.
type scheduleGeneratedMsg struct {
	DraftID string
	Result  *genplan.ScheduleResult
	Err     error
}

// analysisDoneMsg carries an analysis suggestion back to the analyzer.
type analysisDoneMsg struct {
	Suggestion string
	Err        error
}

// documentLoadedMsg carries extracted document text into the analyzer.
type documentLoadedMsg struct {
	Text string
	Err  error
}
