package screens

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/plan"
	"github.com/ecarvalho/aulaplan/internal/router"
	"github.com/ecarvalho/aulaplan/internal/screen"
	"github.com/ecarvalho/aulaplan/internal/ui/layout"
	"github.com/ecarvalho/aulaplan/internal/ui/theme"
)

// FeedbackHistoryScreen lists every lesson with recorded feedback, newest
// class first — the same view the generator aggregates from.
type FeedbackHistoryScreen struct {
	deps   Deps
	scroll int
}

var _ screen.Screen = (*FeedbackHistoryScreen)(nil)
var _ screen.KeyHintProvider = (*FeedbackHistoryScreen)(nil)

// NewFeedbackHistory creates the feedback history screen.
func NewFeedbackHistory(deps Deps) *FeedbackHistoryScreen {
	return &FeedbackHistoryScreen{deps: deps}
}

func (s *FeedbackHistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *FeedbackHistoryScreen) Title() string {
	return "Histórico de Feedback"
}

func (s *FeedbackHistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FeedbackHistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			s.deps.Machine.Back()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			entries := plan.WithFeedback(s.deps.Machine.Collection())
			if s.scroll < len(entries)-1 {
				s.scroll++
			}
		}
	}
	return s, nil
}

func (s *FeedbackHistoryScreen) View(width, height int) string {
	entries := plan.WithFeedback(s.deps.Machine.Collection())

	var b strings.Builder
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(theme.Hint.Render("  No feedback recorded yet. Open a lesson and press F after class.") + "\n")
		return b.String()
	}

	for i, l := range entries {
		if i < s.scroll {
			continue
		}
		b.WriteString("  " + theme.Selected.Render(l.ClassDate) + "  " + theme.Body.Render(l.Title) + "\n")
		if l.Feedback.Positive != "" {
			b.WriteString("    " + theme.Label.Render("+ ") + theme.Body.Render(l.Feedback.Positive) + "\n")
		}
		if l.Feedback.Improvement != "" {
			b.WriteString("    " + theme.Label.Render("± ") + theme.Body.Render(l.Feedback.Improvement) + "\n")
		}
		if l.Feedback.Ideas != "" {
			b.WriteString("    " + theme.Label.Render("→ ") + theme.Body.Render(l.Feedback.Ideas) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
