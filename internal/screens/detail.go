package screens

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/machine"
	"github.com/ecarvalho/aulaplan/internal/plan"
	"github.com/ecarvalho/aulaplan/internal/router"
	"github.com/ecarvalho/aulaplan/internal/screen"
	"github.com/ecarvalho/aulaplan/internal/ui/components"
	"github.com/ecarvalho/aulaplan/internal/ui/layout"
	"github.com/ecarvalho/aulaplan/internal/ui/theme"
)

// DetailScreen shows a stored lesson. It also hosts the two overlays that
// belong to a viewed lesson: the next-lesson proposal raised by a fresh
// save, and the delete confirmation.
type DetailScreen struct {
	deps Deps

	// feedback overlay state
	feedbackOpen  bool
	feedbackFocus int
	positive      components.TextArea
	improvement   components.TextArea
	ideas         components.TextArea

	errMsg string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates the detail screen for the machine's viewed lesson.
func NewDetail(deps Deps) *DetailScreen {
	return &DetailScreen{
		deps:        deps,
		positive:    components.NewTextArea("O que funcionou bem", 3),
		improvement: components.NewTextArea("O que pode melhorar", 3),
		ideas:       components.NewTextArea("Ideias para a próxima aula", 3),
	}
}

func (s *DetailScreen) Init() tea.Cmd {
	return nil
}

func (s *DetailScreen) Title() string {
	return "Aula"
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	if s.feedbackOpen {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Ctrl+S", Description: "Save feedback"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.deps.Machine.PendingDelete() {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	if s.proposalForViewed() != nil {
		return []layout.KeyHint{
			{Key: "Y", Description: "Plan next lesson"},
			{Key: "N", Description: "Not now"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Edit"},
		{Key: "F", Description: "Feedback"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// proposalForViewed returns the pending proposal when it was raised by the
// lesson on screen.
func (s *DetailScreen) proposalForViewed() *machine.Proposal {
	p := s.deps.Machine.Proposal()
	if p == nil {
		return nil
	}
	lesson, ok := s.deps.Machine.Viewing()
	if !ok || p.SourceID != lesson.ID {
		return nil
	}
	return p
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionSavedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("save failed: %v", msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		if s.feedbackOpen {
			return s, s.updateFeedbackOverlay(msg)
		}
		if s.deps.Machine.PendingDelete() {
			return s, s.updateDeleteConfirm(msg)
		}
		if s.proposalForViewed() != nil {
			return s, s.updateProposal(msg)
		}
		return s, s.updateNormal(msg)
	}
	return s, nil
}

func (s *DetailScreen) updateNormal(msg tea.KeyMsg) tea.Cmd {
	s.errMsg = ""
	switch msg.String() {
	case "esc":
		s.deps.Machine.Back()
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "e":
		if err := s.deps.Machine.Edit(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		deps := s.deps
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: NewForm(deps)}
		}
	case "f":
		lesson, ok := s.deps.Machine.Viewing()
		if !ok {
			return nil
		}
		s.positive.SetValue(lesson.Feedback.Positive)
		s.improvement.SetValue(lesson.Feedback.Improvement)
		s.ideas.SetValue(lesson.Feedback.Ideas)
		s.feedbackOpen = true
		s.feedbackFocus = 0
		return s.applyFeedbackFocus()
	case "d":
		if err := s.deps.Machine.RequestDelete(); err != nil {
			s.errMsg = err.Error()
		}
	}
	return nil
}

func (s *DetailScreen) updateDeleteConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y":
		if err := s.deps.Machine.ConfirmDelete(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		deps := s.deps
		return tea.Batch(
			persistCmd(deps),
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	case "n", "esc":
		s.deps.Machine.DeclineDelete()
	}
	return nil
}

func (s *DetailScreen) updateProposal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y":
		if err := s.deps.Machine.AcceptProposal(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		deps := s.deps
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: NewForm(deps)}
		}
	case "n", "esc":
		s.deps.Machine.DismissProposal()
	}
	return nil
}

func (s *DetailScreen) updateFeedbackOverlay(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.feedbackOpen = false
		return nil
	case "tab":
		s.feedbackFocus = (s.feedbackFocus + 1) % 3
		return s.applyFeedbackFocus()
	case "shift+tab":
		s.feedbackFocus = (s.feedbackFocus + 2) % 3
		return s.applyFeedbackFocus()
	case "ctrl+s":
		lesson, ok := s.deps.Machine.Viewing()
		if !ok {
			s.feedbackOpen = false
			return nil
		}
		fb := plan.Feedback{
			Positive:    strings.TrimSpace(s.positive.Value()),
			Improvement: strings.TrimSpace(s.improvement.Value()),
			Ideas:       strings.TrimSpace(s.ideas.Value()),
		}
		if err := s.deps.Machine.UpdateFeedback(lesson.ID, fb); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.feedbackOpen = false
		return persistCmd(s.deps)
	}

	var cmd tea.Cmd
	switch s.feedbackFocus {
	case 0:
		s.positive, cmd = s.positive.Update(msg)
	case 1:
		s.improvement, cmd = s.improvement.Update(msg)
	case 2:
		s.ideas, cmd = s.ideas.Update(msg)
	}
	return cmd
}

func (s *DetailScreen) applyFeedbackFocus() tea.Cmd {
	s.positive.Blur()
	s.improvement.Blur()
	s.ideas.Blur()
	switch s.feedbackFocus {
	case 0:
		return s.positive.Focus()
	case 1:
		return s.improvement.Focus()
	case 2:
		return s.ideas.Focus()
	}
	return nil
}

func (s *DetailScreen) View(width, height int) string {
	lesson, ok := s.deps.Machine.Viewing()
	if !ok {
		return "\n" + theme.Hint.Render("  Nothing selected.")
	}

	if s.feedbackOpen {
		return s.viewFeedbackOverlay(lesson)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Title.Render(lesson.Title) + "\n\n")

	row := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString("  " + theme.Label.Render(label+": ") + theme.Body.Render(value) + "\n")
	}

	row("Data", lesson.ClassDate)
	row("Turma", lesson.TargetAudience.String())
	row("Duração", fmt.Sprintf("%dh", lesson.TargetAudience.DurationHours()))
	row("Tempo", lesson.WeatherCondition.String())
	row("Tema", lesson.Theme)
	row("Objetivos", lesson.Objectives)

	b.WriteString("\n  " + theme.Label.Render("Cronograma") + "\n")
	for _, a := range lesson.Activities {
		b.WriteString("    " + theme.Selected.Render(a.Time) + "  " + theme.Body.Render(a.Activity) + "\n")
		b.WriteString("           " + theme.Hint.Render(a.Description) + "\n")
	}

	if lesson.NextClassSuggestion != "" {
		b.WriteString("\n  " + theme.Label.Render("Próxima aula") + "\n")
		b.WriteString("    " + theme.Body.Render(lesson.NextClassSuggestion) + "\n")
	}

	if lesson.Feedback.HasContent() {
		b.WriteString("\n  " + theme.Label.Render("Feedback") + "\n")
		if lesson.Feedback.Positive != "" {
			b.WriteString("    " + theme.Body.Render("+ "+lesson.Feedback.Positive) + "\n")
		}
		if lesson.Feedback.Improvement != "" {
			b.WriteString("    " + theme.Body.Render("± "+lesson.Feedback.Improvement) + "\n")
		}
		if lesson.Feedback.Ideas != "" {
			b.WriteString("    " + theme.Body.Render("→ "+lesson.Feedback.Ideas) + "\n")
		}
	}

	if s.deps.Machine.PendingDelete() {
		b.WriteString("\n" + theme.Overlay.Render("Delete this lesson? It cannot be undone.  [Y]es / [N]o") + "\n")
	} else if p := s.proposalForViewed(); p != nil {
		overlay := "Lesson saved. Plan the next one from its suggestion?\n\n" +
			truncate(p.Suggestion, 70) + "\n\n[Y]es / [N]ot now"
		b.WriteString("\n" + theme.Overlay.Render(overlay) + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n  " + theme.ErrorText.Render(s.errMsg) + "\n")
	}

	return b.String()
}

func (s *DetailScreen) viewFeedbackOverlay(lesson plan.Lesson) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Title.Render("Feedback — "+lesson.Title) + "\n\n")
	b.WriteString("  " + theme.Label.Render("Pontos positivos") + "\n")
	b.WriteString(s.positive.View() + "\n")
	b.WriteString("  " + theme.Label.Render("A melhorar") + "\n")
	b.WriteString(s.improvement.View() + "\n")
	b.WriteString("  " + theme.Label.Render("Ideias") + "\n")
	b.WriteString(s.ideas.View() + "\n")
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.ErrorText.Render(s.errMsg) + "\n")
	}
	return b.String()
}
