package screens

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/plan"
	"github.com/ecarvalho/aulaplan/internal/router"
	"github.com/ecarvalho/aulaplan/internal/screen"
	"github.com/ecarvalho/aulaplan/internal/store"
	"github.com/ecarvalho/aulaplan/internal/ui/layout"
	"github.com/ecarvalho/aulaplan/internal/ui/theme"
)

// ListScreen is the root screen: the stored lessons plus the entry points
// for every other mode.
type ListScreen struct {
	deps     Deps
	selected int
	notice   string
	errMsg   string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// NewList creates the list screen.
func NewList(deps Deps) *ListScreen {
	return &ListScreen{deps: deps}
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

func (s *ListScreen) Title() string {
	return "Aulas"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "N", Description: "New lesson"},
		{Key: "A", Description: "Analyze previous"},
		{Key: "F", Description: "Feedback history"},
		{Key: "B", Description: "Export backup"},
	}
}

// sortedLessons returns the collection ordered by class date descending
// for display.
func (s *ListScreen) sortedLessons() []plan.Lesson {
	c := s.deps.Machine.Collection()
	out := make([]plan.Lesson, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClassDate > out[j].ClassDate
	})
	return out
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionSavedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("save failed: %v", msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		s.notice = ""
		s.errMsg = ""
		lessons := s.sortedLessons()
		if s.selected >= len(lessons) && len(lessons) > 0 {
			s.selected = len(lessons) - 1
		}

		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(lessons)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(lessons) {
				if err := s.deps.Machine.SelectLesson(lessons[s.selected].ID); err != nil {
					s.errMsg = err.Error()
					return s, nil
				}
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: NewDetail(s.deps)}
				}
			}
		case "n":
			if err := s.deps.Machine.CreateNew(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: NewForm(s.deps)}
			}
		case "a":
			if err := s.deps.Machine.Analyze(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: NewAnalyzer(s.deps)}
			}
		case "f":
			if err := s.deps.Machine.ReviewFeedback(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: NewFeedbackHistory(s.deps)}
			}
		case "b":
			s.exportBackup()
			return s, nil
		}
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	lessons := s.sortedLessons()

	var b strings.Builder
	b.WriteString("\n")

	if len(lessons) == 0 {
		b.WriteString(theme.Hint.Render("  No lessons yet. Press N to plan the first one.\n"))
	}

	for i, l := range lessons {
		line := fmt.Sprintf("%s  %-40s  %s", l.ClassDate, truncate(l.Title, 40), l.TargetAudience)
		if l.Feedback.HasContent() {
			line += "  ✎"
		}
		if i == s.selected {
			b.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("    "+line) + "\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n" + theme.NoticeText.Render("  "+s.notice) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render("  "+s.errMsg) + "\n")
	}

	return b.String()
}

// exportBackup writes the collection to a dated JSON file in the working
// directory.
func (s *ListScreen) exportBackup() {
	data, err := store.ExportBackup(s.deps.Machine.Collection())
	if err != nil {
		s.errMsg = fmt.Sprintf("backup failed: %v", err)
		return
	}
	name := store.BackupFilename(time.Now())
	if err := os.WriteFile(name, data, 0o644); err != nil {
		s.errMsg = fmt.Sprintf("backup failed: %v", err)
		return
	}
	s.deps.Machine.MarkBackedUp()
	s.notice = fmt.Sprintf("Backup written to %s", name)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
