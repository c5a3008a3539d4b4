package screens

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/doctext"
	"github.com/ecarvalho/aulaplan/internal/router"
	"github.com/ecarvalho/aulaplan/internal/screen"
	"github.com/ecarvalho/aulaplan/internal/ui/components"
	"github.com/ecarvalho/aulaplan/internal/ui/layout"
	"github.com/ecarvalho/aulaplan/internal/ui/theme"
)

// analyzer focus order.
const (
	analyzerFieldPath = iota
	analyzerFieldText
	analyzerFieldChain
	analyzerFieldCount
)

// AnalyzerScreen takes a previous lesson as pasted text or a document
// file and asks the model for a continuation suggestion. With chaining
// on, the suggestion seeds a new draft; off, it is only displayed.
type AnalyzerScreen struct {
	deps Deps

	path  components.TextInput
	text  components.TextArea
	chain bool
	focus int

	running    bool
	suggestion string
	notice     string
	errMsg     string
}

var _ screen.Screen = (*AnalyzerScreen)(nil)
var _ screen.KeyHintProvider = (*AnalyzerScreen)(nil)

// NewAnalyzer creates the analyzer screen.
func NewAnalyzer(deps Deps) *AnalyzerScreen {
	return &AnalyzerScreen{
		deps: deps,
		path: components.NewTextInput("caminho para .pdf ou .txt (opcional)", 250),
		text: components.NewTextArea("Cole aqui o texto da aula anterior", 8),
	}
}

func (s *AnalyzerScreen) Init() tea.Cmd {
	return s.applyFocus()
}

func (s *AnalyzerScreen) Title() string {
	return "Analisar Aula Anterior"
}

func (s *AnalyzerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+O", Description: "Load file"},
		{Key: "Ctrl+G", Description: "Analyze"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AnalyzerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case documentLoadedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("could not read document: %v", msg.Err)
			return s, nil
		}
		s.text.SetValue(msg.Text)
		s.notice = fmt.Sprintf("Loaded %d characters from the document.", len(msg.Text))
		return s, nil

	case analysisDoneMsg:
		return s, s.handleAnalysis(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			s.deps.Machine.Back()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.focus = (s.focus + 1) % analyzerFieldCount
			return s, s.applyFocus()
		case "shift+tab":
			s.focus = (s.focus + analyzerFieldCount - 1) % analyzerFieldCount
			return s, s.applyFocus()
		case "ctrl+o":
			return s, s.loadDocument()
		case "ctrl+g":
			return s, s.startAnalysis()
		}

		if s.focus == analyzerFieldChain {
			switch msg.String() {
			case " ", "enter":
				s.chain = !s.chain
			}
			return s, nil
		}

		var cmd tea.Cmd
		if s.focus == analyzerFieldPath {
			s.path, cmd = s.path.Update(msg)
		} else {
			s.text, cmd = s.text.Update(msg)
		}
		return s, cmd
	}
	return s, nil
}

func (s *AnalyzerScreen) applyFocus() tea.Cmd {
	s.path.Blur()
	s.text.Blur()
	switch s.focus {
	case analyzerFieldPath:
		return s.path.Focus()
	case analyzerFieldText:
		return s.text.Focus()
	}
	return nil
}

// loadDocument reads the file at the path field and extracts its text.
func (s *AnalyzerScreen) loadDocument() tea.Cmd {
	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		s.path.SetError("enter a file path first")
		return nil
	}
	s.path.SetError("")
	s.errMsg = ""

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return documentLoadedMsg{Err: err}
		}
		text, err := doctext.Extract(data)
		return documentLoadedMsg{Text: text, Err: err}
	}
}

// startAnalysis launches one analysis over the current text.
func (s *AnalyzerScreen) startAnalysis() tea.Cmd {
	if s.deps.Gen == nil {
		s.notice = "AI features are unavailable: no API key configured."
		return nil
	}
	if s.running {
		return nil
	}

	text := strings.TrimSpace(s.text.Value())
	if text == "" {
		s.errMsg = "paste lesson text or load a document first"
		return nil
	}

	s.running = true
	s.errMsg = ""
	s.suggestion = ""
	gen := s.deps.Gen

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		suggestion, err := gen.AnalyzeLesson(ctx, text)
		return analysisDoneMsg{Suggestion: suggestion, Err: err}
	}
}

// handleAnalysis folds a completed analysis back in. With chaining on,
// the suggestion immediately seeds a new draft.
func (s *AnalyzerScreen) handleAnalysis(msg analysisDoneMsg) tea.Cmd {
	s.running = false
	if msg.Err != nil {
		s.errMsg = fmt.Sprintf("Analysis failed: %v. Press Ctrl+G to retry.", msg.Err)
		return nil
	}

	if s.chain {
		if err := s.deps.Machine.ChainFromAnalysis(msg.Suggestion); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		deps := s.deps
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: NewForm(deps)}
		}
	}

	s.suggestion = msg.Suggestion
	return nil
}

func (s *AnalyzerScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString("  " + theme.Label.Render("Documento") + "\n")
	b.WriteString("  " + s.path.View() + "\n\n")

	b.WriteString("  " + theme.Label.Render("Texto da aula") + "\n")
	b.WriteString(s.text.View() + "\n\n")

	check := "[ ]"
	if s.chain {
		check = "[x]"
	}
	chainLine := check + " Criar nova aula a partir da sugestão"
	if s.focus == analyzerFieldChain {
		b.WriteString("  " + theme.Selected.Render(chainLine) + "\n")
	} else {
		b.WriteString("  " + theme.Unselected.Render(chainLine) + "\n")
	}

	if s.running {
		b.WriteString("\n  " + theme.NoticeText.Render("Analyzing…") + "\n")
	}
	if s.suggestion != "" {
		b.WriteString("\n  " + theme.Label.Render("Sugestão para a próxima aula") + "\n")
		b.WriteString("  " + theme.Body.Render(s.suggestion) + "\n")
	}
	if s.notice != "" && !s.running {
		b.WriteString("\n  " + theme.NoticeText.Render(s.notice) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n  " + theme.ErrorText.Render(s.errMsg) + "\n")
	}

	return b.String()
}
