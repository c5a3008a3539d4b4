// Package app wires the root Bubble Tea model: the screen router framed
// by the header and footer chrome.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ecarvalho/aulaplan/internal/router"
	"github.com/ecarvalho/aulaplan/internal/screen"
	"github.com/ecarvalho/aulaplan/internal/screens"
	"github.com/ecarvalho/aulaplan/internal/ui/layout"
)

// Model is the root Bubble Tea model.
type Model struct {
	deps   screens.Deps
	router *router.Router
	width  int
	height int
}

// newModel creates the root model with the lesson list on the bottom of
// the stack.
func newModel(deps screens.Deps) Model {
	return Model{
		deps:   deps,
		router: router.New(screens.NewList(deps)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// esc is screen business: screens own the transition back through
		// the state machine before popping.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(
		title,
		len(m.deps.Machine.Collection()),
		m.deps.Machine.Dirty(),
		m.width,
	)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program over the given dependencies.
func Run(deps screens.Deps) error {
	p := tea.NewProgram(newModel(deps))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
