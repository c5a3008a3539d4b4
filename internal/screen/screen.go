package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/ecarvalho/aulaplan/internal/ui/layout"
)

// Screen is the interface every application screen implements.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen plus a
	// follow-up command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title returns the screen name for the header bar.
	Title() string
}

// KeyHintProvider lets a screen supply custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
