package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ecarvalho/aulaplan/internal/ui/theme"
)

// Selector is a horizontal pick-one control for closed enumerations
// (audience, weather).
type Selector struct {
	Options  []string
	Selected int
	focused  bool
}

// NewSelector creates a selector over the given options.
func NewSelector(options []string) Selector {
	return Selector{Options: options}
}

// Update handles left/right cycling while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case "right", "l":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	}
	return s, nil
}

// View renders the options with the selected one highlighted.
func (s Selector) View() string {
	var out string
	for i, opt := range s.Options {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.Selected {
			style = theme.Selected
			if s.focused {
				opt = "[" + opt + "]"
			} else {
				opt = " " + opt + " "
			}
		} else {
			opt = " " + opt + " "
		}
		out += style.Render(opt) + " "
	}
	return out
}

// Focus marks the selector as focused.
func (s *Selector) Focus() {
	s.focused = true
}

// Blur removes focus.
func (s *Selector) Blur() {
	s.focused = false
}

// Value returns the selected option text.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}
