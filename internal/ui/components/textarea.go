package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextArea wraps bubbles/textarea for multi-line fields (objectives,
// feedback notes, pasted lesson text).
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates a styled multi-line input.
func NewTextArea(placeholder string, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	if height > 0 {
		ta.SetHeight(height)
	}
	return TextArea{Model: ta}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return nil
}

// Update forwards messages to the underlying model.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text area.
func (t TextArea) View() string {
	return t.Model.View()
}

// Value returns the current content.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// SetValue replaces the content.
func (t *TextArea) SetValue(v string) {
	t.Model.SetValue(v)
}

// Focus gives the area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextArea) Blur() {
	t.Model.Blur()
}
