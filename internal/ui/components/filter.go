package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput as a one-line search box.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(placeholder string, maxLen int) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return FilterInput{Model: ti}
}

// Focus starts capturing keys.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keys; the value is kept.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input captures keys.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Clear empties the input.
func (f *FilterInput) Clear() {
	f.Model.Reset()
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input, or nothing when it is blurred and empty.
func (f FilterInput) View() string {
	if !f.Focused() && f.Value() == "" {
		return ""
	}
	if !f.Focused() {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("/ " + f.Value())
	}
	return f.Model.View()
}

// Value returns the current input value.
func (f FilterInput) Value() string {
	return f.Model.Value()
}
