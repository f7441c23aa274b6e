// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/symcheck/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the body; the app adds
// the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a text field. While
// CapturingInput is true, Esc goes to the screen instead of closing it.
type InputCapturer interface {
	CapturingInput() bool
}
