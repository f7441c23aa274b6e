// Package app hosts the root Bubble Tea model: a screen stack framed by
// a header and a key-hint footer.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/router"
	"github.com/abhisek/symcheck/internal/screen"
	"github.com/abhisek/symcheck/internal/screens/home"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/store"
	"github.com/abhisek/symcheck/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Session   *session.Session
	EventRepo store.EventRepo // nil disables history
}

type AppModel struct {
	router  *router.Router
	backend string
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router:  router.New(home.New(opts.Session, opts.EventRepo)),
		backend: "backend: " + opts.Session.BackendName(),
	}
}

func (m AppModel) Init() tea.Cmd { return nil }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles keys that mean the same thing on every screen. Esc
// belongs to the screen while it is capturing text input.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
			return nil, false
		}
		if m.router.Depth() == 1 {
			return nil, true
		}
		return router.Back(), true
	}
	return nil, false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		active := m.router.Active()
		header := layout.RenderHeader(active.Title(), m.backend, m.width)
		footer := layout.RenderFooter(m.hints(active), m.width)
		bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
		body := m.router.View(m.width, bodyHeight)
		v.SetContent(layout.RenderFrame(header, body, footer, m.width, m.height))
	}
	return v
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

// hints are the active screen's own plus quit.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else {
		hints = []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Enter", Description: "Select"}}
	}
	return append(hints, quitHint)
}

// Run blocks until the user quits.
func Run(opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
