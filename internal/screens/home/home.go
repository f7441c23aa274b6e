// Package home is the landing menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/router"
	"github.com/abhisek/symcheck/internal/screen"
	"github.com/abhisek/symcheck/internal/screens/checklist"
	"github.com/abhisek/symcheck/internal/screens/history"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/store"
	"github.com/abhisek/symcheck/internal/ui/components"
	"github.com/abhisek/symcheck/internal/ui/theme"
)

// Disclaimer is shown under the menu.
const Disclaimer = "Not a medical diagnosis. Consult a healthcare professional."

var logo = []string{
	"┏━┓╻ ╻┏┳┓┏━╸╻ ╻┏━╸┏━╸╻┏",
	"┗━┓┗┳┛┃┃┃┃  ┣━┫┣╸ ┃  ┣┻┓",
	"┗━┛ ╹ ╹ ╹┗━╸╹ ╹┗━╸┗━╸╹ ╹",
}

// banner draws the logo, shading from primary to secondary, or a
// spaced-out name when width cannot fit it.
func banner(width int) string {
	if width < lipgloss.Width(logo[0])+4 {
		return theme.Title.Render("S Y M C H E C K")
	}
	shades := []lipgloss.Style{theme.Title, theme.Title, theme.Heading}
	lines := make([]string, len(logo))
	for i, l := range logo {
		lines[i] = shades[i].Render(l)
	}
	return strings.Join(lines, "\n")
}

type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New builds the menu. History is greyed out when eventRepo is nil.
func New(sess *session.Session, eventRepo store.EventRepo) *HomeScreen {
	return &HomeScreen{
		sess: sess,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Check Symptoms", Action: func() tea.Cmd { return router.Push(checklist.New(sess)) }},
			{Label: "History", Disabled: eventRepo == nil, Action: func() tea.Cmd { return router.Push(history.New(eventRepo)) }},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		}),
	}
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// status reads like "backend: llm  ·  3 selected".
func (h *HomeScreen) status() string {
	s := "backend: " + h.sess.BackendName()
	if n := h.sess.Selector().Len(); n > 0 {
		s += fmt.Sprintf("  ·  %d selected", n)
	}
	return s
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := lipgloss.JoinVertical(lipgloss.Center,
		banner(cw),
		"",
		theme.Subtitle.Render(h.status()),
		components.Card(h.menu.View(), min(cw, 32)),
		theme.Hint.Render(Disclaimer),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
