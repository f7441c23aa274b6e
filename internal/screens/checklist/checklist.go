// Package checklist is the symptom selection screen.
package checklist

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/router"
	"github.com/abhisek/symcheck/internal/screen"
	"github.com/abhisek/symcheck/internal/screens/results"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/ui/components"
	"github.com/abhisek/symcheck/internal/ui/layout"
	"github.com/abhisek/symcheck/internal/ui/theme"
)

// outcomeMsg carries a finished submission back to the screen.
type outcomeMsg struct {
	out *session.Outcome
}

// ChecklistScreen lets the user tick symptoms and submit them.
type ChecklistScreen struct {
	sess   *session.Session
	list   components.Checklist
	filter components.FilterInput

	notice   string
	inFlight int
}

var _ screen.Screen = (*ChecklistScreen)(nil)
var _ screen.KeyHintProvider = (*ChecklistScreen)(nil)
var _ screen.InputCapturer = (*ChecklistScreen)(nil)

// New creates a ChecklistScreen over the session's catalog and selection.
func New(sess *session.Session) *ChecklistScreen {
	return &ChecklistScreen{
		sess:   sess,
		list:   components.NewChecklist(sess.Catalog),
		filter: components.NewFilterInput("filter symptoms", 40),
	}
}

func (s *ChecklistScreen) Init() tea.Cmd {
	return nil
}

func (s *ChecklistScreen) Title() string {
	return "Check Symptoms"
}

// CapturingInput reports whether Esc should clear the filter instead of
// leaving the screen.
func (s *ChecklistScreen) CapturingInput() bool {
	return s.filter.Focused() || s.filter.Value() != ""
}

func (s *ChecklistScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear filter"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "/", Description: "Filter"},
		{Key: "Enter", Description: "Analyze"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChecklistScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		return s, s.handleOutcome(msg.out)
	case tea.KeyMsg:
		if s.filter.Focused() {
			return s, s.updateFilter(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ChecklistScreen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.filter.Clear()
		s.filter.Blur()
		s.list.SetFilter("")
		return nil
	case "enter":
		s.filter.Blur()
		return nil
	case "up", "down":
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.list.SetFilter(s.filter.Value())
	return cmd
}

func (s *ChecklistScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		return s.filter.Focus()
	case "esc":
		// Only reached when a filter is set but not focused.
		s.filter.Clear()
		s.list.SetFilter("")
		return nil
	case "space":
		if id, ok := s.list.Current(); ok {
			s.sess.Selector().Toggle(id)
			s.notice = ""
		}
		return nil
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

// submit snapshots the selection and runs it in the background. A newer
// submission supersedes any still in flight.
func (s *ChecklistScreen) submit() tea.Cmd {
	sub, err := s.sess.Prepare()
	if err != nil {
		s.notice = session.Notice(err)
		return nil
	}
	s.notice = ""
	s.inFlight++

	sess := s.sess
	return func() tea.Msg {
		return outcomeMsg{out: sess.Run(context.Background(), sub)}
	}
}

func (s *ChecklistScreen) handleOutcome(out *session.Outcome) tea.Cmd {
	if s.inFlight > 0 {
		s.inFlight--
	}
	if !s.sess.IsLatest(out.Submission.Generation) {
		return nil
	}
	s.inFlight = 0
	if out.Err != nil {
		s.notice = session.Notice(out.Err)
		return nil
	}

	meta := fmt.Sprintf("%d symptoms via %s in %s",
		len(out.Submission.Symptoms), s.sess.BackendName(), out.Latency.Round(time.Millisecond))
	return router.Push(results.New(out.Result, meta))
}

// Analyzing reports whether a submission is outstanding.
func (s *ChecklistScreen) Analyzing() bool {
	return s.inFlight > 0
}

func (s *ChecklistScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var top []string
	top = append(top, theme.Subtitle.Render("Select the symptoms you are experiencing"))
	count := s.sess.Selector().Len()
	top = append(top, lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("%d selected", count)))
	if f := s.filter.View(); f != "" {
		top = append(top, f)
	}
	top = append(top, "")

	var bottom []string
	bottom = append(bottom, "")
	switch {
	case s.Analyzing():
		bottom = append(bottom, theme.Busy.Render("Analyzing..."))
	case s.notice != "":
		bottom = append(bottom, theme.Notice.Render(s.notice))
	default:
		bottom = append(bottom, "")
	}

	listHeight := height - len(top) - len(bottom)
	list := s.list.View(s.sess.Selector().Has, listHeight)

	body := strings.Join(top, "\n") + "\n" + list + "\n" + strings.Join(bottom, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(body))
}
