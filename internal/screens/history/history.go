// Package history lists past diagnosis submissions.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/router"
	"github.com/abhisek/symcheck/internal/screen"
	"github.com/abhisek/symcheck/internal/screens/results"
	"github.com/abhisek/symcheck/internal/store"
	"github.com/abhisek/symcheck/internal/ui/layout"
	"github.com/abhisek/symcheck/internal/ui/theme"
)

// Limit caps how many events are loaded.
const Limit = 50

type loadedMsg struct {
	events []store.DiagnosisEvent
	err    error
}

// HistoryScreen is a scrolling list of recorded checks, newest first.
// Enter on a successful check reopens its results; on a failed one it
// toggles the error detail.
type HistoryScreen struct {
	repo   store.EventRepo
	events []store.DiagnosisEvent
	loaded bool
	err    error

	cursor int
	top    int // first visible row
	open   map[int64]bool
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, open: map[int64]bool{}}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.QueryDiagnosisEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return loadedMsg{events: events, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Open"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded, s.err = true, msg.err
		s.events = msg.events
		s.cursor = min(s.cursor, max(len(s.events)-1, 0))
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.events)-1), 0)
		case "home", "g":
			s.cursor = 0
		case "end", "G":
			s.cursor = max(len(s.events)-1, 0)
		case "r":
			s.loaded = false
			return s, s.Init()
		case "enter":
			return s, s.activate()
		}
	}
	return s, nil
}

func (s *HistoryScreen) activate() tea.Cmd {
	if s.cursor >= len(s.events) {
		return nil
	}
	e := s.events[s.cursor]
	if rs, ok := storedResult(e); ok {
		caption := fmt.Sprintf("%s via %s", e.Timestamp.Local().Format("Jan 02, 2006 15:04"), e.Backend)
		return router.Push(results.New(rs, caption))
	}
	s.open[e.Sequence] = !s.open[e.Sequence]
	return nil
}

// storedResult decodes the result set saved with a successful event.
func storedResult(e store.DiagnosisEvent) (*diagnosis.ResultSet, bool) {
	if !e.Success || e.ResultJSON == "" {
		return nil, false
	}
	var rs diagnosis.ResultSet
	if err := json.Unmarshal([]byte(e.ResultJSON), &rs); err != nil {
		return nil, false
	}
	return &rs, true
}

var (
	rowStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	cursorStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(theme.Error)
	detailStyle = failStyle.Italic(true).PaddingLeft(4)
	dimStyle    = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return notice(width, failStyle.Render("Could not load history: "+s.err.Error()))
	case !s.loaded:
		return notice(width, dimStyle.Render("Loading history..."))
	case len(s.events) == 0:
		return notice(width, dimStyle.Italic(true).Render("No checks yet. Select some symptoms to get started!"))
	}

	rows := max(height-2, 1)
	s.scrollTo(rows)

	var lines []string
	for i := s.top; i < len(s.events) && len(lines) < rows; i++ {
		lines = append(lines, s.row(i))
		e := s.events[i]
		if s.open[e.Sequence] && !e.Success {
			lines = append(lines, detailStyle.Render(fmt.Sprintf("%s: %s", e.ErrorKind, e.ErrorMessage)))
		}
	}
	if len(s.events) > rows {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d of %d", s.cursor+1, len(s.events))))
	}

	list := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, list)
}

// scrollTo keeps the cursor inside a window of n rows.
func (s *HistoryScreen) scrollTo(n int) {
	if s.cursor < s.top {
		s.top = s.cursor
	}
	if s.cursor >= s.top+n {
		s.top = s.cursor - n + 1
	}
}

func (s *HistoryScreen) row(i int) string {
	e := s.events[i]
	text := Summary(e)
	switch {
	case i == s.cursor:
		return cursorStyle.Render("▸ " + text)
	case !e.Success:
		return failStyle.Render("  " + text)
	default:
		return rowStyle.Render("  " + text)
	}
}

func notice(width int, text string) string {
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// Summary formats one event as a single line.
func Summary(e store.DiagnosisEvent) string {
	noun := "symptoms"
	if e.SymptomCount == 1 {
		noun = "symptom"
	}
	parts := []string{
		e.Timestamp.Local().Format("Jan 02 15:04"),
		fmt.Sprintf("%-8s", e.Backend),
		fmt.Sprintf("%d %s", e.SymptomCount, noun),
	}
	switch {
	case !e.Success:
		parts = append(parts, fmt.Sprintf("failed (%s)", e.ErrorKind))
	case e.TopLabel == "":
		parts = append(parts, "no conditions")
	default:
		parts = append(parts, fmt.Sprintf("%s %.2f%%", e.TopLabel, e.TopConfidence))
		if e.HighestSeverity != "" {
			parts = append(parts, e.HighestSeverity)
		}
	}
	return strings.Join(parts, "  ")
}
