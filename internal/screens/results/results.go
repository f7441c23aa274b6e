// Package results renders a classified diagnosis.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/router"
	"github.com/abhisek/symcheck/internal/screen"
	"github.com/abhisek/symcheck/internal/ui/components"
	"github.com/abhisek/symcheck/internal/ui/layout"
	"github.com/abhisek/symcheck/internal/ui/theme"
)

// ResultsScreen shows singles and co-occurrences for one diagnosis.
type ResultsScreen struct {
	result *diagnosis.ResultSet
	meta   string
	offset int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. meta is an optional dim caption, such as
// when and where the result came from.
func New(result *diagnosis.ResultSet, meta string) *ResultsScreen {
	if result == nil {
		result = &diagnosis.ResultSet{}
	}
	return &ResultsScreen{result: result, meta: meta}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "h", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "h":
		return s, router.Home()
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := strings.Split(Render(s.result, cw), "\n")
	if s.meta != "" {
		lines = append([]string{components.Dim(s.meta), ""}, lines...)
	}

	if height > 0 && len(lines) > height {
		maxOffset := len(lines) - height
		if s.offset > maxOffset {
			s.offset = maxOffset
		}
		lines = lines[s.offset : s.offset+height]
	} else {
		s.offset = 0
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

// Render lays out a result set at content width cw. Sections with no
// entries are omitted.
func Render(rs *diagnosis.ResultSet, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Diagnosis Results"))
	b.WriteString("\n\n")

	if rs.IsEmpty() {
		b.WriteString(theme.Hint.Render("No conditions matched"))
		b.WriteString("\n")
		return b.String()
	}

	barWidth := max(cw/3, 4)

	if len(rs.Singles) > 0 {
		b.WriteString(theme.Heading.Render("Primary Disease Possibilities:"))
		b.WriteString("\n")
		for _, c := range rs.Singles {
			name := theme.Body.Render(c.Label)
			conf := components.Dim(fmt.Sprintf("%.2f%% confidence", c.Confidence))
			if c.HighConfidence {
				name = theme.HighConfidence.Render(c.Label)
				conf = theme.HighConfidence.Render(fmt.Sprintf("%.2f%% confidence", c.Confidence))
			}
			b.WriteString(components.Card(
				name+"\n"+components.ConfidenceBar(c.Confidence, barWidth)+"  "+conf, cw))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(rs.CoOccurrences) > 0 {
		b.WriteString(theme.Heading.Render("Possible Co-Infections:"))
		b.WriteString("\n")
		for _, c := range rs.CoOccurrences {
			sev := theme.Severity(c.Severity.String())
			body := theme.Body.Render(c.Phrase) + "\n" +
				components.ConfidenceBar(c.Confidence, barWidth) + "  " +
				components.Dim(fmt.Sprintf("%.2f%% confidence", c.Confidence)) + "\n" +
				sev.Render("Severity: "+c.Severity.String()) + "\n" +
				theme.Hint.Render(c.Message)
			b.WriteString(components.Card(body, cw))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
