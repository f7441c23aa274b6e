// Package theme holds the palette and shared styles of the TUI.
package theme

import "charm.land/lipgloss/v2"

// Palette. Cool clinical tones meant for a dark terminal.
var (
	Primary   = lipgloss.Color("#38BDF8")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#A78BFA")
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var base = lipgloss.NewStyle()

var (
	Title    = base.Foreground(Primary).Bold(true)
	Heading  = base.Foreground(Secondary).Bold(true)
	Subtitle = base.Foreground(TextDim)
	Body     = base.Foreground(Text)
	Hint     = base.Foreground(TextDim).Italic(true)

	Selected   = base.Foreground(Primary).Bold(true)
	Unselected = base.Foreground(Text)
	Checked    = base.Foreground(Success).Bold(true)

	// HighConfidence marks a single condition at or above the display
	// threshold.
	HighConfidence = base.Foreground(Success).Bold(true)

	Notice = base.Foreground(Error).Bold(true)
	Busy   = base.Foreground(Accent).Italic(true)

	Card = base.Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	ProgressFilled = base.Background(Secondary)
	ProgressEmpty  = base.Background(Border)
)

var severityStyles = map[string]lipgloss.Style{
	"Mild":     base.Foreground(Success).Bold(true),
	"Moderate": base.Foreground(Warning).Bold(true),
	"Severe":   base.Foreground(Error).Bold(true),
}

// Severity styles a severity level name. Unknown levels are dimmed.
func Severity(level string) lipgloss.Style {
	if s, ok := severityStyles[level]; ok {
		return s
	}
	return Subtitle
}
