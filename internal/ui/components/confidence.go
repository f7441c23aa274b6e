package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/ui/theme"
)

// ConfidenceBar renders a 0-100 confidence score as a horizontal bar of
// the given width.
func ConfidenceBar(confidence float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * confidence / 100)
	filled = max(0, min(filled, width))

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
}

// ContentWidth returns the inner width used for cards on a frame of the
// given width.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card of width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Dim renders s in the secondary text color.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}
