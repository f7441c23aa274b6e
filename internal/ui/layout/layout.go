// Package layout draws the chrome around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage replaces the whole frame while the terminal is
// below MinWidth x MinHeight.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nneed %d x %d, have %d x %d", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Warning).Align(lipgloss.Center).Render(msg))
}

var (
	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	ruleStyle   = lipgloss.NewStyle().Foreground(theme.Border)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// RenderHeader is a single bar: brand on the left, title centered,
// status (the active backend) on the right, underlined by a rule.
func RenderHeader(title, status string, width int) string {
	brand := brandStyle.Render("symcheck")
	right := statusStyle.Render(status)

	side := max(lipgloss.Width(brand), lipgloss.Width(right))
	mid := max(width-2-2*side, 0)
	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Render(brand),
		lipgloss.PlaceHorizontal(mid, lipgloss.Center, titleStyle.Render(title)),
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(right),
	)
	return " " + bar + "\n" + ruleStyle.Render(strings.Repeat("─", width))
}

// RenderFooter lists key hints under a rule.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	line := lipgloss.NewStyle().MaxWidth(width).Render(" " + strings.Join(parts, "  ·  "))
	return ruleStyle.Render(strings.Repeat("─", width)) + "\n" + line
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
