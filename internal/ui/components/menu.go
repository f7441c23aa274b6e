package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/symcheck/internal/ui/theme"
)

// MenuItem is one entry. Disabled entries are shown but never focused.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor wraps at both ends and
// digits 1-9 jump straight to an entry.
type Menu struct {
	items  []MenuItem
	cursor int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{items: items, cursor: -1}
	m.move(1)
	return m
}

// Cursor is the focused index, or -1 when every entry is disabled.
func (m Menu) Cursor() int { return m.cursor }

// move advances the cursor by step to the next enabled entry.
func (m *Menu) move(step int) {
	n := len(m.items)
	for i, pos := 0, m.cursor; i < n; i++ {
		pos = (pos + step + n) % n
		if !m.items[pos].Disabled {
			m.cursor = pos
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) || m.items[i].Disabled || m.items[i].Action == nil {
		return nil
	}
	return m.items[i].Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}
	switch s := key.String(); s {
	case "up", "k":
		m.move(-1)
	case "down", "j", "tab":
		m.move(1)
	case "enter":
		return m, m.activate(m.cursor)
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			i := int(s[0] - '1')
			if i < len(m.items) && !m.items[i].Disabled {
				m.cursor = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		label := fmt.Sprintf("%d  %s", i+1, item.Label)
		switch {
		case i == m.cursor:
			lines[i] = theme.Selected.Render("▸ " + label)
		case item.Disabled:
			lines[i] = theme.Hint.Render("  " + label)
		default:
			lines[i] = theme.Unselected.Render("  " + label)
		}
	}
	return strings.Join(lines, "\n")
}
