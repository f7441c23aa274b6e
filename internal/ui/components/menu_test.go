package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

type picked string

func testMenu(chosen *string) Menu {
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			*chosen = name
			return func() tea.Msg { return picked(name) }
		}
	}
	return NewMenu([]MenuItem{
		{Label: "Check Symptoms", Action: pick("check")},
		{Label: "History", Action: pick("history"), Disabled: true},
		{Label: "Quit", Action: pick("quit")},
	})
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	var chosen string
	m := testMenu(&chosen)

	steps := []struct {
		key  string
		want int
	}{
		{"down", 2},
		{"down", 0},
		{"up", 2},
		{"up", 0},
	}
	for _, s := range steps {
		m, _ = m.Update(key(s.key))
		if m.Cursor() != s.want {
			t.Fatalf("after %s: cursor = %d, want %d", s.key, m.Cursor(), s.want)
		}
	}
}

func TestMenu_EnterAndDigits(t *testing.T) {
	var chosen string
	m := testMenu(&chosen)

	_, cmd := m.Update(key("enter"))
	if cmd == nil || chosen != "check" {
		t.Fatalf("enter chose %q", chosen)
	}

	m, cmd = m.Update(key("2"))
	if cmd != nil || m.Cursor() != 0 {
		t.Error("digit for a disabled entry should do nothing")
	}

	m, cmd = m.Update(key("3"))
	if cmd == nil || chosen != "quit" || m.Cursor() != 2 {
		t.Errorf("digit 3: chosen %q, cursor %d", chosen, m.Cursor())
	}
}

func TestMenu_View(t *testing.T) {
	var chosen string
	view := testMenu(&chosen).View()
	for _, want := range []string{"▸ 1  Check Symptoms", "2  History", "3  Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Nothing", Disabled: true}})
	if m.Cursor() != -1 {
		t.Fatalf("cursor = %d, want -1", m.Cursor())
	}
	if _, cmd := m.Update(key("enter")); cmd != nil {
		t.Error("enter with nothing focused should do nothing")
	}
}
