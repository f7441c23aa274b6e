package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/symcheck/internal/screen"
)

type fakeScreen struct {
	name    string
	started bool
}

func (s *fakeScreen) Init() tea.Cmd {
	s.started = true
	return nil
}
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *fakeScreen) View(int, int) string                    { return s.name }
func (s *fakeScreen) Title() string                           { return s.name }

// run executes cmd and feeds the resulting message to r.
func run(t *testing.T, r *Router, cmd tea.Cmd) {
	t.Helper()
	msg, ok := cmd().(NavMsg)
	if !ok {
		t.Fatalf("expected NavMsg, got %T", cmd())
	}
	r.Update(msg)
}

func TestNavigation(t *testing.T) {
	home := &fakeScreen{name: "home"}
	checklist := &fakeScreen{name: "checklist"}
	results := &fakeScreen{name: "results"}
	history := &fakeScreen{name: "history"}

	tests := []struct {
		name      string
		cmd       tea.Cmd
		wantTop   string
		wantDepth int
	}{
		{"push checklist", Push(checklist), "checklist", 2},
		{"push results", Push(results), "results", 3},
		{"swap for history", Swap(history), "history", 3},
		{"back", Back(), "checklist", 2},
		{"push results again", Push(results), "results", 3},
		{"home", Home(), "home", 1},
		{"back at root", Back(), "home", 1},
	}

	r := New(home)
	for _, tt := range tests {
		run(t, r, tt.cmd)
		if got := r.Active().Title(); got != tt.wantTop {
			t.Fatalf("%s: active = %q, want %q", tt.name, got, tt.wantTop)
		}
		if r.Depth() != tt.wantDepth {
			t.Fatalf("%s: depth = %d, want %d", tt.name, r.Depth(), tt.wantDepth)
		}
	}

	for _, s := range []*fakeScreen{checklist, results, history} {
		if !s.started {
			t.Errorf("%s was never initialized", s.name)
		}
	}
	if home.started {
		t.Error("root is initialized by the program, not the router")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Apply(NavMsg{Op: OpPush, Screen: &fakeScreen{name: "checklist"}})

	if cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyDown}); cmd != nil {
		t.Error("fake screens return no command")
	}
	if got := r.View(80, 24); got != "checklist" {
		t.Errorf("view = %q", got)
	}
}
