package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/router"
	"github.com/abhisek/symcheck/internal/screens/checklist"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/symptom"
)

type nopBackend struct{}

func (nopBackend) Diagnose(context.Context, []symptom.ID) (*diagnosis.Response, error) {
	return &diagnosis.Response{}, nil
}
func (nopBackend) Name() string { return "nop" }

func newTestModel() AppModel {
	sess := session.New(session.Options{Backend: nopBackend{}})
	return newAppModel(Options{Session: sess})
}

func TestEscPopsScreen(t *testing.T) {
	m := newTestModel()
	m.router.Apply(router.NavMsg{Op: router.OpPush, Screen: checklist.New(session.New(session.Options{Backend: nopBackend{}}))})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if nm, ok := cmd().(router.NavMsg); !ok || nm.Op != router.OpBack {
		t.Error("esc should pop the active screen")
	}
}

func TestEscClearsFilterFirst(t *testing.T) {
	m := newTestModel()
	m.router.Apply(router.NavMsg{Op: router.OpPush, Screen: checklist.New(session.New(session.Options{Backend: nopBackend{}}))})
	m.Update(tea.KeyPressMsg{Code: '/', Text: "/"})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if nm, ok := cmd().(router.NavMsg); ok && nm.Op == router.OpBack {
			t.Fatal("esc should go to the focused filter, not pop")
		}
	}
	if m.router.Depth() != 2 {
		t.Errorf("expected checklist to stay active, depth %d", m.router.Depth())
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root should do nothing")
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 30 {
		t.Errorf("expected 100x30, got %dx%d", am.width, am.height)
	}
}
