package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/symptom"
)

func testCatalog() symptom.Catalog {
	return symptom.Catalog{Categories: []symptom.Category{
		{Name: "Fever", Symptoms: symptom.IDs("high_fever", "chills")},
		{Name: "Pain", Symptoms: symptom.IDs("headache", "retro_orbital_pain")},
	}}
}

func TestChecklistNavigation(t *testing.T) {
	c := NewChecklist(testCatalog())
	if c.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", c.Len())
	}
	if id, _ := c.Current(); id != "high_fever" {
		t.Errorf("expected cursor on high_fever, got %q", id)
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if id, _ := c.Current(); id != "headache" {
		t.Errorf("cursor should cross category boundary, got %q", id)
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if id, _ := c.Current(); id != "retro_orbital_pain" {
		t.Errorf("cursor should stop at last item, got %q", id)
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if id, _ := c.Current(); id != "high_fever" {
		t.Errorf("cursor should stop at first item, got %q", id)
	}
}

func TestChecklistFilter(t *testing.T) {
	c := NewChecklist(testCatalog())
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnd})

	c.SetFilter("Orbital")
	if c.Len() != 1 {
		t.Fatalf("expected 1 match, got %d", c.Len())
	}
	if id, _ := c.Current(); id != "retro_orbital_pain" {
		t.Errorf("expected retro_orbital_pain, got %q", id)
	}
	view := c.View(nil, 10)
	if strings.Contains(view, "Fever") {
		t.Error("category without matches should be hidden")
	}
	if !strings.Contains(view, "Retro Orbital Pain") {
		t.Errorf("expected formatted label in view, got:\n%s", view)
	}

	c.SetFilter("xyz")
	if _, ok := c.Current(); ok {
		t.Error("expected no current item for empty result")
	}
	if !strings.Contains(c.View(nil, 10), "No symptoms match") {
		t.Error("expected empty-filter hint")
	}

	c.SetFilter("")
	if c.Len() != 4 {
		t.Errorf("clearing the filter should restore all items, got %d", c.Len())
	}
}

func TestChecklistViewMarksChecked(t *testing.T) {
	c := NewChecklist(testCatalog())
	view := c.View(func(id symptom.ID) bool { return id == "chills" }, 10)

	for _, line := range strings.Split(view, "\n") {
		switch {
		case strings.Contains(line, "Chills"):
			if !strings.Contains(line, "[x]") {
				t.Errorf("chills should be checked: %q", line)
			}
		case strings.Contains(line, "Headache"):
			if !strings.Contains(line, "[ ]") {
				t.Errorf("headache should be unchecked: %q", line)
			}
		}
	}
}

func TestChecklistViewScrolls(t *testing.T) {
	c := NewChecklist(testCatalog())
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyEnd})

	view := c.View(nil, 3)
	if n := strings.Count(view, "\n") + 1; n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
	if !strings.Contains(view, "Retro Orbital Pain") {
		t.Errorf("cursor line should be visible:\n%s", view)
	}
}

func TestConfidenceBarWidth(t *testing.T) {
	for _, conf := range []float64{0, 45.5, 100, 140} {
		if w := lipgloss.Width(ConfidenceBar(conf, 20)); w != 20 {
			t.Errorf("bar for %v: expected width 20, got %d", conf, w)
		}
	}
}
