package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/router"
)

func scenario() *diagnosis.ResultSet {
	return diagnosis.Classify([]diagnosis.RawResult{
		{Label: "fever", Confidence: 75},
		{Label: "dengue_malaria", Confidence: 45},
		{Label: "flu_cold", Confidence: 35},
	})
}

func TestRender_BothSections(t *testing.T) {
	out := Render(scenario(), 60)

	for _, want := range []string{
		"Diagnosis Results",
		"Primary Disease Possibilities:",
		"fever",
		"75.00% confidence",
		"Possible Co-Infections:",
		"dengue + malaria",
		"45.00% confidence",
		"Severity: Mild",
		"Monitor symptoms carefully",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "flu") {
		t.Error("candidates at or below 40 should not be rendered")
	}
	if strings.Contains(out, "No conditions matched") {
		t.Error("empty notice shown for non-empty result")
	}
}

func TestRender_OmitsEmptySections(t *testing.T) {
	singlesOnly := diagnosis.Classify([]diagnosis.RawResult{{Label: "typhoid", Confidence: 55}})
	out := Render(singlesOnly, 60)
	if !strings.Contains(out, "Primary Disease Possibilities:") {
		t.Error("expected singles heading")
	}
	if strings.Contains(out, "Possible Co-Infections:") {
		t.Error("co-infection heading should be omitted")
	}

	coOnly := diagnosis.Classify([]diagnosis.RawResult{{Label: "dengue_typhoid", Confidence: 80}})
	out = Render(coOnly, 60)
	if strings.Contains(out, "Primary Disease Possibilities:") {
		t.Error("singles heading should be omitted")
	}
	if !strings.Contains(out, "Severity: Severe") {
		t.Errorf("expected severe grading:\n%s", out)
	}
}

func TestRender_Empty(t *testing.T) {
	out := Render(diagnosis.Classify(nil), 60)
	if !strings.Contains(out, "No conditions matched") {
		t.Errorf("expected empty notice:\n%s", out)
	}
	if strings.Contains(out, "Primary Disease Possibilities:") || strings.Contains(out, "Possible Co-Infections:") {
		t.Error("no section headings expected for an empty result")
	}
}

func TestResultsScreen_Keys(t *testing.T) {
	s := New(scenario(), "")
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command on h")
	}
	if nm, ok := cmd().(router.NavMsg); !ok || nm.Op != router.OpHome {
		t.Error("h should unwind to the home screen")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Errorf("offset should not go negative, got %d", s.offset)
	}
}

func TestResultsScreen_ViewScrollClamps(t *testing.T) {
	s := New(scenario(), "Oct 19, 2026 via http")
	for i := 0; i < 100; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	view := s.View(80, 5)
	if n := strings.Count(view, "\n") + 1; n > 5 {
		t.Errorf("view should fit 5 lines, got %d", n)
	}
	if s.offset == 100 {
		t.Error("offset should clamp to content")
	}
}
