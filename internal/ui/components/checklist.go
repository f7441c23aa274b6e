package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/symcheck/internal/symptom"
	"github.com/abhisek/symcheck/internal/ui/theme"
)

type checklistLine struct {
	header string // set for category headings
	id     symptom.ID
	label  string
}

// Checklist is a scrollable, filterable list of symptoms grouped by
// category. It tracks the cursor only; checked state lives with the caller.
type Checklist struct {
	catalog symptom.Catalog
	filter  string
	lines   []checklistLine
	items   []int // indexes into lines that hold symptoms
	cursor  int   // index into items
}

// NewChecklist builds a checklist over every symptom in catalog.
func NewChecklist(catalog symptom.Catalog) Checklist {
	c := Checklist{catalog: catalog}
	c.rebuild()
	return c
}

// SetFilter narrows the list to symptoms whose label or ID contains q
// (case-insensitive). Categories with no match are hidden.
func (c *Checklist) SetFilter(q string) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == c.filter {
		return
	}
	var keep symptom.ID
	if id, ok := c.Current(); ok {
		keep = id
	}
	c.filter = q
	c.rebuild()
	c.cursor = 0
	for i, li := range c.items {
		if c.lines[li].id == keep {
			c.cursor = i
			break
		}
	}
}

// Filter returns the active filter.
func (c Checklist) Filter() string {
	return c.filter
}

func (c *Checklist) rebuild() {
	c.lines = nil
	c.items = nil
	for _, cat := range c.catalog.Categories {
		header := false
		for _, id := range cat.Symptoms {
			label := symptom.Label(id)
			if c.filter != "" &&
				!strings.Contains(strings.ToLower(label), c.filter) &&
				!strings.Contains(string(id), c.filter) {
				continue
			}
			if !header {
				c.lines = append(c.lines, checklistLine{header: cat.Name})
				header = true
			}
			c.items = append(c.items, len(c.lines))
			c.lines = append(c.lines, checklistLine{id: id, label: label})
		}
	}
}

// Len returns the number of visible symptoms.
func (c Checklist) Len() int {
	return len(c.items)
}

// Current returns the symptom under the cursor.
func (c Checklist) Current() (symptom.ID, bool) {
	if len(c.items) == 0 {
		return "", false
	}
	return c.lines[c.items[c.cursor]].id, true
}

// Update moves the cursor.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.items) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.items)-1 {
			c.cursor++
		}
	case "pgup":
		c.cursor = max(c.cursor-10, 0)
	case "pgdown":
		c.cursor = min(c.cursor+10, len(c.items)-1)
	case "home", "g":
		c.cursor = 0
	case "end", "G":
		c.cursor = len(c.items) - 1
	}
	return c, nil
}

// View renders at most height lines, keeping the cursor visible. checked
// reports whether a symptom is selected.
func (c Checklist) View(checked func(symptom.ID) bool, height int) string {
	if len(c.items) == 0 {
		return theme.Hint.Render("  No symptoms match \"" + c.filter + "\"")
	}
	if height < 1 {
		height = 1
	}

	cursorLine := c.items[c.cursor]
	start := 0
	if len(c.lines) > height {
		start = cursorLine - height/2
		// Keep the category heading in view when the cursor is on its first item.
		if cursorLine > 0 && c.lines[cursorLine-1].header != "" && start > cursorLine-1 {
			start = cursorLine - 1
		}
		start = max(0, min(start, len(c.lines)-height))
	}
	end := min(start+height, len(c.lines))

	var b strings.Builder
	for i := start; i < end; i++ {
		line := c.lines[i]
		if line.header != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(line.header))
		} else {
			box := "[ ]"
			style := theme.Unselected
			if checked != nil && checked(line.id) {
				box = "[x]"
				style = theme.Checked
			}
			prefix := "    "
			if i == cursorLine {
				prefix = "  ▸ "
				style = theme.Selected
			}
			b.WriteString(style.Render(prefix + box + " " + line.label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
