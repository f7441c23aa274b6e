package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/symcheck/internal/diagnosis"
)

func rule(width int) string {
	return strings.Repeat("─", width)
}

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var bodyCell = lipgloss.NewStyle().Padding(0, 1)

// writeTable prints rows under headers with a light border.
func writeTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	fmt.Fprintln(w, t.Render())
}

func timestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// clip shortens s to max runes.
func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// writeResultText prints a result set the way the results screen lays it
// out, without styling.
func writeResultText(w io.Writer, rs *diagnosis.ResultSet) {
	fmt.Fprintln(w, "Diagnosis Results")
	fmt.Fprintln(w, rule(60))

	if rs.IsEmpty() {
		fmt.Fprintln(w, "No conditions matched")
		return
	}

	if len(rs.Singles) > 0 {
		fmt.Fprintln(w, "Primary Disease Possibilities:")
		for _, c := range rs.Singles {
			mark := " "
			if c.HighConfidence {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %-24s %.2f%% confidence\n", mark, c.Label, c.Confidence)
		}
	}

	if len(rs.CoOccurrences) > 0 {
		if len(rs.Singles) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "Possible Co-Infections:")
		for _, c := range rs.CoOccurrences {
			fmt.Fprintf(w, "    %-24s %.2f%% confidence\n", c.Phrase, c.Confidence)
			fmt.Fprintf(w, "    Severity: %s - %s\n", c.Severity, c.Message)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
