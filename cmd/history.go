package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past diagnosis submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryDiagnosisEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		var rows [][]string
		for _, e := range events {
			if failedOnly && e.Success {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				timestamp(e.Timestamp),
				e.Backend,
				strconv.Itoa(e.SymptomCount),
				clip(historyTop(e), 28),
				e.HighestSeverity,
				historyStatus(e),
			})
		}

		w := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(w, "No diagnosis events found.")
			return nil
		}
		writeTable(w, []string{"ID", "When", "Backend", "Symptoms", "Top result", "Severity", "Status"}, rows)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the stored result of a past submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetDiagnosisEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "ID:        %d\n", e.ID)
		fmt.Fprintf(w, "Time:      %s\n", timestamp(e.Timestamp))
		fmt.Fprintf(w, "Session:   %s\n", e.SessionID)
		fmt.Fprintf(w, "Request:   %s\n", e.RequestID)
		fmt.Fprintf(w, "Backend:   %s\n", e.Backend)
		fmt.Fprintf(w, "Symptoms:  %d\n", e.SymptomCount)
		fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
		if !e.Success {
			fmt.Fprintf(w, "Error:     %s: %s\n", e.ErrorKind, e.ErrorMessage)
			return nil
		}

		var rs diagnosis.ResultSet
		if err := json.Unmarshal([]byte(e.ResultJSON), &rs); err != nil {
			return fmt.Errorf("decode stored result: %w", err)
		}
		fmt.Fprintln(w)
		writeResultText(w, &rs)
		return nil
	},
}

func historyTop(e store.DiagnosisEvent) string {
	switch {
	case !e.Success:
		return "-"
	case e.TopLabel == "":
		return "(none)"
	}
	return fmt.Sprintf("%s %.2f%%", e.TopLabel, e.TopConfidence)
}

func historyStatus(e store.DiagnosisEvent) string {
	if e.Success {
		return "ok"
	}
	return "failed: " + e.ErrorKind
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().Bool("failed", false, "Only show failed submissions")

	historyCmd.AddCommand(historyShowCmd)
}
