package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show diagnosis submission statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().DiagnosisStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		w := cmd.OutOrStdout()
		if stats.Total == 0 {
			fmt.Fprintln(w, "No diagnosis events recorded yet.")
			return nil
		}

		fmt.Fprintf(w, "Submissions:  %d\n", stats.Total)
		fmt.Fprintf(w, "Succeeded:    %d (%.0f%%)\n", stats.Succeeded, pct(stats.Succeeded, stats.Total))
		fmt.Fprintf(w, "Failed:       %d\n", stats.Failed)
		fmt.Fprintf(w, "Avg latency:  %dms\n", stats.AvgLatencyMs)

		if len(stats.ByErrorKind) > 0 {
			kinds := make([]string, 0, len(stats.ByErrorKind))
			for k := range stats.ByErrorKind {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Failures by kind")
			fmt.Fprintln(w, rule(24))
			for _, k := range kinds {
				fmt.Fprintf(w, "%-16s  %6d\n", k, stats.ByErrorKind[k])
			}
		}
		return nil
	},
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
