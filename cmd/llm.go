package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/symcheck/internal/llm"
	"github.com/abhisek/symcheck/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect calls made by the llm diagnosis backend",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query LLM events: %w", err)
		}

		var rows [][]string
		for _, e := range events {
			if (purpose != "" && e.Purpose != purpose) || (failedOnly && e.Success) {
				continue
			}
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				timestamp(e.Timestamp),
				e.Provider,
				clip(e.Model, 28),
				e.Purpose,
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				fmt.Sprintf("%dms", e.LatencyMs),
				status,
			})
		}

		w := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(w, "No LLM calls recorded.")
			return nil
		}
		writeTable(w, []string{"ID", "When", "Provider", "Model", "Purpose", "Tokens in/out", "Latency", "Status"}, rows)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and answer of one model call",
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

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get LLM event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("LLM event %d not found", id)
		}

		w := cmd.OutOrStdout()
		fields := [][2]string{
			{"When", timestamp(e.Timestamp)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		fmt.Fprintf(w, "LLM call #%d\n", e.ID)
		for _, f := range fields {
			fmt.Fprintf(w, "  %-9s %s\n", f[0]+":", f[1])
		}

		printBlock(w, "Prompt", e.RequestBody)
		printBlock(w, "Answer", e.ResponseBody)
		return nil
	},
}

func printBlock(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n%s %s\n", title, rule(56-len(title)))
	if strings.TrimSpace(body) == "" {
		fmt.Fprintln(w, "(empty)")
		return
	}
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(w, "No LLM calls recorded.")
			return nil
		}

		var rows [][]string
		var calls, in, out int
		for _, u := range byPurpose {
			rows = append(rows, []string{
				u.Purpose,
				strconv.Itoa(u.Calls),
				strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens),
				fmt.Sprintf("%dms", u.AvgLatencyMs),
			})
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		rows = append(rows, []string{"all", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), ""})
		writeTable(w, []string{"Purpose", "Calls", "Tokens in", "Tokens out", "Avg latency"}, rows)

		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		rows = rows[:0]
		var spend float64
		var unpriced []string
		for _, u := range byModel {
			est := "n/a"
			if price := llm.LookupCost(u.Model); price != nil {
				c := price.Cost(u.InputTokens, u.OutputTokens)
				spend += c
				est = usd(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			rows = append(rows, []string{clip(u.Model, 32), strconv.Itoa(u.Calls), est})
		}
		fmt.Fprintln(w)
		writeTable(w, []string{"Model", "Calls", "Est. cost"}, rows)

		total := "Estimated spend: " + usd(spend)
		if len(unpriced) > 0 {
			total += fmt.Sprintf(" (excludes %s)", strings.Join(unpriced, ", "))
		}
		fmt.Fprintln(w, total)
		return nil
	},
}

func usd(v float64) string {
	if v > 0 && v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. diagnosis)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
